// Command dashboard-token prints a bearer token for the dashboard API,
// signed with the configured dashboard.jwt_secret.
//
//	dashboard-token -subject ops -ttl 720h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/auth"
	"github.com/heartmarshall/rastreio-bot/internal/config"
)

func main() {
	subject := flag.String("subject", "dashboard", "token subject")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime, 0 for no expiry")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Dashboard.AuthEnabled() {
		log.Fatal("dashboard.jwt_secret is not set")
	}

	token, err := auth.NewJWTManager(cfg.Dashboard.JWTSecret, cfg.Dashboard.JWTIssuer).GenerateToken(*subject, *ttl)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(token)
}
