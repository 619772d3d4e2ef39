// Package ssw is the TrackingGateway: it queries the SSW tracking API and
// hands every response body to the normalizer.
package ssw

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/tracking"
)

const (
	danfePath = "/trackingdanfe"
	cpfPath   = "/trackingpf"

	userAgent = "rastreio-bot/1.0"

	// pingKey is a syntactically valid access key that matches no document.
	pingKey = "00000000000000000000000000000000000000000000"
)

type danfeRequest struct {
	Key string `json:"chave_nfe"`
}

type cpfRequest struct {
	Domain   string `json:"dominio"`
	Username string `json:"usuario"`
	Password string `json:"senha"`
	CPF      string `json:"cpf"`
}

// Gateway performs single, unretried lookups against the tracking API.
type Gateway struct {
	client *resty.Client
	cfg    config.TrackingConfig
	log    *slog.Logger
}

// New creates a Gateway. Every request is bounded by cfg.Timeout.
func New(log *slog.Logger, cfg config.TrackingConfig) *Gateway {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("User-Agent", userAgent).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Gateway{
		client: client,
		cfg:    cfg,
		log:    log.With("adapter", "ssw"),
	}
}

// LookupByDocumentKey queries by invoice access key.
func (g *Gateway) LookupByDocumentKey(ctx context.Context, key string) domain.TrackingResult {
	return g.lookup(ctx, domain.TrackingByDanfe, danfePath, danfeRequest{Key: key})
}

// LookupByPersonalID queries by the recipient's personal tax id, using the
// configured account credentials.
func (g *Gateway) LookupByPersonalID(ctx context.Context, id string) domain.TrackingResult {
	return g.lookup(ctx, domain.TrackingByCPF, cpfPath, cpfRequest{
		Domain:   g.cfg.Domain,
		Username: g.cfg.Username,
		Password: g.cfg.Password,
		CPF:      id,
	})
}

// lookup never fails: transport errors become ConnectionError and every HTTP
// response, successful or not, is normalized from its body.
func (g *Gateway) lookup(ctx context.Context, kind domain.TrackingKind, path string, body any) domain.TrackingResult {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		g.log.WarnContext(ctx, "tracking request failed",
			slog.String("kind", string(kind)),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return domain.Failed(domain.ReasonConnectionError, "")
	}

	result := tracking.Normalize(resp.Body())

	g.log.DebugContext(ctx, "tracking response",
		slog.String("kind", string(kind)),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("success", result.Success),
		slog.String("reason", string(result.Reason)),
	)

	return result
}

// Ping reports whether the tracking API answers at all. Any HTTP response
// counts as reachable.
func (g *Gateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	_, err := g.client.R().
		SetContext(ctx).
		SetBody(danfeRequest{Key: pingKey}).
		Post(danfePath)
	if err != nil {
		return fmt.Errorf("ssw ping: %w", err)
	}
	return nil
}
