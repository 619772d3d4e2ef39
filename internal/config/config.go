package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
	Tracking     TrackingConfig     `yaml:"tracking"`
	Bot          BotConfig          `yaml:"bot"`
	NATS         NATSConfig         `yaml:"nats"`
	Housekeeping HousekeepingConfig `yaml:"housekeeping"`
	Dashboard    DashboardConfig    `yaml:"dashboard"`
}

// CORSConfig holds CORS settings for the dashboard API.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3001"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"   env:"SERVER_RATE_LIMIT_RPS"   env-default:"10"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" env:"SERVER_RATE_LIMIT_BURST" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`

	// StatementTimeout bounds every statement server-side. Zero leaves the server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"30s"`
	// MigrateOnStart applies embedded migrations before the bot starts serving.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"DATABASE_MIGRATE_ON_START" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	// File, when set, receives a JSON copy of every record in addition to stderr.
	File string `yaml:"file" env:"LOG_FILE"`
}

// TrackingConfig holds SSW tracking API settings.
type TrackingConfig struct {
	BaseURL  string        `yaml:"base_url" env:"SSW_API_BASE_URL" env-default:"https://ssw.inf.br/api"`
	Domain   string        `yaml:"domain"   env:"SSW_DOMAIN"`
	Username string        `yaml:"username" env:"SSW_USERNAME"`
	Password string        `yaml:"password" env:"SSW_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout"  env:"SSW_TIMEOUT"      env-default:"30s"`
}

// BotConfig holds conversation behaviour settings.
type BotConfig struct {
	// OperatorIdentity is the only identity allowed to issue admin commands
	// and the target of attendant handoff notices.
	OperatorIdentity string `yaml:"operator_identity" env:"BOT_OPERATOR_IDENTITY" env-required:"true"`
	// AlertIdentity receives system alerts. Defaults to OperatorIdentity.
	AlertIdentity string `yaml:"alert_identity" env:"BOT_ALERT_IDENTITY"`
	// BotIdentity is the bot's own number, used in the handoff deep link.
	BotIdentity  string        `yaml:"bot_identity"  env:"BOT_IDENTITY"`
	CountryCode  string        `yaml:"country_code"  env:"BOT_COUNTRY_CODE"  env-default:"55"`
	Timezone     string        `yaml:"timezone"      env:"BOT_TIMEZONE"      env-default:"America/Sao_Paulo"`
	IdleWindow   time.Duration `yaml:"idle_window"   env:"BOT_IDLE_WINDOW"   env-default:"5m"`
	TurnTimeout  time.Duration `yaml:"turn_timeout"  env:"BOT_TURN_TIMEOUT"  env-default:"60s"`
	HistoryLimit int           `yaml:"history_limit" env:"BOT_HISTORY_LIMIT" env-default:"10"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// AlertTarget returns the identity that receives system alerts.
func (b BotConfig) AlertTarget() string {
	if strings.TrimSpace(b.AlertIdentity) != "" {
		return b.AlertIdentity
	}
	return b.OperatorIdentity
}

// NATSConfig holds the chat transport bridge settings.
type NATSConfig struct {
	URL             string        `yaml:"url"              env:"NATS_URL"              env-default:"nats://127.0.0.1:4222"`
	InboundSubject  string        `yaml:"inbound_subject"  env:"NATS_INBOUND_SUBJECT"  env-default:"chat.inbound"`
	OutboundSubject string        `yaml:"outbound_subject" env:"NATS_OUTBOUND_SUBJECT" env-default:"chat.outbound"`
	QueueGroup      string        `yaml:"queue_group"      env:"NATS_QUEUE_GROUP"      env-default:"rastreio-bot"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"  env:"NATS_CONNECT_TIMEOUT"  env-default:"5s"`
	ConnectAttempts int           `yaml:"connect_attempts" env:"NATS_CONNECT_ATTEMPTS" env-default:"5"`
}

// HousekeepingConfig holds periodic maintenance settings.
type HousekeepingConfig struct {
	// InactivityWindow closes open conversations idle for longer. Zero disables it.
	InactivityWindow time.Duration `yaml:"inactivity_window" env:"HOUSEKEEPING_INACTIVITY_WINDOW" env-default:"10m"`
	RetentionDays    int           `yaml:"retention_days"    env:"HOUSEKEEPING_RETENTION_DAYS"    env-default:"90"`
	IdleSweepCron    string        `yaml:"idle_sweep_cron"   env:"HOUSEKEEPING_IDLE_SWEEP_CRON"   env-default:"* * * * *"`
	InactiveCron     string        `yaml:"inactive_cron"     env:"HOUSEKEEPING_INACTIVE_CRON"     env-default:"*/10 * * * *"`
	// PurgeCron runs the retention purge in-process. Empty leaves it to cmd/cleanup.
	PurgeCron  string        `yaml:"purge_cron"  env:"HOUSEKEEPING_PURGE_CRON"`
	JobTimeout time.Duration `yaml:"job_timeout" env:"HOUSEKEEPING_JOB_TIMEOUT" env-default:"1m"`
}

// DashboardConfig holds dashboard API access settings.
type DashboardConfig struct {
	// JWTSecret enables bearer authentication on /api routes when set.
	JWTSecret string `yaml:"jwt_secret" env:"DASHBOARD_JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"DASHBOARD_JWT_ISSUER" env-default:"rastreio-bot"`
}

// AuthEnabled reports whether dashboard routes require a bearer token.
func (d DashboardConfig) AuthEnabled() bool {
	return d.JWTSecret != ""
}
