package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if err := c.Tracking.validate(); err != nil {
		return fmt.Errorf("tracking: %w", err)
	}

	if err := c.Bot.validate(); err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	if c.Bot.TurnTimeout <= c.Tracking.Timeout {
		return fmt.Errorf("bot.turn_timeout (%v) must exceed tracking.timeout (%v)", c.Bot.TurnTimeout, c.Tracking.Timeout)
	}

	if err := c.Housekeeping.validate(); err != nil {
		return fmt.Errorf("housekeeping: %w", err)
	}

	if c.NATS.InboundSubject == "" || c.NATS.OutboundSubject == "" {
		return fmt.Errorf("nats: inbound_subject and outbound_subject are required")
	}

	if c.Dashboard.AuthEnabled() && len(c.Dashboard.JWTSecret) < 32 {
		return fmt.Errorf("dashboard.jwt_secret must be at least 32 characters (got %d)", len(c.Dashboard.JWTSecret))
	}

	return nil
}

func (t *TrackingConfig) validate() error {
	u, err := url.Parse(t.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", t.BaseURL)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", t.Timeout)
	}
	return nil
}

func (b *BotConfig) validate() error {
	if digitsOnly(b.OperatorIdentity) == "" {
		return fmt.Errorf("operator_identity must contain digits (got %q)", b.OperatorIdentity)
	}
	if b.AlertIdentity != "" && digitsOnly(b.AlertIdentity) == "" {
		return fmt.Errorf("alert_identity must contain digits (got %q)", b.AlertIdentity)
	}
	if b.IdleWindow <= 0 {
		return fmt.Errorf("idle_window must be > 0 (got %v)", b.IdleWindow)
	}
	if b.TurnTimeout <= 0 {
		return fmt.Errorf("turn_timeout must be > 0 (got %v)", b.TurnTimeout)
	}
	if b.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0 (got %d)", b.HistoryLimit)
	}

	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	b.Location = loc

	return nil
}

func (h *HousekeepingConfig) validate() error {
	if h.InactivityWindow < 0 {
		return fmt.Errorf("inactivity_window must be >= 0 (got %v)", h.InactivityWindow)
	}
	if h.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", h.RetentionDays)
	}
	if strings.TrimSpace(h.IdleSweepCron) == "" {
		return fmt.Errorf("idle_sweep_cron is required")
	}
	if h.InactivityWindow > 0 && strings.TrimSpace(h.InactiveCron) == "" {
		return fmt.Errorf("inactive_cron is required when inactivity_window is set")
	}
	if h.JobTimeout <= 0 {
		return fmt.Errorf("job_timeout must be > 0 (got %v)", h.JobTimeout)
	}
	return nil
}

// RetentionCutoff returns the instant before which completed data is purged.
func (h HousekeepingConfig) RetentionCutoff(now time.Time) time.Time {
	return now.AddDate(0, 0, -h.RetentionDays)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
