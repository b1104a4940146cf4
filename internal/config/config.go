// Package config handles loading and validating the application configuration
// from YAML (or JSON) files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	BearerToken            string              `yaml:"bearer_token"`
	Interval               int64               `yaml:"interval"`    // milliseconds
	APISpacing             *int64              `yaml:"api_spacing"` // milliseconds, default 1000
	Watchables             []Watchable         `yaml:"watchables"`
	SellerCountryBlacklist []string            `yaml:"seller_country_blacklist"`
	Email                  *EmailConfig        `yaml:"email"`
	Notifications          NotificationsConfig `yaml:"notifications"`
	CardTrader             CardTraderConfig    `yaml:"cardtrader"`
	Server                 ServerConfig        `yaml:"server"`
	Telemetry              TelemetryConfig     `yaml:"telemetry"`
	Logging                LoggingConfig       `yaml:"logging"`
}

// Watchable is one watched blueprint as written in the config file.
type Watchable struct {
	BlueprintID     int64             `yaml:"blueprint_id"`
	PriceLimit      int64             `yaml:"price_limit"` // inclusive, in cents
	Language        *string           `yaml:"language"`
	MinCondition    *domain.Condition `yaml:"min_condition"`
	CanOrderViaZero bool              `yaml:"can_order_via_zero"`
}

// EmailConfig defines the SMTP relay used for email notifications.
type EmailConfig struct {
	RelayHost string `yaml:"relay_host"`
	Port      int    `yaml:"port"` // 465 uses implicit TLS, anything else STARTTLS
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	From      string `yaml:"from"`
	To        string `yaml:"to"`
}

// NotificationsConfig defines the additional delivery backends.
type NotificationsConfig struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Telegram TelegramConfig `yaml:"telegram"`
	Pushover PushoverConfig `yaml:"pushover"`
	Timeout  time.Duration  `yaml:"timeout"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TelegramConfig defines Telegram bot settings.
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
	ChatID  int64  `yaml:"chat_id"`
}

// PushoverConfig defines Pushover settings.
type PushoverConfig struct {
	Enabled  bool   `yaml:"enabled"`
	AppToken string `yaml:"app_token"`
	UserKey  string `yaml:"user_key"`
}

// CardTraderConfig defines marketplace API settings.
type CardTraderConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig defines the optional Echo status server.
type ServerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// TelemetryConfig defines OpenTelemetry OTLP export settings.
type TelemetryConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Endpoint       string        `yaml:"endpoint"`
	Insecure       bool          `yaml:"insecure"`
	ServiceName    string        `yaml:"service_name"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	ExportMetrics  bool          `yaml:"export_metrics"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, console
}

const (
	defaultAPISpacingMs = 1000
	defaultBaseURL      = "https://api.cardtrader.com/api/v2"
	minInterval         = time.Second
)

// Load reads and parses a config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes config bytes. JSON documents are accepted as YAML.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// IntervalDuration returns the cycle interval.
func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Millisecond
}

// APISpacingDuration returns the minimum delay between marketplace calls.
func (c *Config) APISpacingDuration() time.Duration {
	if c.APISpacing == nil {
		return defaultAPISpacingMs * time.Millisecond
	}
	return time.Duration(*c.APISpacing) * time.Millisecond
}

// Targets converts the watchables into watch targets, in file order.
func (c *Config) Targets() []domain.WatchTarget {
	out := make([]domain.WatchTarget, 0, len(c.Watchables))
	for _, w := range c.Watchables {
		out = append(out, domain.WatchTarget{
			BlueprintID:     w.BlueprintID,
			PriceLimit:      w.PriceLimit,
			Language:        w.Language,
			MinCondition:    w.MinCondition,
			CanOrderViaZero: w.CanOrderViaZero,
		})
	}
	return out
}

func applyDefaults(cfg *Config) {
	if cfg.APISpacing == nil {
		v := int64(defaultAPISpacingMs)
		cfg.APISpacing = &v
	}
	if cfg.Email != nil && cfg.Email.Port == 0 {
		cfg.Email.Port = 465
	}
	if cfg.Notifications.Timeout == 0 {
		cfg.Notifications.Timeout = 30 * time.Second
	}
	applyCardTraderDefaults(&cfg.CardTrader)
	applyServerDefaults(&cfg.Server)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyCardTraderDefaults(c *CardTraderConfig) {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "card-price-watcher"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.BearerToken) == "" {
		errs = append(errs, errors.New("bearer_token is required"))
	}
	if cfg.IntervalDuration() < minInterval {
		errs = append(errs, fmt.Errorf("interval must be at least %d ms (got %d)",
			minInterval.Milliseconds(), cfg.Interval))
	}
	if cfg.APISpacing != nil && *cfg.APISpacing < 0 {
		errs = append(errs, fmt.Errorf("api_spacing must not be negative (got %d)", *cfg.APISpacing))
	}

	errs = append(errs, validateWatchables(cfg.Watchables)...)

	for i, code := range cfg.SellerCountryBlacklist {
		if len(strings.TrimSpace(code)) != 2 {
			errs = append(errs, fmt.Errorf(
				"seller_country_blacklist[%d]: %q is not a two-letter country code", i, code))
		}
	}

	if cfg.Email != nil {
		errs = append(errs, validateEmail(cfg.Email)...)
	}
	errs = append(errs, validateNotifications(&cfg.Notifications)...)

	if _, err := url.ParseRequestURI(cfg.CardTrader.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("cardtrader.base_url: %w", err))
	}
	if cfg.Server.Enabled && (cfg.Server.Port < 1 || cfg.Server.Port > 65535) {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}
	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be within [0, 1] (got %g)",
			cfg.Telemetry.SampleRatio))
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json, console (got %q)",
			cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

func validateWatchables(ws []Watchable) []error {
	var errs []error

	if len(ws) == 0 {
		errs = append(errs, errors.New("watchables must contain at least one entry"))
	}

	seen := make(map[int64]int, len(ws))
	for i, w := range ws {
		if w.BlueprintID <= 0 {
			errs = append(errs, fmt.Errorf("watchables[%d].blueprint_id must be positive", i))
		}
		if w.PriceLimit < 0 {
			errs = append(errs, fmt.Errorf("watchables[%d].price_limit must not be negative", i))
		}
		if w.Language != nil && strings.TrimSpace(*w.Language) == "" {
			errs = append(errs, fmt.Errorf("watchables[%d].language must not be empty when set", i))
		}
		if first, dup := seen[w.BlueprintID]; dup && w.BlueprintID > 0 {
			errs = append(errs, fmt.Errorf(
				"watchables[%d].blueprint_id %d duplicates watchables[%d]", i, w.BlueprintID, first))
			continue
		}
		seen[w.BlueprintID] = i
	}

	return errs
}

func validateEmail(e *EmailConfig) []error {
	var errs []error

	if strings.TrimSpace(e.RelayHost) == "" {
		errs = append(errs, errors.New("email.relay_host is required"))
	}
	if e.Port < 1 || e.Port > 65535 {
		errs = append(errs, fmt.Errorf("email.port must be between 1 and 65535 (got %d)", e.Port))
	}
	if _, err := mail.ParseAddress(e.From); err != nil {
		errs = append(errs, fmt.Errorf("email.from: %w", err))
	}
	if _, err := mail.ParseAddress(e.To); err != nil {
		errs = append(errs, fmt.Errorf("email.to: %w", err))
	}

	return errs
}

func validateNotifications(n *NotificationsConfig) []error {
	var errs []error

	if n.Discord.Enabled && n.Discord.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.discord.webhook_url is required when enabled"))
	}
	if n.Telegram.Enabled {
		if n.Telegram.Token == "" {
			errs = append(errs, errors.New("notifications.telegram.token is required when enabled"))
		}
		if n.Telegram.ChatID == 0 {
			errs = append(errs, errors.New("notifications.telegram.chat_id is required when enabled"))
		}
	}
	if n.Pushover.Enabled && (n.Pushover.AppToken == "" || n.Pushover.UserKey == "") {
		errs = append(errs, errors.New(
			"notifications.pushover.app_token and user_key are required when enabled"))
	}

	return errs
}
