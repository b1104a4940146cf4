package main

import "errors"

// KnownMetrics is the set of metric names exported by card-price-watcher
// plus recording rule names referenced in dashboards and alerts. Histogram
// series are listed by their base name.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"cpw_http_request_duration_seconds": true,
	"cpw_http_requests_total":           true,

	// Health metrics.
	"cpw_healthz_up": true,
	"cpw_readyz_up":  true,

	// Watch cycle metrics.
	"cpw_cycles_total":           true,
	"cpw_cycle_duration_seconds": true,
	"cpw_cycles_skipped_total":   true,
	"cpw_last_cycle_timestamp":   true,
	"cpw_events_total":           true,
	"cpw_best_price_cents":       true,

	// Marketplace API metrics.
	"cpw_marketplace_requests_total":           true,
	"cpw_marketplace_errors_total":             true,
	"cpw_marketplace_request_duration_seconds": true,
	"cpw_listings_received_total":              true,

	// Notification metrics.
	"cpw_notifications_sent_total":      true,
	"cpw_notification_failures_total":   true,
	"cpw_notification_duration_seconds": true,
	"cpw_notifications_in_flight":       true,

	// Recording rules.
	"cpw:http_requests:rate5m":         true,
	"cpw:http_errors:rate5m":           true,
	"cpw:marketplace_requests:rate5m":  true,
	"cpw:marketplace_errors:rate5m":    true,
	"cpw:notification_failures:rate5m": true,
	"cpw:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
	// PlainRules writes rule_files-style YAML instead of PrometheusRule CRs.
	PlainRules bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
