package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

const minimalYAML = `
bearer_token: tok
interval: 60000
watchables:
  - blueprint_id: 1234
    price_limit: 500
`

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: minimalYAML,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "tok", cfg.BearerToken)
				assert.Equal(t, time.Minute, cfg.IntervalDuration())
				require.Len(t, cfg.Watchables, 1)
				assert.Equal(t, int64(1234), cfg.Watchables[0].BlueprintID)
				assert.Equal(t, int64(500), cfg.Watchables[0].PriceLimit)
				assert.Nil(t, cfg.Email)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: minimalYAML,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, time.Second, cfg.APISpacingDuration())
				assert.Equal(t, "https://api.cardtrader.com/api/v2", cfg.CardTrader.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.CardTrader.Timeout)
				assert.Equal(t, 30*time.Second, cfg.Notifications.Timeout)
				assert.False(t, cfg.Server.Enabled)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.False(t, cfg.Telemetry.Enabled)
				assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
				assert.Equal(t, "card-price-watcher", cfg.Telemetry.ServiceName)
				assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 0.0001)
				assert.Equal(t, time.Minute, cfg.Telemetry.MetricInterval)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "full watchable",
			yaml: `
bearer_token: tok
interval: 5000
api_spacing: 250
seller_country_blacklist: [IT, fr]
watchables:
  - blueprint_id: 1
    price_limit: 100
    language: en
    min_condition: Near Mint
    can_order_via_zero: true
  - blueprint_id: 2
    price_limit: 200
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 250*time.Millisecond, cfg.APISpacingDuration())
				assert.Equal(t, []string{"IT", "fr"}, cfg.SellerCountryBlacklist)

				targets := cfg.Targets()
				require.Len(t, targets, 2)
				require.NotNil(t, targets[0].Language)
				assert.Equal(t, "en", *targets[0].Language)
				require.NotNil(t, targets[0].MinCondition)
				assert.Equal(t, domain.ConditionNearMint, *targets[0].MinCondition)
				assert.True(t, targets[0].CanOrderViaZero)
				assert.Nil(t, targets[1].Language)
				assert.Nil(t, targets[1].MinCondition)
				assert.False(t, targets[1].CanOrderViaZero)
			},
		},
		{
			name: "zero api spacing is kept",
			yaml: minimalYAML + "api_spacing: 0\n",
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, time.Duration(0), cfg.APISpacingDuration())
			},
		},
		{
			name: "json document",
			yaml: `{"bearer_token": "tok", "interval": 2000, "watchables": [{"blueprint_id": 9, "price_limit": 1}]}`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 2*time.Second, cfg.IntervalDuration())
				assert.Equal(t, int64(9), cfg.Watchables[0].BlueprintID)
			},
		},
		{
			name: "interval with millisecond remainder",
			yaml: `{"bearer_token": "tok", "interval": 1500, "watchables": [{"blueprint_id": 9, "price_limit": 1}]}`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 1500*time.Millisecond, cfg.IntervalDuration())
			},
		},
		{
			name: "env var substitution",
			yaml: `
bearer_token: "${TEST_CPW_TOKEN}"
interval: 60000
watchables:
  - blueprint_id: 1
    price_limit: 1
`,
			envVars: map[string]string{
				"TEST_CPW_TOKEN": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "secret123", cfg.BearerToken)
			},
		},
		{
			name: "email defaults to implicit TLS port",
			yaml: minimalYAML + `
email:
  relay_host: smtp.example.com
  from: Watcher <watcher@example.com>
  to: me@example.com
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.NotNil(t, cfg.Email)
				assert.Equal(t, 465, cfg.Email.Port)
				assert.Equal(t, "smtp.example.com", cfg.Email.RelayHost)
			},
		},
		{
			name: "missing bearer token",
			yaml: `
interval: 60000
watchables:
  - blueprint_id: 1
    price_limit: 1
`,
			wantErr: "bearer_token is required",
		},
		{
			name: "interval below one second",
			yaml: `
bearer_token: tok
interval: 500
watchables:
  - blueprint_id: 1
    price_limit: 1
`,
			wantErr: "interval must be at least 1000 ms",
		},
		{
			name:    "no watchables",
			yaml:    "bearer_token: tok\ninterval: 60000\n",
			wantErr: "watchables must contain at least one entry",
		},
		{
			name: "duplicate blueprint",
			yaml: minimalYAML + `  - blueprint_id: 1234
    price_limit: 900
`,
			wantErr: "watchables[1].blueprint_id 1234 duplicates watchables[0]",
		},
		{
			name: "negative price limit",
			yaml: `
bearer_token: tok
interval: 60000
watchables:
  - blueprint_id: 1
    price_limit: -1
`,
			wantErr: "watchables[0].price_limit must not be negative",
		},
		{
			name: "unknown condition",
			yaml: `
bearer_token: tok
interval: 60000
watchables:
  - blueprint_id: 1
    price_limit: 1
    min_condition: Pristine
`,
			wantErr: "unknown condition",
		},
		{
			name:    "bad country code",
			yaml:    minimalYAML + "seller_country_blacklist: [ITA]\n",
			wantErr: `"ITA" is not a two-letter country code`,
		},
		{
			name: "email without relay host",
			yaml: minimalYAML + `
email:
  from: watcher@example.com
  to: me@example.com
`,
			wantErr: "email.relay_host is required",
		},
		{
			name: "email bad address",
			yaml: minimalYAML + `
email:
  relay_host: smtp.example.com
  from: not-an-address
  to: me@example.com
`,
			wantErr: "email.from",
		},
		{
			name: "discord enabled without url",
			yaml: minimalYAML + `
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required",
		},
		{
			name: "telegram enabled without chat",
			yaml: minimalYAML + `
notifications:
  telegram:
    enabled: true
    token: abc
`,
			wantErr: "notifications.telegram.chat_id is required",
		},
		{
			name: "pushover enabled without keys",
			yaml: minimalYAML + `
notifications:
  pushover:
    enabled: true
`,
			wantErr: "notifications.pushover.app_token and user_key are required",
		},
		{
			name:    "sample ratio out of range",
			yaml:    minimalYAML + "telemetry:\n  sample_ratio: 1.5\n",
			wantErr: "telemetry.sample_ratio must be within [0, 1]",
		},
		{
			name:    "bad logging format",
			yaml:    minimalYAML + "logging:\n  format: xml\n",
			wantErr: "logging.format must be one of",
		},
		{
			name:    "malformed yaml",
			yaml:    "bearer_token: [unterminated",
			wantErr: "parsing config",
		},
		{
			name: "multiple errors reported together",
			yaml: `
interval: 10
`,
			wantErr: "bearer_token is required\ninterval must be at least",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfig_APISpacingDuration_Unset(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, time.Second, cfg.APISpacingDuration())
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv("CARDTRADER_TOKEN", "example-token")

	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "example-token", cfg.BearerToken)
	assert.Equal(t, 10*time.Minute, cfg.IntervalDuration())
	require.Len(t, cfg.Watchables, 2)
	require.NotNil(t, cfg.Watchables[0].MinCondition)
	assert.Equal(t, domain.ConditionNearMint, *cfg.Watchables[0].MinCondition)
	require.NotNil(t, cfg.Email)
	assert.Equal(t, 465, cfg.Email.Port)
	assert.True(t, cfg.Server.Enabled)
}
