package telemetry

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), Config{}, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_EnabledTracesOnly(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Enabled:        true,
		Endpoint:       "127.0.0.1:4317",
		Insecure:       true,
		ServiceName:    "card-price-watcher",
		ServiceVersion: "test",
		SampleRatio:    1,
	}

	// The gRPC exporter connects lazily, so setup succeeds without a collector.
	shutdown, err := Setup(context.Background(), cfg, quietLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cpw", userAgent(Config{ServiceName: "cpw"}))
	assert.Equal(t, "cpw/1.2.3", userAgent(Config{ServiceName: "cpw", ServiceVersion: "1.2.3"}))
}
