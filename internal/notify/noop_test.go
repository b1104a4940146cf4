package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_Send(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	err := n.Send(t.Context(), Message{Subject: "[-] 4.50 EUR - DE - Lightning Bolt", Body: "ignored"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "notification discarded")
	assert.Contains(t, buf.String(), "Lightning Bolt")
	assert.NotContains(t, buf.String(), "ignored")
}
