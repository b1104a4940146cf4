package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func TestNewEmailNotifier_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     EmailConfig
		wantErr string
	}{
		{
			name:    "missing relay host",
			cfg:     EmailConfig{From: "a@example.com", To: "b@example.com"},
			wantErr: "relay host is required",
		},
		{
			name:    "invalid from",
			cfg:     EmailConfig{RelayHost: "smtp.example.com", From: "not an address", To: "b@example.com"},
			wantErr: "parsing from address",
		},
		{
			name:    "invalid to",
			cfg:     EmailConfig{RelayHost: "smtp.example.com", From: "a@example.com", To: ""},
			wantErr: "parsing to address",
		},
		{
			name: "valid with display names",
			cfg: EmailConfig{
				RelayHost: "smtp.example.com",
				From:      "Watcher <watcher@example.com>",
				To:        "Me <me@example.com>",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := NewEmailNotifier(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "smtp.example.com:465", e.addr)
			assert.Nil(t, e.auth)
		})
	}
}

func TestEmailNotifier_Send(t *testing.T) {
	t.Parallel()

	var got capturedMail
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	e, err := NewEmailNotifier(
		EmailConfig{
			RelayHost: "smtp.example.com",
			Port:      587,
			Username:  "user",
			Password:  "pass",
			From:      "Watcher <watcher@example.com>",
			To:        "me@example.com",
		},
		withSendFunc(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			got = capturedMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)}
			return nil
		}),
		WithEmailNowFunc(func() time.Time { return fixed }),
	)
	require.NoError(t, err)

	err = e.Send(context.Background(), testMessage(true))
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", got.addr)
	assert.NotNil(t, got.auth)
	assert.Equal(t, "watcher@example.com", got.from)
	assert.Equal(t, []string{"me@example.com"}, got.to)

	headers, body, found := strings.Cut(got.msg, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, headers, "Subject: [-] 4.00 EUR - DE - Lightning Bolt\r\n")
	assert.Contains(t, headers, `From: "Watcher" <watcher@example.com>`)
	assert.Contains(t, headers, "Date: Mon, 19 Oct 2026 12:00:00 +0000")
	assert.Contains(t, headers, "Content-Type: text/plain; charset=utf-8")
	assert.True(t, strings.HasPrefix(body, "New:      4.00 EUR - DE - Lightning Bolt\r\nPrevious: "))
}

func TestEmailNotifier_Send_NonASCIISubject(t *testing.T) {
	t.Parallel()

	var raw string
	e, err := NewEmailNotifier(
		EmailConfig{RelayHost: "smtp.example.com", From: "a@example.com", To: "b@example.com"},
		withSendFunc(func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
			raw = string(msg)
			return nil
		}),
	)
	require.NoError(t, err)

	require.NoError(t, e.Send(context.Background(), Message{Subject: "[-] 1.00 EUR - DE - Jötun Grunt", Body: "b"}))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
}

func TestEmailNotifier_Send_Error(t *testing.T) {
	t.Parallel()

	e, err := NewEmailNotifier(
		EmailConfig{RelayHost: "smtp.example.com", From: "a@example.com", To: "b@example.com"},
		withSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("relay refused")
		}),
	)
	require.NoError(t, err)

	err = e.Send(context.Background(), testMessage(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending email: relay refused")
}

func TestEmailNotifier_Send_CanceledContext(t *testing.T) {
	t.Parallel()

	e, err := NewEmailNotifier(
		EmailConfig{RelayHost: "smtp.example.com", From: "a@example.com", To: "b@example.com"},
		withSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
			t.Error("send must not be called with a canceled context")
			return nil
		}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = e.Send(ctx, testMessage(true))
	require.ErrorIs(t, err, context.Canceled)
}
