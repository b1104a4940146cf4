package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultPushoverURL = "https://api.pushover.net/1/messages.json"

// PushoverNotifier implements Notifier via the Pushover messages API.
type PushoverNotifier struct {
	token   string
	user    string
	apiURL  string
	client  *http.Client
	nowFunc func() time.Time
}

// PushoverOption configures a PushoverNotifier.
type PushoverOption func(*PushoverNotifier)

// WithPushoverURL overrides the messages endpoint.
func WithPushoverURL(u string) PushoverOption {
	return func(p *PushoverNotifier) {
		p.apiURL = u
	}
}

// WithPushoverHTTPClient sets a custom HTTP client.
func WithPushoverHTTPClient(c *http.Client) PushoverOption {
	return func(p *PushoverNotifier) {
		p.client = c
	}
}

// NewPushoverNotifier creates a notifier for the given application token and
// user key.
func NewPushoverNotifier(appToken, userKey string, opts ...PushoverOption) *PushoverNotifier {
	p := &PushoverNotifier{
		token:   appToken,
		user:    userKey,
		apiURL:  defaultPushoverURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type pushoverMessage struct {
	Token     string `json:"token"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	URL       string `json:"url,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type pushoverResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors"`
}

// Send posts the message to Pushover.
func (p *PushoverNotifier) Send(ctx context.Context, msg Message) error {
	m := &pushoverMessage{
		Token:     p.token,
		User:      p.user,
		Title:     msg.Subject,
		Message:   msg.Body,
		URL:       msg.URL,
		Timestamp: p.nowFunc().Unix(),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("encoding pushover message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, &buf)
	if err != nil {
		return fmt.Errorf("creating pushover request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending pushover message: %w", err)
	}
	defer resp.Body.Close()

	r := new(pushoverResponse)
	if err := json.NewDecoder(resp.Body).Decode(r); err != nil {
		return fmt.Errorf("decoding pushover response (status %d): %w", resp.StatusCode, err)
	}
	if r.Status != 1 {
		if len(r.Errors) != 0 {
			return fmt.Errorf("pushover returned %d: %w", resp.StatusCode, errors.New(r.Errors[0]))
		}
		return fmt.Errorf("pushover returned %d with status %d", resp.StatusCode, r.Status)
	}
	return nil
}
