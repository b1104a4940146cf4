// Package notify defines the notification interface and its delivery
// backends.
package notify

import (
	"context"
	"unicode/utf8"
)

// Message is a composed, transport-neutral notification.
type Message struct {
	Subject string
	Body    string
	// URL links to the marketplace page of the item, if any.
	URL string
	// Favorable is true for good news (appearance, price drop). Backends
	// that support it use it for coloring.
	Favorable bool
}

// Notifier delivers a composed message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// truncateRunes shortens s to at most limit characters without splitting a
// multi-byte character.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
