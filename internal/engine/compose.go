package engine

import (
	"fmt"

	"github.com/donaldgifford/card-price-watcher/internal/cardtrader"
	"github.com/donaldgifford/card-price-watcher/internal/notify"
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

const noneText = "None"

// Glyph returns the short direction marker for an event kind.
func Glyph(kind domain.EventKind) string {
	switch kind {
	case domain.EventPriceIncreased:
		return "+"
	case domain.EventBecameUnavailable:
		return "0"
	default:
		return "-"
	}
}

// FormatListing renders "<price> <currency> - <country> - <name>", or
// "None" for a nil listing.
func FormatListing(l *domain.Listing) string {
	if l == nil {
		return noneText
	}
	return fmt.Sprintf("%s %s - %s - %s",
		l.Price.Major(),
		l.Price.Currency,
		l.Seller.CountryCode,
		l.Name,
	)
}

// Compose renders an event into a notification message.
func Compose(ev *domain.Event) notify.Message {
	var subject string
	if ev.Kind == domain.EventBecameUnavailable {
		subject = fmt.Sprintf("[%s] Unavailable - %s", Glyph(ev.Kind), listingName(ev.Previous))
	} else {
		subject = fmt.Sprintf("[%s] %s", Glyph(ev.Kind), FormatListing(ev.Current))
	}

	link := cardtrader.CardURL(ev.Target.BlueprintID)
	body := fmt.Sprintf("New:      %s\nPrevious: %s\n%s",
		FormatListing(ev.Current),
		FormatListing(ev.Previous),
		link,
	)

	return notify.Message{
		Subject:   subject,
		Body:      body,
		URL:       link,
		Favorable: ev.Kind.Favorable(),
	}
}

// LogLine renders the one-line console record of an event.
func LogLine(ev *domain.Event) string {
	if ev.Kind == domain.EventBecameUnavailable {
		return fmt.Sprintf("[%s] None - %s", Glyph(ev.Kind), listingName(ev.Previous))
	}
	return fmt.Sprintf("[%s] %s", Glyph(ev.Kind), FormatListing(ev.Current))
}

func listingName(l *domain.Listing) string {
	if l == nil || l.Name == "" {
		return noneText
	}
	return l.Name
}
