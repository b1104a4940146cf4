package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

func TestGlyph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind domain.EventKind
		want string
	}{
		{domain.EventAppeared, "-"},
		{domain.EventPriceDecreased, "-"},
		{domain.EventPriceIncreased, "+"},
		{domain.EventBecameUnavailable, "0"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Glyph(tt.kind))
		})
	}
}

func TestFormatListing(t *testing.T) {
	t.Parallel()

	l := listing(1, 1234, "Lightning Bolt")
	assert.Equal(t, "12.34 EUR - DE - Lightning Bolt", FormatListing(&l))

	l.Price.Cents = 5
	assert.Equal(t, "0.05 EUR - DE - Lightning Bolt", FormatListing(&l))

	assert.Equal(t, "None", FormatListing(nil))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	target := domain.WatchTarget{BlueprintID: 42, PriceLimit: 1000}
	prev := ptrListing(1, 500, "Bolt")
	cur := ptrListing(2, 400, "Bolt")

	tests := []struct {
		name          string
		ev            domain.Event
		wantSubject   string
		wantBody      string
		wantFavorable bool
	}{
		{
			name:        "appeared",
			ev:          domain.Event{Kind: domain.EventAppeared, Target: target, Current: prev},
			wantSubject: "[-] 5.00 EUR - DE - Bolt",
			wantBody: "New:      5.00 EUR - DE - Bolt\n" +
				"Previous: None\n" +
				"https://www.cardtrader.com/cards/42",
			wantFavorable: true,
		},
		{
			name: "price decreased",
			ev: domain.Event{
				Kind: domain.EventPriceDecreased, Target: target,
				Previous: prev, Current: cur,
			},
			wantSubject: "[-] 4.00 EUR - DE - Bolt",
			wantBody: "New:      4.00 EUR - DE - Bolt\n" +
				"Previous: 5.00 EUR - DE - Bolt\n" +
				"https://www.cardtrader.com/cards/42",
			wantFavorable: true,
		},
		{
			name: "price increased",
			ev: domain.Event{
				Kind: domain.EventPriceIncreased, Target: target,
				Previous: cur, Current: prev,
			},
			wantSubject: "[+] 5.00 EUR - DE - Bolt",
			wantBody: "New:      5.00 EUR - DE - Bolt\n" +
				"Previous: 4.00 EUR - DE - Bolt\n" +
				"https://www.cardtrader.com/cards/42",
		},
		{
			name: "became unavailable",
			ev: domain.Event{
				Kind: domain.EventBecameUnavailable, Target: target,
				Previous: prev,
			},
			wantSubject: "[0] Unavailable - Bolt",
			wantBody: "New:      None\n" +
				"Previous: 5.00 EUR - DE - Bolt\n" +
				"https://www.cardtrader.com/cards/42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := Compose(&tt.ev)
			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.Equal(t, tt.wantBody, msg.Body)
			assert.Equal(t, "https://www.cardtrader.com/cards/42", msg.URL)
			assert.Equal(t, tt.wantFavorable, msg.Favorable)
		})
	}
}

func TestCompose_MajorUnitsNeverTruncated(t *testing.T) {
	t.Parallel()

	ev := &domain.Event{
		Kind:    domain.EventAppeared,
		Target:  domain.WatchTarget{BlueprintID: 7},
		Current: ptrListing(1, 1234, "Bolt"),
	}

	msg := Compose(ev)
	assert.Contains(t, msg.Subject, "12.34 EUR")
	assert.NotContains(t, msg.Subject, "12.340")
	assert.NotContains(t, msg.Body, "12.3 ")
}

func TestLogLine(t *testing.T) {
	t.Parallel()

	target := domain.WatchTarget{BlueprintID: 42}

	assert.Equal(t, "[-] 5.00 EUR - DE - Bolt", LogLine(&domain.Event{
		Kind: domain.EventAppeared, Target: target, Current: ptrListing(1, 500, "Bolt"),
	}))
	assert.Equal(t, "[+] 6.00 EUR - DE - Bolt", LogLine(&domain.Event{
		Kind: domain.EventPriceIncreased, Target: target,
		Previous: ptrListing(1, 500, "Bolt"), Current: ptrListing(2, 600, "Bolt"),
	}))
	assert.Equal(t, "[0] None - Bolt", LogLine(&domain.Event{
		Kind: domain.EventBecameUnavailable, Target: target, Previous: ptrListing(1, 500, "Bolt"),
	}))
	assert.Equal(t, "[0] None - None", LogLine(&domain.Event{
		Kind: domain.EventBecameUnavailable, Target: target, Previous: ptrListing(1, 500, ""),
	}))
}
