package domain

// EventKind classifies a change in a target's best listing.
type EventKind string

// Event kinds.
const (
	EventAppeared          EventKind = "appeared"
	EventPriceIncreased    EventKind = "price_increased"
	EventPriceDecreased    EventKind = "price_decreased"
	EventBecameUnavailable EventKind = "became_unavailable"
)

// Favorable reports whether the event is good news for a buyer. Appearance
// and price drops are favorable; increases and unavailability are not.
func (k EventKind) Favorable() bool {
	return k == EventAppeared || k == EventPriceDecreased
}

// Event is the decided outcome of comparing a target's previous best
// listing with the newly selected one.
type Event struct {
	Kind     EventKind
	Target   WatchTarget
	Previous *Listing
	Current  *Listing
}
