package engine

import (
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// Decide compares the tracked best listing in state with next, the
// listing selected this cycle (nil when nothing qualified). It updates
// state and returns the resulting event, or nil when nothing changed.
//
//	old  next  same price  result
//	nil  nil   -           none
//	nil  set   -           Appeared
//	set  set   yes         none, state kept
//	set  set   lower       PriceDecreased
//	set  set   higher      PriceIncreased
//	set  nil   -           BecameUnavailable
func Decide(target *domain.WatchTarget, state *domain.WatchState, next *domain.Listing) *domain.Event {
	prev := state.Best

	switch {
	case prev == nil && next == nil:
		return nil

	case prev == nil:
		state.Best = next
		return &domain.Event{
			Kind:    domain.EventAppeared,
			Target:  *target,
			Current: next,
		}

	case next == nil:
		state.Best = nil
		return &domain.Event{
			Kind:     domain.EventBecameUnavailable,
			Target:   *target,
			Previous: prev,
		}

	case next.Price.Cents == prev.Price.Cents:
		return nil
	}

	kind := domain.EventPriceIncreased
	if next.Price.Cents < prev.Price.Cents {
		kind = domain.EventPriceDecreased
	}

	state.Best = next
	return &domain.Event{
		Kind:     kind,
		Target:   *target,
		Previous: prev,
		Current:  next,
	}
}
