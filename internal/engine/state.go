package engine

import (
	"time"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// targetState is the mutable record kept per target.
type targetState struct {
	target       domain.WatchTarget
	state        domain.WatchState
	lastPolledAt *time.Time
	lastError    string
}

// StateStore maps blueprint ids to their WatchState. It is owned by the
// Watcher and mutated only from the cycle loop, so it has no locking.
type StateStore struct {
	byID  map[int64]*targetState
	order []int64
}

// NewStateStore creates an empty state (no best listing) for every target,
// remembering configuration order.
func NewStateStore(targets []domain.WatchTarget) *StateStore {
	s := &StateStore{
		byID:  make(map[int64]*targetState, len(targets)),
		order: make([]int64, 0, len(targets)),
	}
	for _, t := range targets {
		if _, dup := s.byID[t.BlueprintID]; dup {
			continue
		}
		s.byID[t.BlueprintID] = &targetState{target: t}
		s.order = append(s.order, t.BlueprintID)
	}
	return s
}

// Len returns the number of tracked targets.
func (s *StateStore) Len() int {
	return len(s.order)
}

// State returns the WatchState for a blueprint, or nil if it is not tracked.
func (s *StateStore) State(blueprintID int64) *domain.WatchState {
	ts, ok := s.byID[blueprintID]
	if !ok {
		return nil
	}
	return &ts.state
}

func (s *StateStore) markPolled(blueprintID int64, at time.Time, err error) {
	ts, ok := s.byID[blueprintID]
	if !ok {
		return
	}
	ts.lastPolledAt = &at
	ts.lastError = ""
	if err != nil {
		ts.lastError = err.Error()
	}
}

// Snapshot copies every target's status in configuration order. Listings
// are never mutated once built, so copying the top-level values is enough
// to keep readers off the live state.
func (s *StateStore) Snapshot() []domain.WatchStatus {
	out := make([]domain.WatchStatus, 0, len(s.order))
	for _, id := range s.order {
		ts := s.byID[id]
		st := domain.WatchStatus{
			Target:    ts.target,
			LastError: ts.lastError,
		}
		if ts.state.Best != nil {
			best := *ts.state.Best
			st.Best = &best
		}
		if ts.lastPolledAt != nil {
			at := *ts.lastPolledAt
			st.LastPolledAt = &at
		}
		out = append(out, st)
	}
	return out
}
