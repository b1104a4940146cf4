package domain

import "time"

// WatchStatus is a read-only view of one target's tracking state, published
// for the status API.
type WatchStatus struct {
	Target       WatchTarget `json:"target"`
	Best         *Listing    `json:"best,omitempty"`
	LastPolledAt *time.Time  `json:"last_polled_at,omitempty"`
	LastError    string      `json:"last_error,omitempty"`
}
