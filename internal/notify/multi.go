package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/donaldgifford/card-price-watcher/internal/metrics"
)

// Backend is a named Notifier.
type Backend struct {
	Name     string
	Notifier Notifier
}

// MultiNotifier fans a message out to every backend in order. A failing
// backend does not stop delivery to the others.
type MultiNotifier struct {
	backends []Backend
}

// NewMultiNotifier creates a notifier delivering to all backends.
func NewMultiNotifier(backends ...Backend) *MultiNotifier {
	return &MultiNotifier{backends: backends}
}

// Len returns the number of configured backends.
func (m *MultiNotifier) Len() int {
	return len(m.backends)
}

// Send delivers msg to every backend and joins their errors.
func (m *MultiNotifier) Send(ctx context.Context, msg Message) error {
	var errs []error
	for _, b := range m.backends {
		start := time.Now()
		err := b.Notifier.Send(ctx, msg)
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.NotificationFailuresTotal.WithLabelValues(b.Name).Inc()
			errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues(b.Name).Inc()
	}
	return errors.Join(errs...)
}
