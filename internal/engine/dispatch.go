package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/donaldgifford/card-price-watcher/internal/metrics"
	"github.com/donaldgifford/card-price-watcher/internal/notify"
)

const defaultDeliveryTimeout = 30 * time.Second

// Dispatcher delivers messages in the background. Callers never wait for
// or observe the outcome; failures are logged and counted.
type Dispatcher struct {
	notifier notify.Notifier
	log      *slog.Logger
	timeout  time.Duration
	wg       sync.WaitGroup

	dispatched metric.Int64Counter
}

// NewDispatcher creates a Dispatcher delivering through n.
func NewDispatcher(n notify.Notifier, log *slog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	d := &Dispatcher{notifier: n, log: log, timeout: timeout}

	counter, err := otel.Meter(tracerName).Int64Counter("cpw.notifications.dispatched",
		metric.WithDescription("Notifications handed to the delivery backends, by outcome."),
	)
	if err != nil {
		log.Warn("creating dispatch counter failed", "error", err)
		counter = noop.Int64Counter{}
	}
	d.dispatched = counter

	return d
}

// Dispatch starts delivering msg and returns immediately.
func (d *Dispatcher) Dispatch(msg notify.Message) {
	d.wg.Add(1)
	metrics.NotificationsInFlight.Inc()

	go func() {
		defer d.wg.Done()
		defer metrics.NotificationsInFlight.Dec()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.notifier.Send(ctx, msg); err != nil {
			d.dispatched.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failure")))
			d.log.Error("notification delivery failed",
				"subject", msg.Subject,
				"error", err,
			)
			return
		}
		d.dispatched.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
		d.log.Debug("notification delivered", "subject", msg.Subject)
	}()
}

// Wait blocks until every started delivery has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
