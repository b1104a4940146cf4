// Package engine implements the watch cycle: polling the marketplace,
// selecting the best qualifying listing per target, deciding on change
// events and dispatching notifications.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/card-price-watcher/internal/cardtrader"
	"github.com/donaldgifford/card-price-watcher/internal/metrics"
	"github.com/donaldgifford/card-price-watcher/internal/notify"
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

const (
	defaultAPISpacing = time.Second
	tracerName        = "github.com/donaldgifford/card-price-watcher/internal/engine"
)

// Watcher tracks the best listing of every configured target across poll
// cycles. RunCycle must not be called concurrently.
type Watcher struct {
	source     cardtrader.ListingSource
	dispatcher *Dispatcher
	targets    []domain.WatchTarget
	blacklist  CountryBlacklist
	states     *StateStore
	pacer      *Pacer
	log        *slog.Logger
	events     io.Writer
	tracer     trace.Tracer
	nowFunc    func() time.Time

	deliveryTimeout time.Duration
	snapshot        atomic.Pointer[[]domain.WatchStatus]
	cycles          atomic.Int64
}

// ErrNotReady is returned by Ready until the first cycle has completed.
var ErrNotReady = errors.New("no watch cycle completed yet")

// Option configures the Watcher.
type Option func(*Watcher)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// WithAPISpacing sets the minimum delay between marketplace calls.
func WithAPISpacing(d time.Duration) Option {
	return func(w *Watcher) {
		w.pacer = NewPacer(d)
	}
}

// WithEventWriter sets where the one-line change records are written.
func WithEventWriter(out io.Writer) Option {
	return func(w *Watcher) {
		w.events = out
	}
}

// WithTracer sets the tracer used for cycle and target spans.
func WithTracer(t trace.Tracer) Option {
	return func(w *Watcher) {
		w.tracer = t
	}
}

// WithDeliveryTimeout bounds each background notification delivery.
func WithDeliveryTimeout(d time.Duration) Option {
	return func(w *Watcher) {
		w.deliveryTimeout = d
	}
}

// WithNowFunc overrides the clock. Used by tests.
func WithNowFunc(f func() time.Time) Option {
	return func(w *Watcher) {
		w.nowFunc = f
	}
}

// NewWatcher creates a Watcher for targets, in the given order. Duplicate
// blueprint ids are tracked once, by their first occurrence.
func NewWatcher(
	source cardtrader.ListingSource,
	n notify.Notifier,
	targets []domain.WatchTarget,
	blacklist CountryBlacklist,
	opts ...Option,
) *Watcher {
	w := &Watcher{
		source:    source,
		blacklist: blacklist,
		states:    NewStateStore(targets),
		pacer:     NewPacer(defaultAPISpacing),
		log:       slog.Default(),
		events:    os.Stdout,
		tracer:    otel.Tracer(tracerName),
		nowFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.targets = make([]domain.WatchTarget, 0, w.states.Len())
	for _, id := range w.states.order {
		w.targets = append(w.targets, w.states.byID[id].target)
	}

	if n == nil {
		n = notify.NewNoOpNotifier(w.log)
	}
	w.dispatcher = NewDispatcher(n, w.log, w.deliveryTimeout)
	w.publish()
	return w
}

// Targets returns the tracked targets in processing order.
func (w *Watcher) Targets() []domain.WatchTarget {
	return w.targets
}

// State returns the live WatchState of a blueprint. It must only be used
// from the goroutine running cycles.
func (w *Watcher) State(blueprintID int64) *domain.WatchState {
	return w.states.State(blueprintID)
}

// Snapshot returns the most recently published status of every target. It
// is safe to call from any goroutine.
func (w *Watcher) Snapshot() []domain.WatchStatus {
	return *w.snapshot.Load()
}

// CompletedCycles returns how many cycles ran to completion.
func (w *Watcher) CompletedCycles() int64 {
	return w.cycles.Load()
}

// Ready reports whether at least one cycle has completed.
func (w *Watcher) Ready(context.Context) error {
	if w.cycles.Load() == 0 {
		return ErrNotReady
	}
	return nil
}

// Wait blocks until pending notification deliveries finish or ctx is done.
func (w *Watcher) Wait(ctx context.Context) error {
	return w.dispatcher.Wait(ctx)
}

// RunCycle polls every target once, in order. Per-target failures are
// logged and skipped; only context cancellation aborts the cycle.
func (w *Watcher) RunCycle(ctx context.Context) error {
	start := w.nowFunc()
	cycleID := uuid.NewString()

	ctx, span := w.tracer.Start(ctx, "watch.cycle",
		trace.WithAttributes(
			attribute.String("cycle.id", cycleID),
			attribute.Int("cycle.targets", len(w.targets)),
		),
	)
	defer span.End()

	log := w.log.With("cycle", cycleID)
	log.Debug("cycle starting", "targets", len(w.targets))

	var failed int
	for i := range w.targets {
		if err := w.pacer.Wait(ctx); err != nil {
			span.SetStatus(codes.Error, "canceled")
			return err
		}

		if err := w.processTarget(ctx, log, &w.targets[i]); err != nil {
			if ctx.Err() != nil {
				span.SetStatus(codes.Error, "canceled")
				return ctx.Err()
			}
			failed++
		}
	}

	elapsed := w.nowFunc().Sub(start)
	w.cycles.Add(1)
	metrics.CyclesTotal.Inc()
	metrics.CycleDuration.Observe(elapsed.Seconds())
	metrics.LastCycleTimestamp.Set(float64(w.nowFunc().Unix()))

	span.SetAttributes(attribute.Int("cycle.failed", failed))
	log.Debug("cycle complete", "failed", failed, "duration", elapsed)
	return nil
}

func (w *Watcher) processTarget(
	ctx context.Context,
	log *slog.Logger,
	target *domain.WatchTarget,
) error {
	ctx, span := w.tracer.Start(ctx, "watch.target",
		trace.WithAttributes(attribute.Int64("blueprint.id", target.BlueprintID)),
	)
	defer span.End()

	language := ""
	if target.Language != nil {
		language = *target.Language
	}

	listings, err := w.source.Fetch(ctx, target.BlueprintID, language)
	w.states.markPolled(target.BlueprintID, w.nowFunc(), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		log.Error("fetching marketplace listings failed",
			"blueprint_id", target.BlueprintID,
			"error", err,
		)
		w.publish()
		return fmt.Errorf("fetching listings for %d: %w", target.BlueprintID, err)
	}

	best := SelectBest(listings, target, w.blacklist)
	span.SetAttributes(
		attribute.Int("listings.received", len(listings)),
		attribute.Bool("listings.qualified", best != nil),
	)

	state := w.states.State(target.BlueprintID)
	ev := Decide(target, state, best)
	w.publish()
	recordBestPrice(target.BlueprintID, state)

	if ev == nil {
		return nil
	}

	w.handleEvent(log, ev)
	return nil
}

func (w *Watcher) handleEvent(log *slog.Logger, ev *domain.Event) {
	metrics.EventsTotal.WithLabelValues(string(ev.Kind)).Inc()

	fmt.Fprintln(w.events, LogLine(ev))
	log.Info("best listing changed",
		"blueprint_id", ev.Target.BlueprintID,
		"kind", string(ev.Kind),
		"previous", FormatListing(ev.Previous),
		"current", FormatListing(ev.Current),
	)

	w.dispatcher.Dispatch(Compose(ev))
}

func (w *Watcher) publish() {
	snap := w.states.Snapshot()
	w.snapshot.Store(&snap)
}

func recordBestPrice(blueprintID int64, state *domain.WatchState) {
	label := strconv.FormatInt(blueprintID, 10)
	if state.Best == nil {
		metrics.BestPriceCents.DeleteLabelValues(label)
		return
	}
	metrics.BestPriceCents.WithLabelValues(label).Set(float64(state.Best.Price.Cents))
}
