package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/card-price-watcher/internal/metrics"
)

// Scheduler runs watch cycles at a fixed interval. Cycles never overlap: a
// tick or trigger that arrives while a cycle is still running is skipped.
type Scheduler struct {
	cron     *cron.Cron
	watcher  *Watcher
	interval time.Duration
	log      *slog.Logger
	entryID  cron.EntryID

	mu      sync.Mutex
	ctx     context.Context
	running atomic.Bool
	manual  sync.WaitGroup
}

// NewScheduler creates a Scheduler for w. The interval must be at least one
// second and is honoured to the millisecond.
func NewScheduler(w *Watcher, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("interval %s is below the one second minimum", interval)
	}

	cl := cronLogger{log: log}
	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(cl)),
		watcher:  w,
		interval: interval,
		log:      log,
	}

	job := cron.NewChain(cron.Recover(cl)).Then(cron.FuncJob(func() { s.tryRun("schedule") }))
	s.entryID = s.cron.Schedule(exactDelay(interval), job)

	return s, nil
}

// exactDelay is a cron.Schedule firing every d, keeping sub-second
// precision that "@every" would round away.
type exactDelay time.Duration

// Next implements cron.Schedule.
func (d exactDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

// Run executes one cycle immediately, then one per interval until ctx is
// canceled. It returns after any in-flight cycle has finished.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.log.Info("scheduler started",
		"interval", s.interval,
		"targets", len(s.watcher.Targets()),
	)

	s.tryRun("startup")

	s.cron.Start()
	<-ctx.Done()

	s.log.Info("scheduler stopping")
	<-s.cron.Stop().Done()
	s.manual.Wait()
	return nil
}

// Trigger starts a cycle in the background, outside the regular schedule.
// It reports false when the scheduler is not running or a cycle is already
// in progress.
func (s *Scheduler) Trigger() bool {
	ctx := s.context()
	if ctx == nil || ctx.Err() != nil {
		return false
	}
	if !s.running.CompareAndSwap(false, true) {
		return false
	}

	s.manual.Add(1)
	go func() {
		defer s.manual.Done()
		defer s.running.Store(false)
		s.log.Info("manual cycle triggered")
		s.runCycle(ctx)
	}()
	return true
}

// Running reports whether a cycle is in progress.
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns when the next scheduled cycle is due, or the zero time
// before Run.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Scheduler) tryRun(source string) {
	if !s.running.CompareAndSwap(false, true) {
		metrics.CyclesSkippedTotal.Inc()
		s.log.Warn("previous cycle still running, skipping", "source", source)
		return
	}
	defer s.running.Store(false)

	ctx := s.context()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	s.runCycle(ctx)
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if err := s.watcher.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error("watch cycle failed", "error", err)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
