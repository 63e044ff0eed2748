// Package schedule runs recurring tasks registered through a fluent
// builder:
//
//	schedule.Hourly().Name("cart-scan").WithoutOverlapping().Run(scan)
//	schedule.Every(5).Minutes().Run(syncData)
//
// Start(ctx) launches the dispatch loop in the background; call it once
// at boot, after the tasks are registered.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aranya-labs/aranya/pkg/logger"
)

// Task is a scheduled unit of work.
type Task func()

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	noOverlap bool

	mu      sync.Mutex
	lastRun time.Time
	busy    bool
}

// Schedule builds one entry before Run registers it.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every begins a builder: Every(5).Minutes(), Every(2).Hours(), ...
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

func EveryMinute() *Schedule { return Every(1).Minutes() }
func Hourly() *Schedule      { return Every(1).Hours() }
func Daily() *Schedule       { return Every(24).Hours() }
func Weekly() *Schedule      { return Every(7).Days() }

type freqBuilder struct{ n int }

func (f *freqBuilder) every(unit time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * unit}}
}

func (f *freqBuilder) Seconds() *Schedule { return f.every(time.Second) }
func (f *freqBuilder) Minutes() *Schedule { return f.every(time.Minute) }
func (f *freqBuilder) Hours() *Schedule   { return f.every(time.Hour) }
func (f *freqBuilder) Days() *Schedule    { return f.every(24 * time.Hour) }

// WithoutOverlapping skips a tick while the previous run is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name labels the entry for logs and schedule:run output.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Dispatch begins once Start is called.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start launches the dispatch loop in the background. Tasks fire once
// immediately, then on their interval. Cancelling ctx stops the loop;
// in-flight tasks finish on their own.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("schedule: scheduler started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			due := make([]*entry, 0, len(entries))
			for _, e := range entries {
				if e.due(now) {
					due = append(due, e)
				}
			}
			regMu.Unlock()
			for _, e := range due {
				e.fire()
			}
		}
	}
}

func (e *entry) due(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval
}

func (e *entry) fire() {
	e.mu.Lock()
	if e.noOverlap && e.busy {
		e.mu.Unlock()
		logger.Warn("schedule: previous run still going, skipping", "id", e.id)
		return
	}
	e.busy = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
			e.mu.Lock()
			e.busy = false
			e.mu.Unlock()
		}()
		logger.Info("schedule: running task", "id", e.id)
		e.task()
	}()
}

// List describes the registered entries for CLI display.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.id, e.interval))
	}
	return out
}
