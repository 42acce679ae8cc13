package monitor

import (
	"context"
	"log"
	"time"

	"github.com/TSZwane/modern-task-manager/model"
)

// DefaultInterval matches the reference refresh rate.
const DefaultInterval = 10 * time.Second

// SnapshotSource reads process and performance state from the OS.
type SnapshotSource interface {
	Processes(ctx context.Context) []model.ProcessRecord
	Performance(ctx context.Context) model.Performance
}

// ServiceSource reads a bounded list of service records, best-effort.
type ServiceSource interface {
	Capture(ctx context.Context) []model.ServiceRecord
}

// Sink receives each completed Snapshot. Implementations must be safe to
// call from the sampler goroutine; the bubbletea Program.Send wrapper in ui
// and the watch daemon both are.
type Sink interface {
	Send(model.Snapshot)
}

// Engine is the sampler loop: one background goroutine pulling from the
// snapshot and service sources on a fixed interval. It never touches view
// state and never blocks on rendering.
type Engine struct {
	source   SnapshotSource
	services ServiceSource
	interval time.Duration
	refresh  chan struct{}
	logger   *log.Logger
}

func NewEngine(source SnapshotSource, services ServiceSource, interval time.Duration, logger *log.Logger) *Engine {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Engine{
		source:   source,
		services: services,
		interval: interval,
		refresh:  make(chan struct{}, 1),
		logger:   logger,
	}
}

// Run samples until ctx is cancelled. The first sample is taken
// immediately so the UI is populated on startup; the interval sleep
// happens after dispatch, not before.
func (e *Engine) Run(ctx context.Context, sink Sink) error {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.cycle(ctx, sink)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-e.refresh:
			e.cycle(ctx, sink)

		case <-ticker.C:
			e.cycle(ctx, sink)
		}
	}
}

// Refresh requests one out-of-band sample. Non-blocking; if a refresh is
// already pending the request is coalesced into it.
func (e *Engine) Refresh() {
	select {
	case e.refresh <- struct{}{}:
	default:
	}
}

func (e *Engine) cycle(ctx context.Context, sink Sink) {
	defer func() {
		if r := recover(); r != nil && e.logger != nil {
			e.logger.Printf("sampling cycle recovered: %v", r)
		}
	}()

	procs := e.source.Processes(ctx)
	svcs := e.services.Capture(ctx)
	perf := e.source.Performance(ctx)

	sink.Send(model.NewSnapshot(procs, svcs, perf, time.Now()))
}
