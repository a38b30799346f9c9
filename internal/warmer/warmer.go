// Package warmer re-reads the public lists on a schedule so the read cache
// stays populated.
package warmer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Target struct {
	Name string
	Warm func(ctx context.Context) (int, error)
}

// List adapts a service Warm method to a Target.
func List[T any](name string, warm func(ctx context.Context) ([]T, error)) Target {
	return Target{
		Name: name,
		Warm: func(ctx context.Context) (int, error) {
			items, err := warm(ctx)
			return len(items), err
		},
	}
}

type Warmer struct {
	cron    *cron.Cron
	targets []Target
	timeout time.Duration
	log     *slog.Logger
}

// New schedules a warm pass with a standard cron spec or a descriptor such as
// "@every 5m".
func New(schedule string, loc *time.Location, log *slog.Logger, targets ...Target) (*Warmer, error) {
	if loc == nil {
		loc = time.UTC
	}
	w := &Warmer{
		cron:    cron.New(cron.WithLocation(loc)),
		targets: targets,
		timeout: 30 * time.Second,
		log:     log,
	}
	if _, err := w.cron.AddFunc(schedule, func() { w.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("cache warm schedule %q: %w", schedule, err)
	}
	return w, nil
}

func (w *Warmer) Start() {
	w.cron.Start()
}

// Stop halts the schedule and waits for a running pass.
func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

// Run warms every target once. A failing target is logged and does not stop
// the others.
func (w *Warmer) Run(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	failures := map[string]error{}
	for _, t := range w.targets {
		count, err := t.Warm(ctx)
		if err != nil {
			w.log.Warn("cache warm: failed", slog.String("target", t.Name), slog.String("error", err.Error()))
			failures[t.Name] = err
			continue
		}
		w.log.Info("cache warm: ok", slog.String("target", t.Name), slog.Int("count", count))
	}
	return failures
}
