package watcher

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/display"
	"github.com/unikiosk/displays/pkg/eventer"
	"github.com/unikiosk/displays/pkg/store"
)

// Lister is the part of display.Client the watcher needs.
type Lister interface {
	Monitors() ([]display.Monitor, error)
}

// Watcher re-enumerates displays on an interval and emits an event whenever
// the layout differs from the last persisted snapshot.
type Watcher struct {
	log      *zap.Logger
	displays Lister
	store    store.Store
	events   eventer.Eventer
	interval time.Duration

	now func() time.Time
}

func New(log *zap.Logger, config *config.Config, displays Lister, store store.Store, events eventer.Eventer) *Watcher {
	return &Watcher{
		log:      log,
		displays: displays,
		store:    store,
		events:   events,
		interval: config.WatchInterval,
		now:      time.Now,
	}
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("watching display layout", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.Check(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Check runs a single poll. Enumeration failures are reported as events, only
// store and eventer failures are returned.
func (w *Watcher) Check(ctx context.Context) error {
	monitors, err := w.displays.Monitors()
	if err != nil {
		return w.events.Emit(ctx, api.Event{
			Type:  api.EventTypeEnumerationFailed,
			Error: err.Error(),
		})
	}

	current := api.Snapshot{
		Taken:    w.now(),
		Monitors: api.MonitorsFromDisplay(monitors),
	}

	previous, err := w.store.Get()
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
	case errors.Is(err, store.ErrCorrupt):
		w.log.Warn("discarding unreadable snapshot", zap.Error(err))
		previous = nil
	default:
		return err
	}
	if previous != nil && previous.Equal(current) {
		return nil
	}

	w.log.Info("display layout changed", zap.Int("monitors", len(current.Monitors)))
	if err := w.store.Persist(current); err != nil {
		return err
	}

	return w.events.Emit(ctx, api.Event{
		Type:     api.EventTypeLayoutChanged,
		Snapshot: current,
		Previous: previous,
	})
}
