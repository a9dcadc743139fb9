package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unikiosk/displays/pkg/config"
	"github.com/unikiosk/displays/pkg/display"
	"github.com/unikiosk/displays/pkg/eventer"
	"github.com/unikiosk/displays/pkg/store"
	"github.com/unikiosk/displays/pkg/store/disk"
	"github.com/unikiosk/displays/pkg/util/recover"
	"github.com/unikiosk/displays/pkg/watcher"
	"github.com/unikiosk/displays/pkg/web"
)

type Service interface {
	Run(ctx context.Context) error
}

var _ Service = &ServiceManager{}

type ServiceManager struct {
	log    *zap.Logger
	config *config.Config

	events  eventer.Eventer
	web     web.Interface
	watcher *watcher.Watcher
}

func New(ctx context.Context, log *zap.Logger, config *config.Config) (*ServiceManager, error) {
	store, err := disk.New(log.Named("store"), config)
	if err != nil {
		return nil, err
	}
	return NewWithDisplays(ctx, log, config, display.New(log.Named("display")), store)
}

// NewWithDisplays wires the service around an already built display client.
func NewWithDisplays(ctx context.Context, log *zap.Logger, config *config.Config, displays *display.Client, store store.Store) (*ServiceManager, error) {
	events := eventer.New(ctx, log.Named("eventer"))

	web, err := web.New(log.Named("webserver"), config, displays, store)
	if err != nil {
		return nil, err
	}

	return &ServiceManager{
		log:    log,
		config: config,

		events:  events,
		web:     web,
		watcher: watcher.New(log.Named("watcher"), config, displays, store, events),
	}, nil
}

// Events exposes layout change notifications.
func (s *ServiceManager) Events() eventer.Eventer {
	return s.events
}

func (s *ServiceManager) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer recover.Panic(s.log)
		return s.web.Run(ctx)
	})
	g.Go(func() error {
		defer recover.Panic(s.log)
		return s.watcher.Run(ctx)
	})

	return g.Wait()
}

// Watch runs only the watcher, for callers that consume Events directly.
func (s *ServiceManager) Watch(ctx context.Context) error {
	defer recover.Panic(s.log)
	return s.watcher.Run(ctx)
}
