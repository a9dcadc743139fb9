package eventer

// eventer fans a single producer out to multiple subscribers.

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unikiosk/displays/pkg/api"
)

var (
	// DefaultSendEventTimeout is the timeout used when publishing events to consumers
	DefaultSendEventTimeout = 2 * time.Second

	// ConsumerGCInterval is the interval at which garbage collection of consumers
	// occurs
	ConsumerGCInterval = time.Minute
)

var _ Eventer = &ChannelEventer{}

type Eventer interface {
	Subscribe(ctx context.Context) <-chan api.Event
	Emit(ctx context.Context, event api.Event) error
}

// ChannelEventer is a utility to control broadcast of Events to multiple consumers.
type ChannelEventer struct {
	// events is never closed; its lifetime is tied to the event loop and
	// closing it would race with Emit.
	events chan api.Event

	// consumers is guarded by consumersLock
	consumers     []*eventConsumer
	consumersLock sync.RWMutex

	ctx context.Context
	log *zap.Logger
}

type eventConsumer struct {
	timeout time.Duration
	ctx     context.Context
	ch      chan api.Event
}

// New returns an Eventer with a running event loop that stops with ctx.
func New(ctx context.Context, log *zap.Logger) *ChannelEventer {
	e := &ChannelEventer{
		events: make(chan api.Event),
		ctx:    ctx,
		log:    log,
	}
	go e.eventLoop()
	return e
}

func (e *ChannelEventer) eventLoop() {
	gc := time.NewTicker(ConsumerGCInterval)
	defer gc.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.log.Debug("event loop shutdown")
			e.closeConsumers()
			return
		case event := <-e.events:
			e.iterateConsumers(event)
		case <-gc.C:
			e.gcConsumers()
		}
	}
}

// iterateConsumers broadcasts the event, dropping consumers whose context
// is done.
func (e *ChannelEventer) iterateConsumers(event api.Event) {
	e.consumersLock.Lock()
	defer e.consumersLock.Unlock()

	filtered := e.consumers[:0]
	for _, consumer := range e.consumers {
		// select is not ordered, check cancellation first
		if consumer.ctx.Err() != nil {
			close(consumer.ch)
			continue
		}

		timer := time.NewTimer(consumer.timeout)
		select {
		case <-timer.C:
			filtered = append(filtered, consumer)
			e.log.Warn("timeout sending event", zap.Stringer("type", event.Type))
		case <-consumer.ctx.Done():
			close(consumer.ch)
		case consumer.ch <- event:
			filtered = append(filtered, consumer)
		}
		timer.Stop()
	}
	e.consumers = filtered
}

func (e *ChannelEventer) gcConsumers() {
	e.consumersLock.Lock()
	defer e.consumersLock.Unlock()

	filtered := e.consumers[:0]
	for _, consumer := range e.consumers {
		if consumer.ctx.Err() != nil {
			close(consumer.ch)
			continue
		}
		filtered = append(filtered, consumer)
	}
	e.consumers = filtered
}

func (e *ChannelEventer) closeConsumers() {
	e.consumersLock.Lock()
	defer e.consumersLock.Unlock()

	for _, consumer := range e.consumers {
		close(consumer.ch)
	}
	e.consumers = nil
}

func (e *ChannelEventer) newConsumer(ctx context.Context) *eventConsumer {
	e.consumersLock.Lock()
	defer e.consumersLock.Unlock()

	consumer := &eventConsumer{
		ch:      make(chan api.Event),
		ctx:     ctx,
		timeout: DefaultSendEventTimeout,
	}
	// the event loop is gone and will never close it
	if e.ctx.Err() != nil {
		close(consumer.ch)
		return consumer
	}
	e.consumers = append(e.consumers, consumer)

	return consumer
}

// Subscribe subscribes to events. The channel is closed once ctx is done and
// the next event or GC pass notices it, or when the eventer stops. After the
// eventer stopped it is returned closed.
func (e *ChannelEventer) Subscribe(ctx context.Context) <-chan api.Event {
	consumer := e.newConsumer(ctx)
	return consumer.ch
}

// Emit hands the event to the event loop.
func (e *ChannelEventer) Emit(ctx context.Context, event api.Event) error {
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	case e.events <- event:
		e.log.Debug("emitting event", zap.Stringer("type", event.Type))
		return nil
	}
}
