package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/leadlane/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Dispatcher defaults
const (
	DefaultDispatcherWorkers = 4
	DefaultDispatcherQueue   = 1024
)

// ErrDispatcherStopped is returned when publishing after Stop
var ErrDispatcherStopped = errors.New("event dispatcher stopped")

// DropCounter is notified whenever an event is dropped on a full queue
type DropCounter interface {
	IncDroppedEvent()
}

// AsyncDispatcher implements EventBus with a bounded queue and a fixed worker pool.
// Publish never blocks and never reports handler failures. Delivery is at-most-once:
// an event that does not fit in the queue is dropped and counted.
type AsyncDispatcher struct {
	registry *HandlerRegistry
	queue    chan dispatchItem
	workers  int
	drops    DropCounter
	logger   *zap.Logger

	mu      sync.RWMutex // Guards started/stopped and sends on queue
	started bool
	stopped bool
	wg      sync.WaitGroup

	// detached from the publisher so handlers outlive the request that published
	baseCtx context.Context
	cancel  context.CancelFunc

	dropped atomic.Int64
}

type dispatchItem struct {
	event shared.DomainEvent
}

// AsyncDispatcherConfig contains configuration for AsyncDispatcher
type AsyncDispatcherConfig struct {
	Workers   int
	QueueSize int
	Drops     DropCounter
	Logger    *zap.Logger
}

// NewAsyncDispatcher creates a dispatcher; call Start before publishing
func NewAsyncDispatcher(cfg AsyncDispatcherConfig) *AsyncDispatcher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultDispatcherWorkers
	}
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultDispatcherQueue
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsyncDispatcher{
		registry: NewHandlerRegistry(),
		queue:    make(chan dispatchItem, size),
		workers:  workers,
		drops:    cfg.Drops,
		logger:   logger,
	}
}

// Subscribe registers a handler for specific event types
func (d *AsyncDispatcher) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	d.registry.Register(handler, eventTypes...)
	d.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (d *AsyncDispatcher) Unsubscribe(handler shared.EventHandler) {
	d.registry.Unregister(handler)
}

// Start launches the worker pool. The context is not retained.
func (d *AsyncDispatcher) Start(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrDispatcherStopped
	}
	if d.started {
		return nil
	}
	d.started = true
	d.baseCtx, d.cancel = context.WithCancel(context.Background())

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
	d.logger.Info("event dispatcher started",
		zap.Int("workers", d.workers),
		zap.Int("queue_size", cap(d.queue)))
	return nil
}

// Publish enqueues events and returns immediately
func (d *AsyncDispatcher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	for _, event := range events {
		select {
		case d.queue <- dispatchItem{event: event}:
		default:
			d.dropped.Add(1)
			if d.drops != nil {
				d.drops.IncDroppedEvent()
			}
			d.logger.Warn("event queue full, dropping event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.String("tenant_id", event.TenantID().String()))
		}
	}
	return nil
}

// Stop refuses new events, lets the workers drain the queue and waits for them.
// When ctx expires first, running handlers are cancelled and ctx.Err() is returned.
func (d *AsyncDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("event dispatcher stopped", zap.Int64("dropped", d.dropped.Load()))
		return nil
	case <-ctx.Done():
		d.cancel()
		d.logger.Warn("event dispatcher stop timed out", zap.Int("pending", len(d.queue)))
		return ctx.Err()
	}
}

// Dropped returns the number of events dropped since start
func (d *AsyncDispatcher) Dropped() int64 {
	return d.dropped.Load()
}

func (d *AsyncDispatcher) worker(id int) {
	defer d.wg.Done()
	for item := range d.queue {
		for _, handler := range d.registry.GetHandlers(item.event.EventType()) {
			if err := d.dispatchToHandler(handler, item.event); err != nil {
				d.logger.Error("handler failed to process event",
					zap.Int("worker", id),
					zap.String("event_type", item.event.EventType()),
					zap.String("event_id", item.event.EventID().String()),
					zap.String("tenant_id", item.event.TenantID().String()),
					zap.Error(err))
			}
		}
	}
}

// dispatchToHandler runs one handler, converting a panic into an error
func (d *AsyncDispatcher) dispatchToHandler(handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
			d.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	return handler.Handle(d.baseCtx, event)
}

// Ensure AsyncDispatcher implements EventBus
var _ shared.EventBus = (*AsyncDispatcher)(nil)
