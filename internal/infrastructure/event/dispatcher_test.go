package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// blockingHandler blocks every Handle call until release is closed
type blockingHandler struct {
	started chan struct{}
	release chan struct{}
	count   atomic.Int32
}

func newBlockingHandler() *blockingHandler {
	return &blockingHandler{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (h *blockingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.started <- struct{}{}
	<-h.release
	h.count.Add(1)
	return nil
}

func (h *blockingHandler) EventTypes() []string { return []string{"TestEvent"} }

type panickingHandler struct{}

func (panickingHandler) Handle(context.Context, shared.DomainEvent) error { panic("boom") }
func (panickingHandler) EventTypes() []string                             { return []string{"TestEvent"} }

type countingDrops struct{ n atomic.Int32 }

func (c *countingDrops) IncDroppedEvent() { c.n.Add(1) }

func startDispatcher(t *testing.T, cfg AsyncDispatcherConfig) *AsyncDispatcher {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	d := NewAsyncDispatcher(cfg)
	require.NoError(t, d.Start(context.Background()))
	return d
}

func stopDispatcher(t *testing.T, d *AsyncDispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
}

func TestAsyncDispatcher_DeliversAndDrainsOnStop(t *testing.T) {
	d := startDispatcher(t, AsyncDispatcherConfig{Workers: 2, QueueSize: 16})
	handler := newTestHandler("TestEvent")
	other := newTestHandler("OtherEvent")
	d.Subscribe(handler)
	d.Subscribe(other)

	for i := 0; i < 10; i++ {
		require.NoError(t, d.Publish(context.Background(), newTestEvent("TestEvent", uuid.New())))
	}
	stopDispatcher(t, d)

	assert.Len(t, handler.getHandled(), 10)
	assert.Empty(t, other.getHandled())
}

func TestAsyncDispatcher_PublishDoesNotWaitForHandlers(t *testing.T) {
	d := startDispatcher(t, AsyncDispatcherConfig{Workers: 1, QueueSize: 4})
	handler := newBlockingHandler()
	d.Subscribe(handler)

	done := make(chan struct{})
	go func() {
		_ = d.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a running handler")
	}
	<-handler.started
	close(handler.release)
	stopDispatcher(t, d)
	assert.Equal(t, int32(1), handler.count.Load())
}

func TestAsyncDispatcher_DropsWhenQueueFull(t *testing.T) {
	drops := &countingDrops{}
	d := startDispatcher(t, AsyncDispatcherConfig{Workers: 1, QueueSize: 1, Drops: drops})
	handler := newBlockingHandler()
	d.Subscribe(handler)

	// first event occupies the worker, second fills the queue
	require.NoError(t, d.Publish(context.Background(), newTestEvent("TestEvent", uuid.New())))
	<-handler.started
	require.NoError(t, d.Publish(context.Background(), newTestEvent("TestEvent", uuid.New())))

	require.NoError(t, d.Publish(context.Background(),
		newTestEvent("TestEvent", uuid.New()),
		newTestEvent("TestEvent", uuid.New())))

	assert.Equal(t, int64(2), d.Dropped())
	assert.Equal(t, int32(2), drops.n.Load())

	close(handler.release)
	stopDispatcher(t, d)
	assert.Equal(t, int32(2), handler.count.Load())
}

func TestAsyncDispatcher_HandlerFailuresAreIsolated(t *testing.T) {
	d := startDispatcher(t, AsyncDispatcherConfig{Workers: 1, QueueSize: 8})
	failing := newTestHandler("TestEvent")
	failing.setError(errors.New("handler error"))
	healthy := newTestHandler("TestEvent")
	d.Subscribe(panickingHandler{})
	d.Subscribe(failing)
	d.Subscribe(healthy)

	require.NoError(t, d.Publish(context.Background(),
		newTestEvent("TestEvent", uuid.New()),
		newTestEvent("TestEvent", uuid.New())))
	stopDispatcher(t, d)

	assert.Len(t, failing.getHandled(), 2)
	assert.Len(t, healthy.getHandled(), 2)
}

func TestAsyncDispatcher_HandlerContextOutlivesPublisher(t *testing.T) {
	d := startDispatcher(t, AsyncDispatcherConfig{Workers: 1})
	var (
		mu     sync.Mutex
		ctxErr error
	)
	d.Subscribe(&funcHandler{fn: func(ctx context.Context, _ shared.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		ctxErr = ctx.Err()
		return nil
	}}, "TestEvent")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Publish(ctx, newTestEvent("TestEvent", uuid.New())))
	cancel()
	stopDispatcher(t, d)

	mu.Lock()
	defer mu.Unlock()
	assert.NoError(t, ctxErr)
}

func TestAsyncDispatcher_PublishAfterStop(t *testing.T) {
	d := startDispatcher(t, AsyncDispatcherConfig{})
	stopDispatcher(t, d)

	err := d.Publish(context.Background(), newTestEvent("TestEvent", uuid.New()))
	assert.ErrorIs(t, err, ErrDispatcherStopped)
	assert.ErrorIs(t, d.Start(context.Background()), ErrDispatcherStopped)
	assert.NoError(t, d.Stop(context.Background()))
}

func TestAsyncDispatcher_StopTimeout(t *testing.T) {
	d := startDispatcher(t, AsyncDispatcherConfig{Workers: 1})
	handler := newBlockingHandler()
	d.Subscribe(handler)
	require.NoError(t, d.Publish(context.Background(), newTestEvent("TestEvent", uuid.New())))
	<-handler.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
	close(handler.release)
}

type funcHandler struct {
	fn func(ctx context.Context, event shared.DomainEvent) error
}

func (h *funcHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	return h.fn(ctx, event)
}
func (h *funcHandler) EventTypes() []string { return nil }
