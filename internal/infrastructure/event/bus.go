// Package event delivers domain events to subscribed handlers on a pool of
// background workers.
package event

import (
	"context"
	"errors"
	"sync"

	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ErrQueueFull is returned by Publish when the delivery queue has no room
var ErrQueueFull = errors.New("event queue is full")

const (
	defaultWorkers   = 2
	defaultQueueSize = 256
)

// delivery is one event bound for one handler
type delivery struct {
	ctx     context.Context
	event   shared.DomainEvent
	handler shared.EventHandler
}

// AsyncEventBus implements shared.EventBus. While running, Publish only
// enqueues and returns; workers invoke handlers afterwards. Before Start and
// after Stop, handlers run inline on the publishing goroutine.
type AsyncEventBus struct {
	logger    *zap.Logger
	workers   int
	queueSize int

	mu       sync.RWMutex
	handlers map[string][]shared.EventHandler
	wildcard []shared.EventHandler

	runMu   sync.RWMutex
	running bool
	queue   chan delivery
	wg      sync.WaitGroup
}

// Option configures an AsyncEventBus
type Option func(*AsyncEventBus)

// WithWorkers sets the number of delivery goroutines
func WithWorkers(n int) Option {
	return func(b *AsyncEventBus) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithQueueSize sets the delivery queue capacity
func WithQueueSize(n int) Option {
	return func(b *AsyncEventBus) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// NewAsyncEventBus creates a stopped event bus
func NewAsyncEventBus(log *zap.Logger, opts ...Option) *AsyncEventBus {
	if log == nil {
		log = zap.NewNop()
	}
	b := &AsyncEventBus{
		logger:    log,
		workers:   defaultWorkers,
		queueSize: defaultQueueSize,
		handlers:  make(map[string][]shared.EventHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for eventTypes, falling back to
// handler.EventTypes(). No types at all makes it a wildcard handler.
func (b *AsyncEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	if len(eventTypes) == 0 {
		b.wildcard = append(b.wildcard, handler)
	}
	for _, eventType := range eventTypes {
		b.handlers[eventType] = append(b.handlers[eventType], handler)
	}
	b.mu.Unlock()

	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes handler from every event type
func (b *AsyncEventBus) Unsubscribe(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.wildcard = removeHandler(b.wildcard, handler)
	for eventType, handlers := range b.handlers {
		if remaining := removeHandler(handlers, handler); len(remaining) > 0 {
			b.handlers[eventType] = remaining
		} else {
			delete(b.handlers, eventType)
		}
	}
}

func (b *AsyncEventBus) handlersFor(eventType string) []shared.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.handlers[eventType]
	out := make([]shared.EventHandler, 0, len(typed)+len(b.wildcard))
	out = append(out, typed...)
	return append(out, b.wildcard...)
}

// Publish hands each event to its handlers. Handler failures are logged,
// never returned. The handler context keeps ctx's values but not its
// cancellation, so a finished HTTP request does not abort delivery.
func (b *AsyncEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	deliveryCtx := context.WithoutCancel(ctx)

	var (
		inline  []delivery
		dropped int
	)
	b.runMu.RLock()
	for _, event := range events {
		for _, handler := range b.handlersFor(event.EventType()) {
			d := delivery{ctx: deliveryCtx, event: event, handler: handler}
			if !b.running {
				inline = append(inline, d)
				continue
			}
			select {
			case b.queue <- d:
			default:
				dropped++
				b.logger.Warn("event queue full, dropping delivery",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
				)
			}
		}
	}
	b.runMu.RUnlock()

	for _, d := range inline {
		b.dispatch(d)
	}
	if dropped > 0 {
		return ErrQueueFull
	}
	return nil
}

// Start launches the delivery workers
func (b *AsyncEventBus) Start(ctx context.Context) error {
	b.runMu.Lock()
	defer b.runMu.Unlock()
	if b.running {
		return nil
	}

	b.queue = make(chan delivery, b.queueSize)
	b.running = true
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.work(b.queue)
	}

	b.logger.Info("event bus started",
		zap.Int("workers", b.workers),
		zap.Int("queue_size", b.queueSize),
	)
	return nil
}

// Stop closes the queue and waits for queued deliveries to finish or ctx to end
func (b *AsyncEventBus) Stop(ctx context.Context) error {
	b.runMu.Lock()
	if !b.running {
		b.runMu.Unlock()
		return nil
	}
	b.running = false
	close(b.queue)
	b.runMu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out with deliveries in flight")
		return ctx.Err()
	}
}

func (b *AsyncEventBus) work(queue <-chan delivery) {
	defer b.wg.Done()
	for d := range queue {
		b.dispatch(d)
	}
}

// dispatch runs one handler, containing panics
func (b *AsyncEventBus) dispatch(d delivery) {
	log := logger.L(d.ctx, b.logger)
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panicked",
				zap.String("event_type", d.event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	if err := d.handler.Handle(d.ctx, d.event); err != nil {
		log.Error("handler failed to process event",
			zap.String("event_type", d.event.EventType()),
			zap.String("event_id", d.event.EventID().String()),
			zap.Error(err),
		)
	}
}

func removeHandler(handlers []shared.EventHandler, target shared.EventHandler) []shared.EventHandler {
	result := make([]shared.EventHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != target {
			result = append(result, h)
		}
	}
	return result
}

var _ shared.EventBus = (*AsyncEventBus)(nil)
