package eventbus

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity used when the
// configured buffer size is not positive.
const DefaultSubscriberBuffer = 16

// FilterFunc decides whether a subscription wants an event.
// A nil filter accepts everything.
type FilterFunc func(AlertEvent) bool

// Bus is an in-process publish/subscribe channel.
//
// Publish never blocks and never fails the caller: delivery to each
// subscription is a non-blocking send into its buffered channel, and a full
// buffer means the event is dropped for that subscriber and logged. The
// subscriber registry tolerates concurrent subscribe/unsubscribe during
// publish; registration changes take effect for subsequent publishes.
type Bus struct {
	mu     sync.RWMutex
	topics map[string]map[uint64]*Subscription
	nextID uint64
	buffer int
	closed bool

	logger *zap.Logger
}

// NewBus creates a bus whose subscriptions buffer up to bufferSize events.
// Publish failures (dropped events) are reported through logger.
func NewBus(bufferSize int, logger *zap.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultSubscriberBuffer
	}
	return &Bus{
		topics: make(map[string]map[uint64]*Subscription),
		buffer: bufferSize,
		logger: logger,
	}
}

// Subscribe registers a new subscription on a topic. Events failing the filter
// are never delivered to this subscription. The returned subscription must be
// closed by the caller; closing deterministically unregisters it.
func (b *Bus) Subscribe(topic string, filter FilterFunc) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		bus:    b,
		topic:  topic,
		id:     b.nextID,
		filter: filter,
		events: make(chan AlertEvent, b.buffer),
	}

	if b.closed {
		// A bus that is shutting down hands out already-closed subscriptions
		// so connection handlers terminate their streams immediately.
		close(sub.events)
		sub.closed = true
		return sub
	}

	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[uint64]*Subscription)
		b.topics[topic] = subs
	}
	subs[sub.id] = sub
	return sub
}

// Publish delivers an event to every live subscription on the topic whose
// filter accepts it. Fire-and-forget: a slow subscriber loses the event
// instead of stalling the publisher, and the drop is only logged.
func (b *Bus) Publish(topic string, event AlertEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, sub := range b.topics[topic] {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}

		select {
		case sub.events <- event:
		default:
			b.logger.Warn("alert event dropped for slow subscriber",
				zap.String("topic", topic),
				zap.String("kind", event.Kind),
				zap.String("receiver_id", event.ReceiverID),
				zap.Uint64("subscription_id", sub.id),
			)
		}
	}
}

// Close shuts the bus down: every live subscription is closed and further
// publishes become no-ops. Safe to call more than once.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, subs := range b.topics {
		for _, sub := range subs {
			if !sub.closed {
				close(sub.events)
				sub.closed = true
			}
		}
	}
	b.topics = make(map[string]map[uint64]*Subscription)
}

// unsubscribe removes a subscription from the registry and closes its channel.
// Holding the write lock here guarantees no publisher is mid-send on the
// channel when it is closed.
func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.closed {
		return
	}

	if subs, ok := b.topics[sub.topic]; ok {
		delete(subs, sub.id)
		if len(subs) == 0 {
			delete(b.topics, sub.topic)
		}
	}
	close(sub.events)
	sub.closed = true
}

// Subscription is one live registration on the bus. It lives exactly as long
// as the owning connection: created on connect, closed on disconnect.
type Subscription struct {
	bus    *Bus
	topic  string
	id     uint64
	filter FilterFunc
	events chan AlertEvent

	// closed is guarded by the bus mutex.
	closed bool

	closeOnce sync.Once
}

// Events returns the channel delivering matching events. The channel is
// closed when the subscription or the whole bus is closed; a reader loop
// should treat channel closure as end-of-stream.
func (s *Subscription) Events() <-chan AlertEvent {
	return s.events
}

// Close unregisters the subscription. After Close returns, no further events
// are delivered. Safe to call more than once and after bus shutdown.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.unsubscribe(s)
	})
}
