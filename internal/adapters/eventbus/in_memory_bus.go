package eventbus

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"Saya/internal/core/ports"
)

// inMemoryEventBus implements the ports.EventBus interface. It decouples
// the decision path from best-effort side effects (DM delivery, disabling
// controls on the notification message).
type inMemoryEventBus struct {
	log         zerolog.Logger
	subscribers map[string][]ports.EventHandler
	mu          sync.RWMutex
}

// NewInMemoryBus creates a new, empty event bus.
func NewInMemoryBus(baseLogger *zerolog.Logger) ports.EventBus {
	return &inMemoryEventBus{
		log:         baseLogger.With().Str("component", "in_memory_bus").Logger(),
		subscribers: make(map[string][]ports.EventHandler),
	}
}

// Publish sends an event to all subscribers of a topic.
func (b *inMemoryEventBus) Publish(ctx context.Context, topic string, data interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	handlers, ok := b.subscribers[topic]
	if !ok {
		b.log.Warn().Str("topic", topic).Msg("Published event with no subscribers")
		return nil
	}

	event := ports.Event{
		Topic: topic,
		Data:  data,
	}

	// Each handler runs in its own goroutine so one slow handler doesn't
	// block the others. Handlers get a fresh background context so they
	// aren't cancelled when the publisher's interaction completes.
	for _, handler := range handlers {
		go func(h ports.EventHandler) {
			if err := h(context.Background(), event); err != nil {
				b.log.Error().Err(err).Str("topic", topic).Msg("Event handler failed")
			}
		}(handler)
	}

	b.log.Debug().Str("topic", topic).Int("handlers", len(handlers)).Msg("Event published")
	return nil
}

// Subscribe registers a handler for a specific topic.
func (b *inMemoryEventBus) Subscribe(topic string, handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[topic] = append(b.subscribers[topic], handler)
	b.log.Info().Str("topic", topic).Msg("New handler subscribed to topic")
}
