package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/circuit/pkg/domain"
)

// Message is one server-sent event.
type Message struct {
	Event domain.EventType
	Data  string
}

// StreamManager handles active SSE connections and fans engine events out to them.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- Message]map[domain.EventType]bool // nil filter: every event
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamManager{
		subscribers: make(map[chan<- Message]map[domain.EventType]bool),
		logger:      logger,
	}
}

// Subscribe registers a listener for the given event types (all when none).
// The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(types ...domain.EventType) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var filter map[domain.EventType]bool
	if len(types) > 0 {
		filter = make(map[domain.EventType]bool, len(types))
		for _, t := range types {
			filter[t] = true
		}
	}

	ch := make(chan Message, 16)
	sm.subscribers[ch] = filter

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Subscribers returns the number of active listeners.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast sends msg to every listener whose filter accepts it.
func (sm *StreamManager) Broadcast(msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "event", msg.Event, "payload_size", len(msg.Data))

	for ch, filter := range sm.subscribers {
		if filter != nil && !filter[msg.Event] {
			continue
		}
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "event", msg.Event)
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every engine event as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTrace: func(_ context.Context, e *domain.TraceEvent) {
			sm.publish(e.Type, e)
		},
		OnActivate: func(_ context.Context, e *domain.ActivationEvent) {
			sm.publish(e.Type, e)
		},
		OnSwitchPosition: func(_ context.Context, e *domain.SwitchEvent) {
			sm.publish(e.Type, e)
		},
		OnShortCircuit: func(_ context.Context, e *domain.ShortCircuitEvent) {
			sm.publish(e.Type, e)
		},
	}
}

func (sm *StreamManager) publish(t domain.EventType, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("StreamManager: encode failed", "event", t, "error", err)
		return
	}
	sm.Broadcast(Message{Event: t, Data: string(b)})
}
