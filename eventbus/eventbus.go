package eventbus

import (
	"context"
	"encoding/json"
	"sync"
)

// Topic names the topic blog events are published to.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// Event is the Kafka message payload.
type Event struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventBus publishes events to topics.
type EventBus interface {
	Publish(ctx context.Context, topic string, event Event) error
	Close()
}

// NoopBus drops every event. Used when no brokers are configured.
type NoopBus struct{}

func (NoopBus) Publish(context.Context, string, Event) error { return nil }

func (NoopBus) Close() {}

// MemoryBus keeps published events in memory.
type MemoryBus struct {
	mu     sync.Mutex
	events map[string][]Event
	err    error
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{events: make(map[string][]Event)}
}

// FailWith makes subsequent Publish calls return err.
func (m *MemoryBus) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryBus) Publish(_ context.Context, topic string, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events[topic] = append(m.events[topic], event)
	return nil
}

// Events returns a copy of what was published to topic.
func (m *MemoryBus) Events(topic string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events[topic]...)
}

func (m *MemoryBus) Close() {}
