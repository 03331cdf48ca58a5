package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names a blog lifecycle event.
type EventType string

const (
	BlogCreated EventType = "blog.created"
	BlogUpdated EventType = "blog.updated"
	BlogDeleted EventType = "blog.deleted"
)

// BaseEvent is embedded in every event.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	// RequestID and SpanID tie the event to the API request that caused it.
	RequestID string `json:"request_id,omitempty"`
	SpanID    string `json:"span_id,omitempty"`
}

// BlogEvent describes a blog after the change (before it, for deletes).
type BlogEvent struct {
	BaseEvent
	BlogID string `json:"blog_id"`
	Owner  string `json:"owner"`
	Title  string `json:"title"`
	Model  string `json:"model"`
	Year   int    `json:"year"`
	Image  string `json:"image,omitempty"`
	// ActorID is the user performing the change, empty for anonymous updates and deletes.
	ActorID string `json:"actor_id,omitempty"`
}

// SerializeEvent encodes event and reports its type.
func SerializeEvent(event any) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case BlogEvent:
		eventType = e.Type
	case *BlogEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}
