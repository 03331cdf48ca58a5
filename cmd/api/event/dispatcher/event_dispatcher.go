package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"car-blog/cmd/api/trace"
	"car-blog/eventbus"
	"car-blog/events"
	"car-blog/internal/logger"
	"car-blog/models"
)

// EventDispatcher publishes blog lifecycle events for the API.
type EventDispatcher struct {
	bus   eventbus.EventBus
	topic eventbus.Topic
}

func NewEventDispatcher(bus eventbus.EventBus, topic eventbus.Topic) *EventDispatcher {
	return &EventDispatcher{bus: bus, topic: topic}
}

func (d *EventDispatcher) PublishBlogCreated(ctx context.Context, blog *models.Blog, actorID string) error {
	return d.publish(ctx, events.BlogCreated, blog, actorID)
}

func (d *EventDispatcher) PublishBlogUpdated(ctx context.Context, blog *models.Blog, actorID string) error {
	return d.publish(ctx, events.BlogUpdated, blog, actorID)
}

func (d *EventDispatcher) PublishBlogDeleted(ctx context.Context, blog *models.Blog, actorID string) error {
	return d.publish(ctx, events.BlogDeleted, blog, actorID)
}

func (d *EventDispatcher) publish(ctx context.Context, typ events.EventType, blog *models.Blog, actorID string) error {
	requestID, spanID := trace.NextSpanID(ctx)
	e := events.BlogEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      typ,
			Timestamp: time.Now(),
			Source:    "api",
			Version:   "1.0",
			RequestID: requestID,
			SpanID:    spanID,
		},
		BlogID:  blog.ID.Hex(),
		Owner:   blog.Owner.Hex(),
		Title:   blog.Title,
		Model:   blog.Model,
		Year:    blog.Year,
		Image:   blog.Image,
		ActorID: actorID,
	}

	payload, eventType, err := events.SerializeEvent(e)
	if err != nil {
		return fmt.Errorf("failed to build event: %w", err)
	}
	evt := eventbus.Event{ID: e.ID, Type: string(eventType), Payload: payload}
	if err := d.bus.Publish(ctx, d.topic.Base(), evt); err != nil {
		return err
	}

	logger.DebugWithFields("blog event published", logger.Fields{
		"event_id":   e.ID,
		"event":      string(eventType),
		"blog_id":    e.BlogID,
		"request_id": requestID,
		"span_id":    spanID,
	})
	return nil
}
