package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"car-blog/cmd/api/trace"
	"car-blog/eventbus"
	"car-blog/events"
	"car-blog/models"
)

func TestPublishBlogEvents(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	d := NewEventDispatcher(bus, eventbus.TopicBlogEvents)
	ctx := trace.WithRequestAndSpan(context.Background(), "req-1", 0)

	blog := &models.Blog{
		ID:    primitive.NewObjectID(),
		Owner: primitive.NewObjectID(),
		Title: "E30",
		Model: "BMW",
		Year:  1989,
		Image: "uploads/1-e30.jpg",
	}

	require.NoError(t, d.PublishBlogCreated(ctx, blog, blog.Owner.Hex()))
	require.NoError(t, d.PublishBlogUpdated(ctx, blog, ""))
	require.NoError(t, d.PublishBlogDeleted(ctx, blog, ""))

	published := bus.Events(eventbus.TopicBlogEvents.Base())
	require.Len(t, published, 3)
	assert.Equal(t, string(events.BlogCreated), published[0].Type)
	assert.Equal(t, string(events.BlogUpdated), published[1].Type)
	assert.Equal(t, string(events.BlogDeleted), published[2].Type)

	var got events.BlogEvent
	require.NoError(t, json.Unmarshal(published[0].Payload, &got))
	assert.Equal(t, published[0].ID, got.ID)
	assert.Equal(t, blog.ID.Hex(), got.BlogID)
	assert.Equal(t, blog.Owner.Hex(), got.Owner)
	assert.Equal(t, blog.Owner.Hex(), got.ActorID)
	assert.Equal(t, 1989, got.Year)
	assert.Equal(t, "uploads/1-e30.jpg", got.Image)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "1", got.SpanID)

	var last events.BlogEvent
	require.NoError(t, json.Unmarshal(published[2].Payload, &last))
	assert.Equal(t, "3", last.SpanID)
}

func TestPublishReturnsBusError(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	boom := errors.New("broker down")
	bus.FailWith(boom)
	d := NewEventDispatcher(bus, eventbus.NewTopic("blogs"))

	blog := &models.Blog{ID: primitive.NewObjectID(), Owner: primitive.NewObjectID()}
	assert.ErrorIs(t, d.PublishBlogDeleted(context.Background(), blog, ""), boom)
}
