package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "car-blog.blog.events", TopicBlogEvents.Base())
	assert.Equal(t, "custom", NewTopic("custom").Base())
}

func TestMemoryBus(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, "t", Event{ID: "1"}))
	require.NoError(t, bus.Publish(ctx, "t", Event{ID: "2"}))
	assert.Len(t, bus.Events("t"), 2)
	assert.Empty(t, bus.Events("other"))

	boom := errors.New("boom")
	bus.FailWith(boom)
	assert.ErrorIs(t, bus.Publish(ctx, "t", Event{ID: "3"}), boom)
	assert.Len(t, bus.Events("t"), 2)

	assert.NoError(t, NoopBus{}.Publish(ctx, "t", Event{}))
}
