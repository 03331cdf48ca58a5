package logger

import (
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
)

func TestInitBuildsGookitLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	Init("  ")
	_, ok := Log.(*slog.Logger)
	assert.True(t, ok)

	Init("DEBUG")
	_, ok = Log.(*slog.Logger)
	assert.True(t, ok)

	assert.NotPanics(t, func() {
		InfoWithFields("hello", Fields{"k": "v"})
		DebugWithFields("hello", nil)
		WarnWithFields("hello", nil)
		ErrorWithFields("hello", Fields{"error": "boom"})
	})
}

func TestWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "car-blog-api")

	fields := withServiceName(nil)
	assert.Equal(t, "car-blog-api", fields["service_name"])

	fields = withServiceName(Fields{"service_name": "explicit"})
	assert.Equal(t, "explicit", fields["service_name"])
}
