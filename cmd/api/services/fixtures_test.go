package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/event/dispatcher"
	"car-blog/cmd/api/upload"
	"car-blog/eventbus"
	"car-blog/internal/testutil"
	"car-blog/models"
)

type blogFixture struct {
	svc      *BlogService
	blogs    *testutil.BlogStore
	users    *testutil.UserStore
	jwt      *auth.JWTManager
	uploader *upload.Uploader
	bus      *eventbus.MemoryBus
}

func newBlogFixture(t *testing.T, opts BlogServiceOptions) *blogFixture {
	t.Helper()

	jwtManager, err := auth.NewJWTManager("test-secret", "car-blog", time.Hour)
	require.NoError(t, err)

	f := &blogFixture{
		blogs:    testutil.NewBlogStore(),
		users:    testutil.NewUserStore(),
		jwt:      jwtManager,
		uploader: upload.New(upload.Config{Dir: filepath.Join(t.TempDir(), "uploads"), PublicPrefix: "uploads"}),
		bus:      eventbus.NewMemoryBus(),
	}
	events := dispatcher.NewEventDispatcher(f.bus, eventbus.TopicBlogEvents)
	f.svc = NewBlogService(f.blogs, f.users, f.jwt, f.uploader, events, opts)
	return f
}

// addUser stores an account and returns it with a signed token.
func (f *blogFixture) addUser(t *testing.T, name, role string) (models.User, string) {
	t.Helper()

	u := &models.User{Username: name, Email: name + "@example.com", Role: role}
	require.NoError(t, f.users.Insert(context.Background(), u))
	token, err := f.jwt.Sign(u.ID.Hex(), role)
	require.NoError(t, err)
	return *u, token
}

// uploadedFiles lists the names in the content directory. A directory that
// was never created counts as empty.
func (f *blogFixture) uploadedFiles(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(f.uploader.Dir())
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (f *blogFixture) publishedTypes() []string {
	var out []string
	for _, e := range f.bus.Events(eventbus.TopicBlogEvents.Base()) {
		out = append(out, e.Type)
	}
	return out
}
