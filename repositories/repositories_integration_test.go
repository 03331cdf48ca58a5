package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"car-blog/db"
	"car-blog/models"
	"car-blog/repositories"
)

func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("could not start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("could not terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, database, err := db.Connect(ctx, uri, "carblog_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	return database
}

func TestBlogRepositoryLifecycle(t *testing.T) {
	database := testDatabase(t)
	ctx := context.Background()
	repo := repositories.NewBlogRepository(database)

	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	first := &models.Blog{Owner: owner, Title: "E30", Description: "clean", Model: "BMW", Year: 1989, Image: "uploads/1-e30.jpg"}
	require.NoError(t, repo.Insert(ctx, first))
	assert.False(t, first.ID.IsZero())

	time.Sleep(5 * time.Millisecond)
	second := &models.Blog{Owner: other, Title: "Golf", Description: "mk2", Model: "VW", Year: 1990}
	require.NoError(t, repo.Insert(ctx, second))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, got.Owner)
	assert.Equal(t, "uploads/1-e30.jpg", got.Image)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	mine, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	none, err := repo.ListByOwner(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	got.Title = "E30 325i"
	got.Year = 1988
	require.NoError(t, repo.Update(ctx, got))
	updated, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "E30 325i", updated.Title)
	assert.Equal(t, 1988, updated.Year)
	assert.Equal(t, owner, updated.Owner)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, first), repositories.ErrNotFound)
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	database := testDatabase(t)
	ctx := context.Background()
	repo := repositories.NewUserRepository(database)

	u := &models.User{Username: "carlos", Email: "Carlos@Example.com", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, repo.Insert(ctx, u))

	dup := &models.User{Username: "carlos2", Email: "carlos@example.com", PasswordHash: "y", Role: models.RoleUser}
	assert.ErrorIs(t, repo.Insert(ctx, dup), repositories.ErrDuplicate)

	got, err := repo.FindByEmail(ctx, "CARLOS@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byID, err := repo.FindByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "carlos", byID.Username)

	_, err = repo.FindByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
