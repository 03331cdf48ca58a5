package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"car-blog/db"
	"car-blog/models"
)

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(d *mongo.Database) *BlogRepository {
	return &BlogRepository{col: d.Collection(db.CollectionBlogs)}
}

// Insert stores a new blog and assigns its ID and timestamps.
func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) error {
	now := time.Now().UTC()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

// FindByID returns ErrNotFound when no blog matches.
func (r *BlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return &b, nil
}

// List returns every blog, newest first.
func (r *BlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	return r.find(ctx, bson.M{})
}

// ListByOwner returns the blogs authored by owner, newest first.
func (r *BlogRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Blog, error) {
	return r.find(ctx, bson.M{"owner": owner})
}

func (r *BlogRepository) find(ctx context.Context, filter bson.M) ([]models.Blog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]models.Blog, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return items, nil
}

// Update overwrites the mutable fields of b. Owner and created_at are never touched.
func (r *BlogRepository) Update(ctx context.Context, b *models.Blog) error {
	b.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"title":       b.Title,
		"description": b.Description,
		"model":       b.Model,
		"year":        b.Year,
		"updated_at":  b.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if b.Image != "" {
		set["image"] = b.Image
	} else {
		update["$unset"] = bson.M{"image": ""}
	}

	res, err := r.col.UpdateByID(ctx, b.ID, update)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the blog with id. ErrNotFound when nothing was deleted.
func (r *BlogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
