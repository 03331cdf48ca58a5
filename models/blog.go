package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a car listing post.
// Collection: blogs
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Model       string             `bson:"model" json:"model"`
	Year        int                `bson:"year" json:"year"`
	// Image is the stored relative path (uploads/<millis>-<name>), empty when unset.
	Image string `bson:"image,omitempty" json:"image,omitempty"`
}
