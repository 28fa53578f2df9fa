// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a published entry in an author's blog.
//
// AuthorName is denormalized from the author's username at write time so
// feeds can render without a per-row user lookup. CreatedAt is set once at
// insert and never changes; every feed sorts on (created_at, _id) descending.
type Post struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Text       string              `bson:"text" json:"text"`
	AuthorID   primitive.ObjectID  `bson:"author_id" json:"author_id"`
	AuthorName string              `bson:"author_name" json:"author_name"`
	GroupID    *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`

	// Image upload metadata; empty when the post has no image.
	ImagePath string `bson:"image_path,omitempty" json:"image_path,omitempty"`
	ImageName string `bson:"image_name,omitempty" json:"image_name,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
