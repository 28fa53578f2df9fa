// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment belongs to exactly one post. Comments are append-only: the app
// exposes no edit or single-delete operation. They are removed only when
// their post or their author is deleted.
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID     primitive.ObjectID `bson:"post_id" json:"post_id"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name" json:"author_name"`
	Text       string             `bson:"text" json:"text"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
