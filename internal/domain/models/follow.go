// internal/domain/models/follow.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a directed edge: UserID receives AuthorID's posts in their
// followed feed. Exactly one document may exist per (user_id, author_id);
// the unique compound index on the follows collection enforces that, so a
// racing double-follow cannot produce two rows.
type Follow struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
