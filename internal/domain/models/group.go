// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a topic/community that posts can be published into.
//
// NOTE:
//   - Posts are not embedded on Group; posts carry an optional group_id.
//   - Slug is unique across the collection and is what appears in URLs.
//   - Deleting a group does not delete its posts; their group reference
//     is cleared instead (see poststore.ClearGroup).
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
