// Package postpolicy decides who may change a post.
package postpolicy

import (
	"github.com/dalemusser/plume/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanEdit reports whether userID may edit or delete the post.
// Only the post's author may; roles grant no extra power here, so an admin
// edits their own posts like anyone else.
func CanEdit(userID primitive.ObjectID, post models.Post) bool {
	return !userID.IsZero() && post.AuthorID == userID
}
