// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSiteName is used when no site settings exist.
const DefaultSiteName = "Plume"

// User represents an account that can publish posts, comment, and follow
// authors.
//
// NOTE:
//   - Follow relationships are not embedded on User.
//     Use the follows collection to discover who a user follows.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"username_ci"` // lowercase, diacritics-stripped
	FullName   string             `bson:"full_name" json:"full_name"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`

	// PasswordHash is a bcrypt hash; never serialized to clients.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Role   string `bson:"role" json:"role"` // admin | member
	Status string `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
