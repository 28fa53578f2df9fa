// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/plume/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), username, Mongo ObjectID, and
// a found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false. This ensures callers can trust
// that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, username string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Username, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsSignedIn reports whether the current request carries a valid user.
func IsSignedIn(r *http.Request) bool {
	_, _, _, ok := UserCtx(r)
	return ok
}
