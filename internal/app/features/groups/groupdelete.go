// internal/app/features/groups/groupdelete.go
package groups

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	groupstore "github.com/dalemusser/plume/internal/app/store/groups"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDeleteGroup handles POST /groups/{id}/delete (admin only).
//
// Deleting a group clears the group reference on its posts; the posts
// themselves stay.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "You do not have access to delete groups.", "/")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "No such group.", "/groups")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := groupstore.New(h.DB).Delete(ctx, h.Log, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "No such group.", "/groups")
			return
		}
		h.ErrLog.LogServerError(w, r, "group delete failed", err, "Delete failed.", "/groups")
		return
	}

	ret := navigation.SafeBackURL(r, navigation.GroupsBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
