// internal/app/features/groups/groupedit.go
package groups

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	groupstore "github.com/dalemusser/plume/internal/app/store/groups"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/inputval"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeEditGroup renders the Edit Group page (admin only).
func (h *Handler) ServeEditGroup(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "You do not have access to edit groups.", "/")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "No such group.", "/groups")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	group, err := groupstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			uierrors.RenderNotFound(w, r, "No such group.", "/groups")
			return
		}
		h.ErrLog.LogServerError(w, r, "group lookup failed", err, "A database error occurred.", "/groups")
		return
	}

	data := groupFormData{
		BaseVM:      viewdata.NewBaseVM(r, "Edit Group", "/groups"),
		GroupID:     group.ID.Hex(),
		GroupTitle:  group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}

	templates.Render(w, r, "group_edit", data)
}

// HandleEditGroup processes the Edit Group form submission.
func (h *Handler) HandleEditGroup(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "You do not have access to edit groups.", "/")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "No such group.", "/groups")
		return
	}
	if err := r.ParseForm(); err != nil {
		uierrors.RenderForbidden(w, r, "Bad request.", "/groups")
		return
	}

	title := normalize.Name(r.FormValue("title"))
	slug := normalize.Slug(r.FormValue("slug"))
	desc := normalize.Text(r.FormValue("description"))

	input := createGroupInput{Title: title, Slug: slug}
	if result := inputval.Validate(input); result.HasErrors() {
		h.reRenderEditWithError(w, r, groupFormData{
			GroupID:     id.Hex(),
			GroupTitle:  title,
			Slug:        slug,
			Description: desc,
		}, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := groupstore.New(h.DB).UpdateInfo(ctx, id, title, slug, desc); err != nil {
		msg := "Failed to update group."
		if errors.Is(err, groupstore.ErrDuplicateSlug) {
			msg = "A group with that slug already exists."
		} else {
			h.Log.Warn("group update failed", zap.Error(err))
		}
		h.reRenderEditWithError(w, r, groupFormData{
			GroupID:     id.Hex(),
			GroupTitle:  title,
			Slug:        slug,
			Description: desc,
		}, msg)
		return
	}

	ret := navigation.SafeBackURL(r, navigation.GroupsBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

func (h *Handler) reRenderEditWithError(w http.ResponseWriter, r *http.Request, data groupFormData, msg string) {
	data.BaseVM = viewdata.NewBaseVM(r, "Edit Group", "/groups")
	data.SetError(msg)
	templates.Render(w, r, "group_edit", data)
}
