// internal/app/features/groups/groupnew.go
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
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// createGroupInput defines validation rules for creating a group.
type createGroupInput struct {
	Title string `validate:"required,max=200" label:"Title"`
	Slug  string `validate:"required,max=100" label:"Slug"`
}

type groupFormData struct {
	viewdata.BaseVM
	GroupID     string
	GroupTitle  string
	Slug        string
	Description string
}

// ServeNewGroup renders the Add Group page (admin only).
func (h *Handler) ServeNewGroup(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "You do not have access to create groups.", "/")
		return
	}

	data := groupFormData{
		BaseVM: viewdata.NewBaseVM(r, "Add Group", "/groups"),
	}

	templates.Render(w, r, "group_new", data)
}

// HandleCreateGroup processes the Add Group form submission.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "You do not have access to create groups.", "/")
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
		h.reRenderNewWithError(w, r, groupFormData{
			GroupTitle:  title,
			Slug:        slug,
			Description: desc,
		}, result.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, err := groupstore.New(h.DB).Create(ctx, models.Group{
		Title:       title,
		Slug:        slug,
		Description: desc,
	})
	if err != nil {
		msg := "Failed to create group."
		if errors.Is(err, groupstore.ErrDuplicateSlug) {
			msg = "A group with that slug already exists."
		} else {
			h.Log.Warn("group create failed", zap.Error(err))
		}
		h.reRenderNewWithError(w, r, groupFormData{
			GroupTitle:  title,
			Slug:        slug,
			Description: desc,
		}, msg)
		return
	}

	ret := navigation.SafeBackURL(r, navigation.GroupsBackURL)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// reRenderNewWithError re-renders the Add Group page with a validation error
// and previously posted values.
func (h *Handler) reRenderNewWithError(w http.ResponseWriter, r *http.Request, data groupFormData, msg string) {
	data.BaseVM = viewdata.NewBaseVM(r, "Add Group", "/groups")
	data.SetError(msg)
	templates.Render(w, r, "group_new", data)
}
