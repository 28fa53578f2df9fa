// internal/app/features/groups/grouplist.go
package groups

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	groupstore "github.com/dalemusser/plume/internal/app/store/groups"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type groupListData struct {
	viewdata.BaseVM
	Groups []models.Group
}

// ServeGroupsList handles GET /groups — the admin overview of all groups.
func (h *Handler) ServeGroupsList(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "You do not have access to manage groups.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	groups, err := groupstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "group list failed", err, "A database error occurred.", "/")
		return
	}

	data := groupListData{
		BaseVM: viewdata.NewBaseVM(r, "Groups", "/"),
		Groups: groups,
	}

	templates.Render(w, r, "group_list", data)
}
