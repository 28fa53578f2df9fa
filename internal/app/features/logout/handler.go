// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/plume/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles GET /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		// Still redirect; the cookie clear may have partially applied.
		h.Log.Warn("logout: session clear failed", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
