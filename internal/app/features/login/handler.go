// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	userstore "github.com/dalemusser/plume/internal/app/store/users"
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the password login form and session creation.
type Handler struct {
	DB         *mongo.Database
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	LoginName string
	ReturnURL string
}

// returnURL extracts the sanitized post-login destination. Defaults to the
// feed; off-site and malformed values are discarded.
func returnURL(r *http.Request) string {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if ret == "" {
		ret = urlutil.SafeReturn(r.FormValue("return"), "", "")
	}
	if ret == "" {
		ret = "/"
	}
	return ret
}

// ServeLoginForm handles GET /login.
func (h *Handler) ServeLoginForm(w http.ResponseWriter, r *http.Request) {
	// Already signed in? Straight to the destination.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, returnURL(r), http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL: returnURL(r),
	}

	templates.Render(w, r, "login", data)
}

// HandleLogin handles POST /login.
//
// On success the session is written and the user continues to the return
// URL captured when they were first bounced to login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderForbidden(w, r, "Bad request.", "/login")
		return
	}

	username := normalize.Username(r.FormValue("username"))
	password := r.FormValue("password")
	ret := returnURL(r)

	if username == "" || password == "" {
		h.reRenderWithError(w, r, username, ret, "Enter your username and password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := userstore.New(h.DB).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Same message as a bad password; don't leak which part failed.
			h.reRenderWithError(w, r, username, ret, "Incorrect username or password.")
			return
		}
		h.ErrLog.LogServerError(w, r, "login lookup failed", err, "A database error occurred.", "/login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		h.reRenderWithError(w, r, username, ret, "Incorrect username or password.")
		return
	}
	if user.Status != "active" {
		h.reRenderWithError(w, r, username, ret, "This account is disabled.")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Name:     user.FullName,
		Role:     user.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "session write failed", err, "Sign-in failed.", "/login")
		return
	}

	h.Log.Info("user signed in", zap.String("username", user.Username))
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

func (h *Handler) reRenderWithError(w http.ResponseWriter, r *http.Request, username, ret, msg string) {
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", "/"),
		LoginName: username,
		ReturnURL: ret,
	}
	data.SetError(msg)
	templates.Render(w, r, "login", data)
}
