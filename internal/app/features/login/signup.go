// internal/app/features/login/signup.go
package login

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	userstore "github.com/dalemusser/plume/internal/app/store/users"
	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/dalemusser/plume/internal/app/system/inputval"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// signupInput defines validation rules for new accounts.
type signupInput struct {
	Username string `validate:"required,min=3,max=30,alphanum" label:"Username"`
	FullName string `validate:"max=200" label:"Full name"`
	Password string `validate:"required,min=8,max=128" label:"Password"`
}

type signupFormData struct {
	viewdata.BaseVM
	SignupName string
	FullName   string
}

// ServeSignupForm handles GET /signup.
func (h *Handler) ServeSignupForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := signupFormData{
		BaseVM: viewdata.NewBaseVM(r, "Sign up", "/"),
	}

	templates.Render(w, r, "signup", data)
}

// HandleSignup handles POST /signup. A successful signup signs the new user
// in immediately and lands them on the feed.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		uierrors.RenderForbidden(w, r, "Bad request.", "/signup")
		return
	}

	username := normalize.Username(r.FormValue("username"))
	fullName := normalize.Name(r.FormValue("full_name"))
	password := r.FormValue("password")

	input := signupInput{Username: username, FullName: fullName, Password: password}
	if result := inputval.Validate(input); result.HasErrors() {
		h.reRenderSignupWithError(w, r, username, fullName, result.First())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "password hash failed", err, "Sign-up failed.", "/signup")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateUsername) {
			h.reRenderSignupWithError(w, r, username, fullName, "That username is taken.")
			return
		}
		h.ErrLog.LogServerError(w, r, "user create failed", err, "Sign-up failed.", "/signup")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Name:     user.FullName,
		Role:     user.Role,
	}); err != nil {
		h.ErrLog.LogServerError(w, r, "session write failed", err, "Sign-up succeeded but sign-in failed.", "/login")
		return
	}

	h.Log.Info("user signed up", zap.String("username", user.Username))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) reRenderSignupWithError(w http.ResponseWriter, r *http.Request, username, fullName, msg string) {
	data := signupFormData{
		BaseVM:     viewdata.NewBaseVM(r, "Sign up", "/"),
		SignupName: username,
		FullName:   fullName,
	}
	data.SetError(msg)
	templates.Render(w, r, "signup", data)
}
