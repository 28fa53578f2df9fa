// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// RenderNotFound shows the 404 page with a 404 status.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Username
	}
	if msg == "" {
		msg = "The page you were looking for does not exist."
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:      "Not found",
		IsLoggedIn: signed,
		Role:       role,
		Username:   name,
		Message:    msg,
		BackURL:    backURL,
	}

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_notfound", data)
}

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Username
	}
	if backURL == "" {
		backURL = "/login"
	}

	data := pageData{
		Title:      "Sign in required",
		IsLoggedIn: signed,
		Role:       role,
		Username:   name,
		Message:    "Please sign in to continue.",
		BackURL:    backURL,
	}

	templates.Render(w, r, "error_forbidden", data)
}

// RenderForbidden shows a friendly access error page with a message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Username
	}
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:      "Access denied",
		IsLoggedIn: signed,
		Role:       role,
		Username:   name,
		Message:    msg,
		BackURL:    backURL,
	}

	templates.Render(w, r, "error_forbidden", data)
}

// ErrorLogger pairs the zap logger with the error pages so handlers can log
// a server-side failure and show the user a friendly page in one call.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger around the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// LogServerError logs the underlying error and renders an error page with a
// user-safe message. The raw error never reaches the response.
func (el *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	el.Log.Error(logMsg,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))

	RenderForbidden(w, r, userMsg, backURL)
}
