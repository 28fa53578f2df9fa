// internal/testutil/http.go
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// NewRequest builds a test request with an optional form body. A non-nil
// form implies POST with the usual content type.
func NewRequest(t *testing.T, method, target string, form url.Values) *http.Request {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	r := httptest.NewRequest(method, target, body)
	if form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return r
}

// WithUser attaches a signed-in session user to the request, bypassing the
// cookie store the way handlers see it after LoadSessionUser.
func WithUser(r *http.Request, user models.User) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Name:     user.FullName,
		Role:     user.Role,
	})
}

// WithURLParams attaches chi route parameters to the request so handlers
// that read chi.URLParam work without a full router.
func WithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
