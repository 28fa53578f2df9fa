// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	Username   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string

	// Error holds a validation or action message for re-rendered forms.
	Error string
}

// SetError records a message shown at the top of a re-rendered form.
func (vm *BaseVM) SetError(msg string) { vm.Error = msg }

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back link if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, username, _, signedIn := authz.UserCtx(r)

	return BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		Username:    username,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
}
