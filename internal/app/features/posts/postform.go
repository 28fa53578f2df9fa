// internal/app/features/posts/postform.go
package posts

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/plume/internal/app/features/shared"
	groupstore "github.com/dalemusser/plume/internal/app/store/groups"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/uploads"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/plume/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createPostInput defines validation rules for post text.
type createPostInput struct {
	Text string `validate:"required,max=10000" label:"Text"`
}

type postFormData struct {
	viewdata.BaseVM
	PostID       string
	Text         string
	GroupHex     string
	Groups       []models.Group
	CurrentImage shared.PostVM
}

// parsePostForm accepts both multipart (with image) and plain form posts.
func parsePostForm(r *http.Request) error {
	err := r.ParseMultipartForm(uploads.MaxImageBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formGroupID resolves the optional group selection. An empty or malformed
// value means "no group"; a well-formed ID must name an existing group.
func (h *Handler) formGroupID(ctx context.Context, r *http.Request) (*primitive.ObjectID, string) {
	hex := normalize.QueryParam(r.FormValue("group"))
	if hex == "" {
		return nil, ""
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil, ""
	}
	if _, err := groupstore.New(h.DB).GetByID(ctx, id); err != nil {
		return nil, ""
	}
	return &id, hex
}

// formImage stores an uploaded image, if any. ok is false when the form had
// no image, which on edit means "keep the current one".
func (h *Handler) formImage(ctx context.Context, r *http.Request) (uploads.Info, bool, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return uploads.Info{}, false, nil
	}
	if err != nil {
		return uploads.Info{}, false, err
	}
	defer file.Close()

	info, err := uploads.PutImage(ctx, h.Files, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		return uploads.Info{}, false, err
	}
	return info, true, nil
}

// loadGroupChoices fills the group picker on the create/edit forms.
func (h *Handler) loadGroupChoices(ctx context.Context) []models.Group {
	groups, err := groupstore.New(h.DB).List(ctx)
	if err != nil {
		// The picker is optional chrome; the form still works without it.
		return nil
	}
	return groups
}
