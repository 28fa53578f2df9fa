// internal/app/features/posts/postcreate.go
package posts

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	poststore "github.com/dalemusser/plume/internal/app/store/posts"
	"github.com/dalemusser/plume/internal/app/system/authz"
	"github.com/dalemusser/plume/internal/app/system/inputval"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/normalize"
	"github.com/dalemusser/plume/internal/app/system/timeouts"
	"github.com/dalemusser/plume/internal/app/system/viewdata"
	"github.com/dalemusser/plume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeCreatePost renders the New Post form.
func (h *Handler) ServeCreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := postFormData{
		BaseVM: viewdata.NewBaseVM(r, "New Post", "/"),
		Groups: h.loadGroupChoices(ctx),
	}

	templates.Render(w, r, "post_new", data)
}

// HandleCreatePost processes the New Post form.
//
// Text empty after trimming re-renders the form with the input preserved.
// The author is always the session user; success redirects to their profile.
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	_, username, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}
	if err := parsePostForm(r); err != nil {
		uierrors.RenderForbidden(w, r, "Bad request.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	text := normalize.Text(r.FormValue("text"))
	groupID, groupHex := h.formGroupID(ctx, r)

	input := createPostInput{Text: text}
	if result := inputval.Validate(input); result.HasErrors() {
		h.reRenderCreateWithError(w, r, ctx, postFormData{
			Text:     text,
			GroupHex: groupHex,
		}, result.First())
		return
	}

	image, hasImage, err := h.formImage(ctx, r)
	if err != nil {
		h.reRenderCreateWithError(w, r, ctx, postFormData{
			Text:     text,
			GroupHex: groupHex,
		}, "Image upload failed.")
		return
	}

	post := models.Post{
		Text:       text,
		AuthorID:   userID,
		AuthorName: username,
		GroupID:    groupID,
	}
	if hasImage {
		post.ImagePath = h.Files.URL(image.Path)
		post.ImageName = image.FileName
	}

	if _, err := poststore.New(h.DB).Create(ctx, post); err != nil {
		h.ErrLog.LogServerError(w, r, "post create failed", err, "Failed to create post.", "/")
		return
	}

	http.Redirect(w, r, navigation.ProfileURL(username), http.StatusSeeOther)
}

func (h *Handler) reRenderCreateWithError(w http.ResponseWriter, r *http.Request, ctx context.Context, data postFormData, msg string) {
	data.BaseVM = viewdata.NewBaseVM(r, "New Post", "/")
	data.Groups = h.loadGroupChoices(ctx)
	data.SetError(msg)
	templates.Render(w, r, "post_new", data)
}
