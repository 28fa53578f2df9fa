// internal/app/features/posts/postedit.go
package posts

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/plume/internal/app/features/errors"
	"github.com/dalemusser/plume/internal/app/features/shared"
	"github.com/dalemusser/plume/internal/app/policy/postpolicy"
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

// ServeEditPost renders the Edit Post form. A viewer who is not the author
// is quietly redirected to the post detail page instead of shown an error.
func (h *Handler) ServeEditPost(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	post, done := h.resolvePost(w, r, ctx)
	if done {
		return
	}
	if !postpolicy.CanEdit(userID, post) {
		http.Redirect(w, r, navigation.PostURL(post.ID.Hex()), http.StatusSeeOther)
		return
	}

	groupHex := ""
	if post.GroupID != nil {
		groupHex = post.GroupID.Hex()
	}
	data := postFormData{
		BaseVM:       viewdata.NewBaseVM(r, "Edit Post", navigation.PostURL(post.ID.Hex())),
		PostID:       post.ID.Hex(),
		Text:         post.Text,
		GroupHex:     groupHex,
		Groups:       h.loadGroupChoices(ctx),
		CurrentImage: shared.NewPostVM(post),
	}

	templates.Render(w, r, "post_edit", data)
}

// HandleEditPost processes the Edit Post form.
//
// The post's author and created_at never change. An empty image keeps the
// current one; a new upload replaces it.
func (h *Handler) HandleEditPost(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
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

	post, done := h.resolvePost(w, r, ctx)
	if done {
		return
	}
	if !postpolicy.CanEdit(userID, post) {
		http.Redirect(w, r, navigation.PostURL(post.ID.Hex()), http.StatusSeeOther)
		return
	}

	text := normalize.Text(r.FormValue("text"))
	groupID, groupHex := h.formGroupID(ctx, r)

	input := createPostInput{Text: text}
	if result := inputval.Validate(input); result.HasErrors() {
		h.reRenderEditWithError(w, r, ctx, post, postFormData{
			PostID:   post.ID.Hex(),
			Text:     text,
			GroupHex: groupHex,
		}, result.First())
		return
	}

	imagePath, imageName := "", ""
	image, hasImage, err := h.formImage(ctx, r)
	if err != nil {
		h.reRenderEditWithError(w, r, ctx, post, postFormData{
			PostID:   post.ID.Hex(),
			Text:     text,
			GroupHex: groupHex,
		}, "Image upload failed.")
		return
	}
	if hasImage {
		imagePath = h.Files.URL(image.Path)
		imageName = image.FileName
	}

	if err := poststore.New(h.DB).UpdateContent(ctx, post.ID, text, groupID, imagePath, imageName); err != nil {
		h.ErrLog.LogServerError(w, r, "post update failed", err, "Failed to update post.", navigation.PostURL(post.ID.Hex()))
		return
	}

	http.Redirect(w, r, navigation.PostURL(post.ID.Hex()), http.StatusSeeOther)
}

func (h *Handler) reRenderEditWithError(w http.ResponseWriter, r *http.Request, ctx context.Context, post models.Post, data postFormData, msg string) {
	data.BaseVM = viewdata.NewBaseVM(r, "Edit Post", navigation.PostURL(post.ID.Hex()))
	data.Groups = h.loadGroupChoices(ctx)
	data.CurrentImage = shared.NewPostVM(post)
	data.SetError(msg)
	templates.Render(w, r, "post_edit", data)
}
