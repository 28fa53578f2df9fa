// internal/app/features/shared/postvm.go
package shared

import (
	"html/template"
	"time"

	"github.com/dalemusser/plume/internal/app/system/htmlsanitize"
	"github.com/dalemusser/plume/internal/app/system/navigation"
	"github.com/dalemusser/plume/internal/app/system/paging"
	"github.com/dalemusser/plume/internal/domain/models"
)

// PostVM is the render-ready shape of a post, shared by every feed page and
// the post detail page. Text is sanitized here so templates can emit it
// without re-escaping.
type PostVM struct {
	ID         string
	Text       template.HTML
	AuthorName string
	AuthorURL  string
	PostURL    string
	ImagePath  string
	ImageName  string
	CreatedAt  time.Time
}

// NewPostVM converts a stored post for rendering.
func NewPostVM(p models.Post) PostVM {
	return PostVM{
		ID:         p.ID.Hex(),
		Text:       htmlsanitize.UGC(p.Text),
		AuthorName: p.AuthorName,
		AuthorURL:  navigation.ProfileURL(p.AuthorName),
		PostURL:    navigation.PostURL(p.ID.Hex()),
		ImagePath:  p.ImagePath,
		ImageName:  p.ImageName,
		CreatedAt:  p.CreatedAt,
	}
}

// PagerVM carries pagination state for feed templates.
type PagerVM struct {
	Number  int
	Pages   int
	Total   int64
	HasPrev bool
	HasNext bool
	Prev    int
	Next    int
}

// NewFeedVM converts one page of posts into view models plus pager state.
func NewFeedVM(page paging.Page[models.Post]) ([]PostVM, PagerVM) {
	posts := make([]PostVM, 0, len(page.Items))
	for _, p := range page.Items {
		posts = append(posts, NewPostVM(p))
	}
	pager := PagerVM{
		Number:  page.Number,
		Pages:   page.Pages,
		Total:   page.Total,
		HasPrev: page.HasPrev,
		HasNext: page.HasNext,
		Prev:    page.Prev,
		Next:    page.Next,
	}
	return posts, pager
}
