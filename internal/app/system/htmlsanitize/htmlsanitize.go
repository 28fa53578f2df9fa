// Package htmlsanitize strips unsafe markup from user-generated content
// before it is rendered. Post and comment text is stored as the user typed
// it and sanitized on the way out.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ugc allows the limited formatting set bluemonday considers safe for
	// user-generated content (links, emphasis, lists, blockquotes).
	ugc = bluemonday.UGCPolicy()

	// strict strips all markup. Used for titles and single-line fields.
	strict = bluemonday.StrictPolicy()
)

// UGC sanitizes multi-line user content and returns it ready for template
// interpolation without further escaping.
func UGC(s string) template.HTML {
	return template.HTML(ugc.Sanitize(s))
}

// Strip removes all HTML, returning plain text.
func Strip(s string) string {
	return strict.Sanitize(s)
}
