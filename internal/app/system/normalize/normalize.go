// Package normalize trims and canonicalizes user-supplied strings before
// they reach validation or the stores.
package normalize

import "strings"

// Text trims surrounding whitespace from free-form text (post/comment bodies,
// descriptions). Interior whitespace is preserved.
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Name trims a display name. Case is preserved.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Username lowercases and trims a username so lookups are case-insensitive.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Slug lowercases and trims a group slug and collapses spaces to hyphens.
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// QueryParam trims a query or form parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
