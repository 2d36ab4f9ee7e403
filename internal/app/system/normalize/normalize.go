// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address. All email comparisons and
// the unique index operate on this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal runs of whitespace to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
