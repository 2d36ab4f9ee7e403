// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips all markup from user-supplied text fields (note content,
// task descriptions) before persistence, leaving plain text.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
