// internal/app/system/joincode/joincode.go
package joincode

import (
	"crypto/rand"
	"regexp"
)

// Length of a generated join code.
const Length = 6

// alphabet excludes nothing; codes are upper base36 like the ones users
// already have, so validation accepts the full set.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var codeRe = regexp.MustCompile(`^[0-9A-Z]{6,8}$`)

// New returns a fresh 6-character join code. Uniqueness is the group
// store's job (unique index, regenerate on collision); this only
// guarantees format and unpredictability.
func New() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible to fall back to.
		panic("joincode: rand.Read: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

// Valid reports whether s looks like a join code (6-8 chars, upper base36).
func Valid(s string) bool {
	return codeRe.MatchString(s)
}
