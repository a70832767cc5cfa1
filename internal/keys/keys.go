package keys

import (
	"strings"
)

// KeyFromName produces a canonical config id from a display name: trimmed,
// lower-cased, spaces replaced with underscores. Lets config entries omit
// an explicit id when the name is already unique.
func KeyFromName(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}
