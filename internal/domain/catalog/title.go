package catalog

import (
	"regexp"
	"strings"
	"unicode"
)

var seasonToken = regexp.MustCompile(`(?i)season\s*\d+`)

// NormalizeTitle collapses a per-episode title into its logical series key:
// the "season <digits>" token is removed, then all whitespace, then the
// remainder is lowercased. Two titles denote the same logical series iff
// they normalize equal. The function is idempotent.
func NormalizeTitle(title string) string {
	out := seasonToken.ReplaceAllString(title, "")
	out = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, out)
	return strings.ToLower(out)
}
