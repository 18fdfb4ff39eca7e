package util

import (
	"regexp"
	"strings"
)

// jsWhitespace mirrors the JavaScript \s class, which is wider than RE2's ASCII-only \s.
const jsWhitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9가-힣` + jsWhitespace + `-]`)
	slugWhitespace = regexp.MustCompile(`[` + jsWhitespace + `]+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slugify derives the file-safe identifier of a post from its title. Existing content
// directories were named with exactly these rules, so they must not drift: Hangul syllables
// survive, everything else outside [a-z0-9] is dropped.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
