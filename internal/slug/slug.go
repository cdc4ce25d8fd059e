package slug

import (
	"regexp"
	"strings"
)

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9_\-\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// Make converts a title into a lowercase URL-safe slug. Characters outside
// [a-z0-9_-] and whitespace are dropped, whitespace runs become a single
// hyphen, repeated hyphens collapse, and leading/trailing hyphens are
// trimmed. A title made entirely of disallowed characters yields "".
func Make(title string) string {
	s := strings.ToLower(title)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
