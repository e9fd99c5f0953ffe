package quiz

import (
	"regexp"
	"strings"
)

var (
	boldSpanRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicSpanRe = regexp.MustCompile(`([^*]|^)\*([^*]+?)\*([^*]|$)`)
	wsRunRe      = regexp.MustCompile(`\s+`)
)

// stripInline reduces a raw markdown span to plain single-line text: outer
// emphasis unwrapped, interior paired markers removed, escaped periods
// unescaped, whitespace collapsed. Idempotent.
func stripInline(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "**") && strings.HasSuffix(text, "**") && len(text) >= 4 {
		text = strings.TrimSpace(text[2 : len(text)-2])
	}
	if strings.HasPrefix(text, "*") && strings.HasSuffix(text, "*") && len(text) >= 2 {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	text = boldSpanRe.ReplaceAllString(text, "$1")
	// The boundary groups consume a character, so adjacent spans ("*a* *b*")
	// need another pass; iterate until stable.
	for {
		next := italicSpanRe.ReplaceAllString(text, "$1$2$3")
		if next == text {
			break
		}
		text = next
	}
	text = strings.ReplaceAll(text, `\.`, ".")
	return strings.TrimSpace(wsRunRe.ReplaceAllString(text, " "))
}
