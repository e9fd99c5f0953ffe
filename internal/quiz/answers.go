package quiz

import "strings"

// KindOf infers a section's kind from its title. The keyword table is fixed:
// anything that names neither pair is left unspecified and the questions
// decide for themselves.
func KindOf(title string) Kind {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "true") && strings.Contains(t, "false"):
		return KindTrueFalse
	case strings.Contains(t, "short") && strings.Contains(t, "answer"):
		return KindShortAnswer
	case strings.Contains(t, "multiple") && strings.Contains(t, "choice"):
		return KindMultipleChoice
	}
	return KindUnspecified
}

// NormalizeChoice resolves a raw answer against an option list. A single
// letter selects by 0-based alphabetical offset ("A" = first option); an
// out-of-range letter is unresolved, it does not fall through to text
// matching. Otherwise the first case-insensitive exact match wins. An empty
// return means unresolved.
func NormalizeChoice(raw string, options []string) string {
	a := strings.TrimSpace(raw)
	if len(a) == 1 {
		c := a[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			if i := int(c - 'A'); i < len(options) {
				return options[i]
			}
			return ""
		}
	}
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), a) {
			return opt
		}
	}
	return ""
}

// NormalizeTrueFalse maps the usual spellings onto the canonical pair.
func NormalizeTrueFalse(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "t", "true":
		return "True"
	case "f", "false":
		return "False"
	}
	return ""
}
