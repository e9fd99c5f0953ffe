package quiz

import (
	"regexp"
	"strings"
)

// Line-shape rules. Everything that matches none of these is "plain" and only
// meaningful while a question is open (and even then usually ignored).
var (
	headingRe  = regexp.MustCompile(`^ {0,3}(#{1,6})\s+(.*)$`)
	boldLineRe = regexp.MustCompile(`^\s*\*\*(.+?)\*\*\s*$`)
	optionRe   = regexp.MustCompile(`^\s*([A-Z])[.)]\s+(.*)$`)
	answerRe   = regexp.MustCompile(`(?i)^\s*(?:\*\*)?(?:answer|correct\s*answer|ans)\s*[:：]\s*(.+?)\s*(?:\*\*)?\s*$`)
	numberedRe = regexp.MustCompile(`^\d+\s*[.:)]|^\d+\b`)
)

type lineKind int

const (
	linePlain lineKind = iota
	lineBlank
	lineSeparator
	lineHeading
	lineBoldTitle
	lineOption
	lineAnswer
	lineFreePrompt
)

type classified struct {
	kind  lineKind
	level int    // heading level
	text  string // heading/bold/option/answer payload, inline-stripped
}

func classify(raw string) classified {
	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return classified{kind: lineBlank}
	}
	switch stripped {
	case "---", "----", "-----":
		return classified{kind: lineSeparator}
	}
	if m := headingRe.FindStringSubmatch(raw); m != nil {
		return classified{kind: lineHeading, level: len(m[1]), text: stripInline(m[2])}
	}
	if m := boldLineRe.FindStringSubmatch(raw); m != nil {
		if text := stripInline(m[1]); text != "" {
			return classified{kind: lineBoldTitle, text: text}
		}
	}
	if m := answerRe.FindStringSubmatch(stripped); m != nil {
		return classified{kind: lineAnswer, text: stripInline(m[1])}
	}
	if strings.HasPrefix(strings.ToLower(stripped), "*answer") {
		return classified{kind: lineFreePrompt}
	}
	if m := optionRe.FindStringSubmatch(stripped); m != nil {
		return classified{kind: lineOption, text: stripInline(m[2])}
	}
	return classified{kind: linePlain}
}

// looksNumbered reports whether a stripped heading text reads like a question
// number: "1.", "2:", "3)" or a bare leading number.
func looksNumbered(text string) bool { return numberedRe.MatchString(text) }
