package quiz

import "strings"

// parseState carries the single-pass builder state: the section being filled,
// the question being accumulated, and the per-question scratch that is reset
// on every flush.
type parseState struct {
	sections []Section

	section    *Section
	hasSection bool

	questionTitle string
	inQuestion    bool
	options       []string
	rawAnswer     string
	freePrompt    bool
}

// Parse converts a quiz document into its retained sections. It never fails:
// unrecognized lines are dropped and an input with no recognizable structure
// yields an empty Document.
func Parse(text string) Document {
	st := &parseState{}
	for _, raw := range strings.Split(text, "\n") {
		line := classify(raw)
		switch line.kind {
		case lineBlank, lineSeparator:
			continue

		case lineHeading:
			if line.level <= 2 {
				st.openSection(line.text)
				continue
			}
			// Level >= 3 headings become questions only when they read like
			// one ("1.", "2)" ...); anything else is dropped, matching the
			// tolerance of hand-authored documents.
			if looksNumbered(line.text) {
				st.openQuestion(line.text)
			}

		case lineBoldTitle:
			st.openSection(line.text)

		case lineAnswer:
			if st.inQuestion && line.text != "" {
				st.rawAnswer = line.text
			}

		case lineFreePrompt:
			if st.inQuestion {
				st.freePrompt = true
			}

		case lineOption:
			if st.inQuestion {
				st.options = append(st.options, line.text)
			}
		}
	}
	st.flushQuestion()
	st.flushSection()
	return Document(st.sections)
}

func (st *parseState) openSection(title string) {
	st.flushQuestion()
	st.flushSection()
	st.sections = append(st.sections, Section{Title: title, Kind: KindOf(title)})
	st.section = &st.sections[len(st.sections)-1]
	st.hasSection = true
}

func (st *parseState) openQuestion(title string) {
	st.flushQuestion()
	st.questionTitle = title
	st.inQuestion = true
}

// flushQuestion resolves the accumulated question and appends it to the open
// section, creating an untitled one first if the document never declared any.
func (st *parseState) flushQuestion() {
	if !st.inQuestion {
		return
	}
	if !st.hasSection {
		st.sections = append(st.sections, Section{Title: "Questions", Kind: KindUnspecified})
		st.section = &st.sections[len(st.sections)-1]
		st.hasSection = true
	}

	q := Question{Title: st.questionTitle, RawAnswer: st.rawAnswer}
	switch {
	case st.section.Kind == KindShortAnswer:
		q.Type = TypeShortAnswer
	case st.section.Kind == KindTrueFalse:
		q.Type = TypeTrueFalse
		q.Options = []string{"True", "False"}
	case len(st.options) > 0:
		q.Type = TypeMultipleChoice
		q.Options = st.options
	case st.freePrompt:
		q.Type = TypeShortAnswer
	default:
		q.Type = TypeShortAnswer
	}
	if q.RawAnswer != "" {
		switch q.Type {
		case TypeTrueFalse:
			q.NormalizedAnswer = NormalizeTrueFalse(q.RawAnswer)
		case TypeMultipleChoice:
			q.NormalizedAnswer = NormalizeChoice(q.RawAnswer, q.Options)
		}
	}
	st.section.Questions = append(st.section.Questions, q)

	st.questionTitle = ""
	st.inQuestion = false
	st.options = nil
	st.rawAnswer = ""
	st.freePrompt = false
}

// flushSection drops the open section again if nothing ever landed in it.
func (st *parseState) flushSection() {
	if !st.hasSection {
		return
	}
	if len(st.section.Questions) == 0 {
		st.sections = st.sections[:len(st.sections)-1]
	}
	st.section = nil
	st.hasSection = false
}
