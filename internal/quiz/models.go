package quiz

// Kind classifies a section by what its title says the answers look like.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindTrueFalse      Kind = "true_false"
	KindShortAnswer    Kind = "short_answer"
	KindUnspecified    Kind = ""
)

// QuestionType is the resolved type of a single question. Unlike Kind it is
// never unspecified: resolution happens once, when the question is flushed.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeShortAnswer    QuestionType = "short_answer"
)

type Question struct {
	Title   string       `json:"title"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"` // empty for short answer; ["True","False"] for true/false

	// RawAnswer is the text captured from an "Answer:" line, if any.
	// NormalizedAnswer is set only when RawAnswer resolved against Options
	// (or the true/false vocabulary); an unresolved answer is not an error.
	RawAnswer        string `json:"raw_answer,omitempty"`
	NormalizedAnswer string `json:"normalized_answer,omitempty"`
}

type Section struct {
	Title     string     `json:"title"`
	Kind      Kind       `json:"kind,omitempty"`
	Questions []Question `json:"questions"`
}

// Document is the ordered list of retained sections. Sections that ended up
// with no questions are dropped during parsing and never appear here.
type Document []Section
