package quiz

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseMultipleChoiceSection(t *testing.T) {
	doc := Parse("## Multiple Choice\n### 1. What is X?\nA) foo\nB) bar\nAnswer: B")
	if len(doc) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc))
	}
	sec := doc[0]
	if sec.Title != "Multiple Choice" || sec.Kind != KindMultipleChoice {
		t.Fatalf("section = %q/%q", sec.Title, sec.Kind)
	}
	if len(sec.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(sec.Questions))
	}
	q := sec.Questions[0]
	if q.Title != "1. What is X?" {
		t.Errorf("title = %q", q.Title)
	}
	if q.Type != TypeMultipleChoice {
		t.Errorf("type = %q", q.Type)
	}
	if !reflect.DeepEqual(q.Options, []string{"foo", "bar"}) {
		t.Errorf("options = %v", q.Options)
	}
	if q.NormalizedAnswer != "bar" {
		t.Errorf("normalized = %q, want bar", q.NormalizedAnswer)
	}
}

func TestParseTrueFalseSection(t *testing.T) {
	doc := Parse("## True or False\n### 2. Sky is blue.\nAnswer: true")
	if len(doc) != 1 || doc[0].Kind != KindTrueFalse {
		t.Fatalf("doc = %+v", doc)
	}
	q := doc[0].Questions[0]
	if !reflect.DeepEqual(q.Options, []string{"True", "False"}) {
		t.Errorf("options = %v", q.Options)
	}
	if q.NormalizedAnswer != "True" {
		t.Errorf("normalized = %q, want True", q.NormalizedAnswer)
	}
}

func TestParseShortAnswerSection(t *testing.T) {
	doc := Parse("## Short Answer\n### 3. Explain Y.\n")
	q := doc[0].Questions[0]
	if q.Type != TypeShortAnswer {
		t.Errorf("type = %q", q.Type)
	}
	if len(q.Options) != 0 || q.NormalizedAnswer != "" {
		t.Errorf("short answer carries options/answer: %+v", q)
	}
}

func TestParseUnresolvedAnswerKept(t *testing.T) {
	doc := Parse("## Multiple Choice\n### 1. Pick one\nA. foo\nB. bar\nAnswer: Z")
	q := doc[0].Questions[0]
	if q.RawAnswer != "Z" {
		t.Errorf("raw = %q", q.RawAnswer)
	}
	if q.NormalizedAnswer != "" {
		t.Errorf("normalized = %q, want unresolved", q.NormalizedAnswer)
	}
}

func TestParseDropsEmptySections(t *testing.T) {
	doc := Parse("## Part One\n## Part Two\n### 1. Q\nA) x\nB) y\n")
	if len(doc) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc))
	}
	if doc[0].Title != "Part Two" {
		t.Errorf("retained section = %q, want Part Two", doc[0].Title)
	}
}

func TestParseBoldLineStartsSection(t *testing.T) {
	doc := Parse("**Multiple Choice**\n### 1. Q\nA) x\nB) y\n")
	if len(doc) != 1 || doc[0].Title != "Multiple Choice" || doc[0].Kind != KindMultipleChoice {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestParseAutoSectionForOrphanQuestion(t *testing.T) {
	doc := Parse("### 1. Orphan?\nA) yes\nB) no\n")
	if len(doc) != 1 || doc[0].Title != "Questions" || doc[0].Kind != KindUnspecified {
		t.Fatalf("doc = %+v", doc)
	}
}

func TestParseIgnoresNoise(t *testing.T) {
	input := strings.Join([]string{
		"random prose before anything",
		"---",
		"## Quiz",
		"-----",
		"",
		"#### not a numbered question",
		"### 1. Real question",
		"some stray explanation line",
		"A) one",
		"B) two",
		"Answer: A",
		"",
	}, "\n")
	doc := Parse(input)
	if len(doc) != 1 || len(doc[0].Questions) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	q := doc[0].Questions[0]
	if q.NormalizedAnswer != "one" {
		t.Errorf("normalized = %q, want one", q.NormalizedAnswer)
	}
}

func TestParseFreePromptMarker(t *testing.T) {
	doc := Parse("## Quiz\n### 1. Describe Z\n*Answer in your own words*\n")
	q := doc[0].Questions[0]
	if q.Type != TypeShortAnswer {
		t.Errorf("type = %q, want short answer", q.Type)
	}
}

func TestParseTrueFalseKindOverridesOptions(t *testing.T) {
	// Stray lettered lines inside a true/false section must not leak into the
	// fixed option pair.
	doc := Parse("## True / False\n### 1. Water is wet.\nA) maybe\nAnswer: t")
	q := doc[0].Questions[0]
	if q.Type != TypeTrueFalse || !reflect.DeepEqual(q.Options, []string{"True", "False"}) {
		t.Fatalf("question = %+v", q)
	}
	if q.NormalizedAnswer != "True" {
		t.Errorf("normalized = %q", q.NormalizedAnswer)
	}
}

func TestParseBoldAnswerLineActsAsSectionBoundary(t *testing.T) {
	// A fully bold-wrapped answer line is indistinguishable from a bold
	// section title, so it closes the question unanswered. The stray section
	// it opens holds no questions and is dropped.
	doc := Parse("## MC\n### 1. Q\nA) foo\nB) bar\n**Answer: B**\n")
	if len(doc) != 1 {
		t.Fatalf("sections = %d, want 1", len(doc))
	}
	q := doc[0].Questions[0]
	if q.RawAnswer != "" || q.NormalizedAnswer != "" {
		t.Errorf("question = %+v, want no answer", q)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if doc := Parse(""); len(doc) != 0 {
		t.Fatalf("doc = %+v, want empty", doc)
	}
	if doc := Parse("just some text\nwith no structure"); len(doc) != 0 {
		t.Fatalf("doc = %+v, want empty", doc)
	}
}

func TestParseAnswerMarkerVariants(t *testing.T) {
	for _, tc := range []struct {
		line string
		want string
	}{
		{"Answer: B", "bar"},
		{"answer: b", "bar"},
		{"Correct Answer: B", "bar"},
		{"CorrectAnswer: B", "bar"},
		{"Ans: B", "bar"},
		{"Answer： B", "bar"}, // full-width colon
	} {
		doc := Parse("## MC\n### 1. Q\nA) foo\nB) bar\n" + tc.line)
		got := doc[0].Questions[0].NormalizedAnswer
		if got != tc.want {
			t.Errorf("%q: normalized = %q, want %q", tc.line, got, tc.want)
		}
	}
}
