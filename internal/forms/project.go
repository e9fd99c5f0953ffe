package forms

import "github.com/timnik82/quiz-forms/internal/quiz"

// QuizSettingsRequest flips the form into quiz mode. Callers prepend it to the
// projected sequence; it carries no location index.
func QuizSettingsRequest() Request {
	return Request{UpdateSettings: &UpdateSettingsRequest{
		Settings:   Settings{QuizSettings: QuizSettings{IsQuiz: true}},
		UpdateMask: "quizSettings.isQuiz",
	}}
}

// BuildRequests projects a parsed document into an ordered createItem
// sequence. Positions start at base and increase by one per emitted request,
// page breaks included. The document itself is never mutated: a choice
// question that ends up with fewer than two options is merely projected as a
// text question.
func BuildRequests(doc quiz.Document, base int) []Request {
	reqs := []Request{}
	idx := base

	for _, sec := range doc {
		title := sec.Title
		if title == "" {
			title = "Section"
		}
		reqs = append(reqs, Request{CreateItem: &CreateItemRequest{
			Item:     Item{Title: title, PageBreakItem: &PageBreakItem{}},
			Location: Location{Index: idx},
		}})
		idx++

		for _, q := range sec.Questions {
			reqs = append(reqs, Request{CreateItem: &CreateItemRequest{
				Item:     questionItem(q),
				Location: Location{Index: idx},
			}})
			idx++
		}
	}
	return reqs
}

func questionItem(q quiz.Question) Item {
	title := q.Title
	if title == "" {
		title = "Question"
	}
	fq := FormQuestion{Required: true}

	choice := q.Type == quiz.TypeMultipleChoice || q.Type == quiz.TypeTrueFalse
	if choice && len(q.Options) >= 2 {
		opts := make([]Option, len(q.Options))
		for i, o := range q.Options {
			opts[i] = Option{Value: o}
		}
		fq.ChoiceQuestion = &ChoiceQuestion{Type: "RADIO", Options: opts}
		if q.NormalizedAnswer != "" {
			fq.Grading = &Grading{
				PointValue:     1,
				CorrectAnswers: CorrectAnswers{Answers: []Answer{{Value: q.NormalizedAnswer}}},
			}
		}
	} else {
		fq.TextQuestion = &TextQuestion{}
	}
	return Item{Title: title, QuestionItem: &QuestionItem{Question: fq}}
}
