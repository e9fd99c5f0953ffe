// Package forms projects parsed quiz documents onto the Google Forms
// batchUpdate request surface and talks to the Forms API.
package forms

// Request is one entry of a batchUpdate payload. Exactly one field is set.
type Request struct {
	CreateItem     *CreateItemRequest     `json:"createItem,omitempty"`
	UpdateSettings *UpdateSettingsRequest `json:"updateSettings,omitempty"`
}

type CreateItemRequest struct {
	Item     Item     `json:"item"`
	Location Location `json:"location"`
}

type Location struct {
	Index int `json:"index"`
}

type Item struct {
	Title         string         `json:"title,omitempty"`
	PageBreakItem *PageBreakItem `json:"pageBreakItem,omitempty"`
	QuestionItem  *QuestionItem  `json:"questionItem,omitempty"`
}

type PageBreakItem struct{}

type QuestionItem struct {
	Question FormQuestion `json:"question"`
}

type FormQuestion struct {
	Required       bool            `json:"required"`
	Grading        *Grading        `json:"grading,omitempty"`
	ChoiceQuestion *ChoiceQuestion `json:"choiceQuestion,omitempty"`
	TextQuestion   *TextQuestion   `json:"textQuestion,omitempty"`
}

type ChoiceQuestion struct {
	Type    string   `json:"type"` // always RADIO: single select, no shuffling
	Options []Option `json:"options"`
	Shuffle bool     `json:"shuffle"`
}

type Option struct {
	Value string `json:"value"`
}

type TextQuestion struct {
	Paragraph bool `json:"paragraph"`
}

type Grading struct {
	PointValue     int            `json:"pointValue"`
	CorrectAnswers CorrectAnswers `json:"correctAnswers"`
}

type CorrectAnswers struct {
	Answers []Answer `json:"answers"`
}

type Answer struct {
	Value string `json:"value"`
}

type UpdateSettingsRequest struct {
	Settings   Settings `json:"settings"`
	UpdateMask string   `json:"updateMask"`
}

type Settings struct {
	QuizSettings QuizSettings `json:"quizSettings"`
}

type QuizSettings struct {
	IsQuiz bool `json:"isQuiz"`
}

// Info and Form cover the create/get responses; formId and responderUri are
// opaque pass-through values.
type Info struct {
	Title string `json:"title"`
}

type Form struct {
	FormID       string `json:"formId"`
	ResponderURI string `json:"responderUri,omitempty"`
	Info         *Info  `json:"info,omitempty"`
}
