package assessment

import "time"

// Module is a subject domain for an assessment. The set is closed:
// a session is always run against exactly one of the values below.
type Module string

const (
	ModuleMachineLearning Module = "Machine Learning"
	ModuleNLP             Module = "Natural Language Processing"
	ModuleComputerVision  Module = "Computer Vision"
	ModuleGenerativeAI    Module = "Generative AI"
)

// Modules returns all subject modules in display order.
func Modules() []Module {
	return []Module{
		ModuleMachineLearning,
		ModuleNLP,
		ModuleComputerVision,
		ModuleGenerativeAI,
	}
}

// Valid reports whether m is one of the known modules.
func (m Module) Valid() bool {
	switch m {
	case ModuleMachineLearning, ModuleNLP, ModuleComputerVision, ModuleGenerativeAI:
		return true
	}
	return false
}

// Option is one selectable answer of a question. IDs are short tokens
// (e.g. "a", "b") unique within the owning question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is a single assessment item. Questions are created by the
// catalog on load and never mutated afterwards; they are shared by
// reference between the runner and the review screen.
type Question struct {
	ID              int      `json:"id"`
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
	Explanation     string   `json:"explanation"`
	Category        string   `json:"category"`
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectOption returns the option referenced by CorrectOptionID.
func (q *Question) CorrectOption() *Option {
	return q.Option(q.CorrectOptionID)
}

// UserAnswer records one submitted response. IsCorrect is computed at
// submission time and never recomputed.
type UserAnswer struct {
	QuestionID       int    `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
}

// Result is the finished-session summary. It is immutable once
// assembled; score always equals the count of correct answers.
type Result struct {
	Module         Module
	Score          int
	Total          int
	Answers        []UserAnswer
	Narrative      string
	CompletionDate string
	CompletedAt    time.Time
}

// Percentage returns the score as a rounded 0-100 percentage.
func (r *Result) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return int(float64(r.Score)/float64(r.Total)*100 + 0.5)
}

// AnswerFor returns the recorded answer for a question id, or nil.
func (r *Result) AnswerFor(questionID int) *UserAnswer {
	for i := range r.Answers {
		if r.Answers[i].QuestionID == questionID {
			return &r.Answers[i]
		}
	}
	return nil
}
