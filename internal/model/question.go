package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuestionType discriminates the two question variants.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeEssay          QuestionType = "essay"
)

// Valid reports whether t is one of the two known question types.
func (t QuestionType) Valid() bool {
	return t == TypeMultipleChoice || t == TypeEssay
}

// Category is the top-level knowledge domain tag of a question or exam.
type Category string

const (
	CategoryFoundational Category = "co-so"
	CategorySpecialized  Category = "chuyen-mon"
)

// Valid reports whether c is one of the two enumerated categories.
func (c Category) Valid() bool {
	return c == CategoryFoundational || c == CategorySpecialized
}

// Option is a single answer choice of a multiple-choice question.
// Label is the display letter; it stays empty until the server assigns one.
type Option struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// MultipleChoiceDetails holds the fields that exist only on
// multiple-choice questions.
type MultipleChoiceDetails struct {
	Options        []Option `json:"options"`
	Explanation    string   `json:"explanation"`
	ExplanationURL string   `json:"explanationUrl"`
}

// EssayDetails holds the fields that exist only on essay questions.
type EssayDetails struct {
	Hint       string   `json:"hint"`
	Group      string   `json:"group"`
	Keywords   []string `json:"keywords"`
	IsVerified bool     `json:"isVerified"`
}

// Question is a tagged union: exactly one of MultipleChoice or Essay is
// non-nil, matching Type. Use Normalize after any type change to drop the
// stale variant so essay fields can never leak onto a multiple-choice
// question or vice versa.
type Question struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Content   string       `json:"content"`
	Category  Category     `json:"category"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`

	MultipleChoice *MultipleChoiceDetails `json:"multipleChoice,omitempty"`
	Essay          *EssayDetails          `json:"essay,omitempty"`
}

// NewID generates a prefixed random identifier.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// NewEmptyOption returns an unsaved option with a fresh id.
func NewEmptyOption() Option {
	return Option{ID: NewID("option")}
}

// NewEmptyDraft returns the draft a fresh authoring session starts from:
// an unsaved multiple-choice question with two empty options.
func NewEmptyDraft() Question {
	return Question{
		Type:     TypeMultipleChoice,
		Category: CategoryFoundational,
		MultipleChoice: &MultipleChoiceDetails{
			Options: []Option{NewEmptyOption(), NewEmptyOption()},
		},
	}
}

// Normalize enforces the variant invariant on q: the payload matching
// q.Type is materialized (never nil) and the other variant is dropped.
// A missing or unknown category falls back to foundational. Essay
// keywords are trimmed and empty entries removed; multiple-choice
// options are given ids when missing.
func (q *Question) Normalize() {
	if !q.Category.Valid() {
		q.Category = CategoryFoundational
	}
	switch q.Type {
	case TypeEssay:
		q.MultipleChoice = nil
		if q.Essay == nil {
			q.Essay = &EssayDetails{}
		}
		if q.Essay.Keywords == nil {
			q.Essay.Keywords = []string{}
		} else {
			kept := q.Essay.Keywords[:0]
			for _, kw := range q.Essay.Keywords {
				if trimmed := strings.TrimSpace(kw); trimmed != "" {
					kept = append(kept, trimmed)
				}
			}
			q.Essay.Keywords = kept
		}
	default:
		q.Type = TypeMultipleChoice
		q.Essay = nil
		if q.MultipleChoice == nil {
			q.MultipleChoice = &MultipleChoiceDetails{}
		}
		for i := range q.MultipleChoice.Options {
			if q.MultipleChoice.Options[i].ID == "" {
				q.MultipleChoice.Options[i].ID = NewID("option")
			}
		}
	}
}

// Clone returns a deep copy of q, safe to mutate independently.
func (q Question) Clone() Question {
	out := q
	if q.MultipleChoice != nil {
		mc := *q.MultipleChoice
		mc.Options = append([]Option(nil), q.MultipleChoice.Options...)
		out.MultipleChoice = &mc
	}
	if q.Essay != nil {
		es := *q.Essay
		es.Keywords = append([]string(nil), q.Essay.Keywords...)
		out.Essay = &es
	}
	return out
}

// Options returns the option list, or nil for essay questions.
func (q Question) Options() []Option {
	if q.MultipleChoice == nil {
		return nil
	}
	return q.MultipleChoice.Options
}

// OptionLabel derives the display letter for an option position (A, B, …).
func OptionLabel(index int) string {
	if index < 0 || index >= 26 {
		return ""
	}
	return string(rune('A' + index))
}
