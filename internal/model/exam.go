package model

import "time"

// Exam constraints shared by the composer and the fixture server.
const (
	MaxQuestionsPerExam = 50
	MinExamNameLength   = 3
	MaxExamNameLength   = 120
	MinExamDuration     = 1
	MaxExamDuration     = 1440
)

// Exam is a named, timed set of question ids of a single type and category.
// A multiple-choice exam carries exactly MaxQuestionsPerExam questions;
// an essay exam carries between 1 and MaxQuestionsPerExam.
type Exam struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Category        Category     `json:"category"`
	Type            QuestionType `json:"type"`
	DurationMinutes int          `json:"durationMinutes"`
	Questions       []string     `json:"questions"`
	QuestionCount   int          `json:"questionCount"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// ExamPayload is what the composer submits to create or update an exam.
type ExamPayload struct {
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Category        Category `json:"category"`
	Questions       []string `json:"questions"`
}
