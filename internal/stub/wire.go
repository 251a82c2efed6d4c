package stub

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ccmg/qbank-admin/internal/model"
)

// The fixture emits the same flat document shapes the real backend does:
// multiple-choice answers keyed by label with a numeric correctIndex,
// essays and exams as flat objects, timestamps as RFC3339 strings.

func mcDoc(q model.Question) gin.H {
	answers := map[string]string{}
	correctIndex := 0
	for i, option := range q.Options() {
		label := option.Label
		if label == "" {
			label = model.OptionLabel(i)
		}
		answers[label] = option.Text
		if option.IsCorrect {
			correctIndex = i
		}
	}

	explanation, explanationURL := "", ""
	if q.MultipleChoice != nil {
		explanation = q.MultipleChoice.Explanation
		explanationURL = q.MultipleChoice.ExplanationURL
	}

	return gin.H{
		"id":           q.ID,
		"content":      q.Content,
		"answers":      answers,
		"correctIndex": correctIndex,
		"explanation":  explanation,
		"youtubeUrl":   explanationURL,
		"createdAt":    docTime(q.CreatedAt),
		"updatedAt":    docTime(q.UpdatedAt),
	}
}

func essayDoc(q model.Question) gin.H {
	hint, group := "", ""
	keywords := []string{}
	verified := false
	if q.Essay != nil {
		hint = q.Essay.Hint
		group = q.Essay.Group
		keywords = q.Essay.Keywords
		verified = q.Essay.IsVerified
	}

	return gin.H{
		"id":         q.ID,
		"content":    q.Content,
		"hint":       hint,
		"category":   string(q.Category),
		"group":      group,
		"keywords":   keywords,
		"isVerified": verified,
		"createdAt":  docTime(q.CreatedAt),
		"updatedAt":  docTime(q.UpdatedAt),
	}
}

func examDoc(exam model.Exam) gin.H {
	return gin.H{
		"id":              exam.ID,
		"name":            exam.Name,
		"category":        string(exam.Category),
		"type":            string(exam.Type),
		"durationMinutes": exam.DurationMinutes,
		"questions":       exam.Questions,
		"questionCount":   exam.QuestionCount,
		"createdAt":       docTime(exam.CreatedAt),
		"updatedAt":       docTime(exam.UpdatedAt),
	}
}

func docTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}
