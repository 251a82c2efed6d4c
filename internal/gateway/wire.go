package gateway

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ccmg/qbank-admin/internal/model"
)

// Timestamp decodes the three timestamp encodings the backend emits:
// RFC3339 strings, Firestore {seconds,nanoseconds} objects, and the
// underscore-prefixed variant of the same. Null and absent decode to the
// zero time, which sorts as oldest.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		t.Time = time.Time{}
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		parsed, err := time.Parse(time.RFC3339, asString)
		if err != nil {
			t.Time = time.Time{}
			return nil
		}
		t.Time = parsed
		return nil
	}

	var asObject struct {
		Seconds      *int64 `json:"seconds"`
		Nanoseconds  int64  `json:"nanoseconds"`
		USeconds     *int64 `json:"_seconds"`
		UNanoseconds int64  `json:"_nanoseconds"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		t.Time = time.Time{}
		return nil
	}
	switch {
	case asObject.Seconds != nil:
		t.Time = time.Unix(*asObject.Seconds, asObject.Nanoseconds)
	case asObject.USeconds != nil:
		t.Time = time.Unix(*asObject.USeconds, asObject.UNanoseconds)
	default:
		t.Time = time.Time{}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// flexInt tolerates integers encoded as JSON numbers or strings.
// Null and anything unparseable decode to -1.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = -1
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}
	var asNumber int
	if err := json.Unmarshal(data, &asNumber); err == nil {
		*f = flexInt(asNumber)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(asString)); err == nil {
			*f = flexInt(n)
		}
	}
	return nil
}

// mcQuestionDoc is the flat multiple-choice question shape on the wire.
// Answers arrive keyed by display label.
type mcQuestionDoc struct {
	ID           string            `json:"id"`
	Content      string            `json:"content"`
	Answers      map[string]string `json:"answers"`
	CorrectIndex flexInt           `json:"correctIndex"`
	Explanation  string            `json:"explanation"`
	YoutubeURL   string            `json:"youtubeUrl"`
	CreatedAt    Timestamp         `json:"createdAt"`
	UpdatedAt    Timestamp         `json:"updatedAt"`
}

// UnmarshalJSON defaults correctIndex to -1 so a doc without one decodes
// as "no correct answer" instead of marking the first option.
func (d *mcQuestionDoc) UnmarshalJSON(data []byte) error {
	type plain mcQuestionDoc
	aux := (*plain)(d)
	aux.CorrectIndex = -1
	return json.Unmarshal(data, aux)
}

func (d mcQuestionDoc) toQuestion(category model.Category) model.Question {
	labels := make([]string, 0, len(d.Answers))
	for label := range d.Answers {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	options := make([]model.Option, 0, len(labels))
	for i, label := range labels {
		options = append(options, model.Option{
			ID:        optionDocID(d.ID, label),
			Label:     label,
			Text:      d.Answers[label],
			IsCorrect: i == int(d.CorrectIndex),
		})
	}

	return model.Question{
		ID:        d.ID,
		Type:      model.TypeMultipleChoice,
		Content:   d.Content,
		Category:  category,
		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: d.UpdatedAt.Time,
		MultipleChoice: &model.MultipleChoiceDetails{
			Options:        options,
			Explanation:    d.Explanation,
			ExplanationURL: d.YoutubeURL,
		},
	}
}

func optionDocID(questionID, label string) string {
	if questionID == "" {
		questionID = "question"
	}
	return questionID + "-option-" + label
}

// mcAnswer is one answer row in a multiple-choice save payload.
type mcAnswer struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// mcQuestionPayload is the flat save shape for multiple-choice questions.
type mcQuestionPayload struct {
	ID           string     `json:"id,omitempty"`
	Content      string     `json:"content"`
	Answers      []mcAnswer `json:"answers"`
	CorrectIndex string     `json:"correctIndex,omitempty"`
	CorrectLabel string     `json:"correctLabel,omitempty"`
	Explanation  string     `json:"explanation"`
	YoutubeURL   string     `json:"youtubeUrl"`
}

func buildMCPayload(q model.Question) mcQuestionPayload {
	options := q.Options()
	answers := make([]mcAnswer, 0, len(options))
	correctIndex := -1
	for i, option := range options {
		label := option.Label
		if label == "" {
			label = model.OptionLabel(i)
		}
		answers = append(answers, mcAnswer{Label: label, Text: strings.TrimSpace(option.Text)})
		if option.IsCorrect && correctIndex < 0 {
			correctIndex = i
		}
	}

	payload := mcQuestionPayload{
		ID:      q.ID,
		Content: strings.TrimSpace(q.Content),
		Answers: answers,
	}
	if q.MultipleChoice != nil {
		payload.Explanation = strings.TrimSpace(q.MultipleChoice.Explanation)
		payload.YoutubeURL = strings.TrimSpace(q.MultipleChoice.ExplanationURL)
	}
	if correctIndex >= 0 {
		payload.CorrectIndex = strconv.Itoa(correctIndex)
		payload.CorrectLabel = answers[correctIndex].Label
	}
	return payload
}

// essayDoc is the essay question shape on the wire.
type essayDoc struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Hint       string    `json:"hint"`
	Category   string    `json:"category"`
	Group      string    `json:"group"`
	Keywords   []string  `json:"keywords"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

func (d essayDoc) toQuestion(fallbackCategory model.Category) model.Question {
	category := model.Category(d.Category)
	if !category.Valid() {
		category = fallbackCategory
		if !category.Valid() {
			category = model.CategoryFoundational
		}
	}

	keywords := make([]string, 0, len(d.Keywords))
	for _, kw := range d.Keywords {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}

	return model.Question{
		ID:        d.ID,
		Type:      model.TypeEssay,
		Content:   d.Content,
		Category:  category,
		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: d.UpdatedAt.Time,
		Essay: &model.EssayDetails{
			Hint:       d.Hint,
			Group:      d.Group,
			Keywords:   keywords,
			IsVerified: d.IsVerified,
		},
	}
}

// essayPayload is the flat save shape for essay questions.
type essayPayload struct {
	ID         string   `json:"id,omitempty"`
	Content    string   `json:"content"`
	Group      string   `json:"group"`
	Category   string   `json:"category"`
	Keywords   []string `json:"keywords"`
	IsVerified bool     `json:"isVerified"`
	Hint       string   `json:"hint,omitempty"`
}

func buildEssayPayload(q model.Question) essayPayload {
	payload := essayPayload{
		ID:       q.ID,
		Content:  strings.TrimSpace(q.Content),
		Category: string(q.Category),
		Keywords: []string{},
	}
	if q.Essay == nil {
		return payload
	}

	seen := make(map[string]struct{})
	for _, kw := range q.Essay.Keywords {
		trimmed := strings.TrimSpace(kw)
		if trimmed == "" {
			continue
		}
		dedupKey := strings.ToLower(trimmed)
		if _, dup := seen[dedupKey]; dup {
			continue
		}
		seen[dedupKey] = struct{}{}
		payload.Keywords = append(payload.Keywords, trimmed)
	}

	payload.Group = strings.TrimSpace(q.Essay.Group)
	payload.IsVerified = q.Essay.IsVerified
	payload.Hint = strings.TrimSpace(q.Essay.Hint)
	return payload
}

// examDoc is the exam shape on the wire.
type examDoc struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Type            string    `json:"type"`
	DurationMinutes int       `json:"durationMinutes"`
	Questions       []string  `json:"questions"`
	QuestionCount   int       `json:"questionCount"`
	CreatedAt       Timestamp `json:"createdAt"`
	UpdatedAt       Timestamp `json:"updatedAt"`
}

func (d examDoc) toExam(fallbackCategory model.Category, fallbackType model.QuestionType) model.Exam {
	category := model.Category(d.Category)
	if !category.Valid() {
		category = fallbackCategory
	}
	examType := model.QuestionType(d.Type)
	if !examType.Valid() {
		examType = fallbackType
	}

	questions := d.Questions
	if questions == nil {
		questions = []string{}
	}
	count := d.QuestionCount
	if count == 0 {
		count = len(questions)
	}

	return model.Exam{
		ID:              d.ID,
		Name:            d.Name,
		Category:        category,
		Type:            examType,
		DurationMinutes: d.DurationMinutes,
		Questions:       questions,
		QuestionCount:   count,
		CreatedAt:       d.CreatedAt.Time,
		UpdatedAt:       d.UpdatedAt.Time,
	}
}
