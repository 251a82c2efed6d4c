package gateway

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"github.com/ccmg/qbank-admin/internal/model"
)

// SourceError reports the failure of one question source during a fan-in
// listing. Each source fails independently; the other's results still load.
type SourceError struct {
	Source model.QuestionType
	Err    error
}

// ListQuestions fetches the multiple-choice and essay questions of a
// category concurrently and merges them sorted by creation time descending
// (missing timestamps sort as oldest). A failed source is reported in the
// returned errors without discarding the other source's results.
func (c *Client) ListQuestions(ctx context.Context, category model.Category) ([]model.Question, []SourceError) {
	type sourceResult struct {
		source model.QuestionType
		items  []model.Question
		err    error
	}

	results := make(chan sourceResult, 2)
	go func() {
		items, err := c.listMultipleChoice(ctx, category)
		results <- sourceResult{source: model.TypeMultipleChoice, items: items, err: err}
	}()
	go func() {
		items, err := c.listEssays(ctx, category)
		results <- sourceResult{source: model.TypeEssay, items: items, err: err}
	}()

	merged := []model.Question{}
	var failures []SourceError
	for i := 0; i < 2; i++ {
		r := <-results
		if r.err != nil {
			c.log.Error().Err(r.err).
				Str("source", string(r.source)).
				Str("category", string(category)).
				Msg("question source failed")
			failures = append(failures, SourceError{Source: r.source, Err: r.err})
			continue
		}
		merged = append(merged, r.items...)
	}

	SortByNewest(merged)
	return merged, failures
}

// SortByNewest orders questions by creation time descending, keeping the
// incoming order among equal timestamps. Zero timestamps end up last.
func SortByNewest(questions []model.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})
}

func (c *Client) listMultipleChoice(ctx context.Context, category model.Category) ([]model.Question, error) {
	courseID, err := c.courseID(category)
	if err != nil {
		return nil, err
	}

	var docs []mcQuestionDoc
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+url.PathEscape(courseID)+"/questions", nil, &docs); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(docs))
	for _, doc := range docs {
		questions = append(questions, doc.toQuestion(category))
	}
	return questions, nil
}

func (c *Client) listEssays(ctx context.Context, category model.Category) ([]model.Question, error) {
	path := "/api/essays"
	if category != "" {
		path += "?category=" + url.QueryEscape(string(category))
	}

	var docs []essayDoc
	if err := c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(docs))
	for _, doc := range docs {
		questions = append(questions, doc.toQuestion(category))
	}
	return questions, nil
}

// SaveQuestion creates (no id) or updates (id set) a question and returns
// the persisted domain object as the server reports it.
func (c *Client) SaveQuestion(ctx context.Context, q model.Question) (model.Question, error) {
	if q.Type == model.TypeEssay {
		var doc essayDoc
		if err := c.do(ctx, http.MethodPost, "/api/essays", buildEssayPayload(q), &doc); err != nil {
			return model.Question{}, err
		}
		return doc.toQuestion(q.Category), nil
	}

	courseID, err := c.courseID(q.Category)
	if err != nil {
		return model.Question{}, err
	}

	var doc mcQuestionDoc
	path := "/api/courses/" + url.PathEscape(courseID) + "/questions"
	if err := c.do(ctx, http.MethodPost, path, buildMCPayload(q), &doc); err != nil {
		return model.Question{}, err
	}
	return doc.toQuestion(q.Category), nil
}

// DeleteQuestion removes a question from its category's course store.
func (c *Client) DeleteQuestion(ctx context.Context, category model.Category, id string) error {
	courseID, err := c.courseID(category)
	if err != nil {
		return err
	}
	path := "/api/courses/" + url.PathEscape(courseID) + "/questions/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
