package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ccmg/qbank-admin/internal/model"
)

// ListExams fetches the exams of one (type, category) pair.
func (c *Client) ListExams(ctx context.Context, examType model.QuestionType, category model.Category) ([]model.Exam, error) {
	var path string
	if examType == model.TypeEssay {
		path = "/api/essay-exams?category=" + url.QueryEscape(string(category))
	} else {
		courseID, err := c.courseID(category)
		if err != nil {
			return nil, err
		}
		path = "/api/courses/" + url.PathEscape(courseID) + "/exams?category=" + url.QueryEscape(string(category))
	}

	var docs []examDoc
	if err := c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}

	exams := make([]model.Exam, 0, len(docs))
	for _, doc := range docs {
		exams = append(exams, doc.toExam(category, examType))
	}
	return exams, nil
}

// CreateExam persists a new exam and returns the stored record.
func (c *Client) CreateExam(ctx context.Context, examType model.QuestionType, payload model.ExamPayload) (model.Exam, error) {
	var path string
	if examType == model.TypeEssay {
		path = "/api/essay-exams"
	} else {
		courseID, err := c.courseID(payload.Category)
		if err != nil {
			return model.Exam{}, err
		}
		path = "/api/courses/" + url.PathEscape(courseID) + "/exams"
	}

	var doc examDoc
	if err := c.do(ctx, http.MethodPost, path, payload, &doc); err != nil {
		return model.Exam{}, err
	}
	return doc.toExam(payload.Category, examType), nil
}

// UpdateExam replaces an existing exam's fields and question set.
func (c *Client) UpdateExam(ctx context.Context, examType model.QuestionType, id string, payload model.ExamPayload) (model.Exam, error) {
	var path string
	if examType == model.TypeEssay {
		path = "/api/essay-exams/" + url.PathEscape(string(payload.Category)) + "/" + url.PathEscape(id)
	} else {
		courseID, err := c.courseID(payload.Category)
		if err != nil {
			return model.Exam{}, err
		}
		path = "/api/courses/" + url.PathEscape(courseID) + "/exams/" + url.PathEscape(id)
	}

	var doc examDoc
	if err := c.do(ctx, http.MethodPut, path, payload, &doc); err != nil {
		return model.Exam{}, err
	}
	return doc.toExam(payload.Category, examType), nil
}

// DeleteExam removes an exam.
func (c *Client) DeleteExam(ctx context.Context, examType model.QuestionType, category model.Category, id string) error {
	var path string
	if examType == model.TypeEssay {
		path = "/api/essay-exams/" + url.PathEscape(string(category)) + "/" + url.PathEscape(id)
	} else {
		courseID, err := c.courseID(category)
		if err != nil {
			return err
		}
		path = "/api/courses/" + url.PathEscape(courseID) + "/exams/" + url.PathEscape(id)
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
