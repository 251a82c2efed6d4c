package stub

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/response"
	"github.com/ccmg/qbank-admin/internal/validator"
)

// MCAnswerRequest is one answer row of a multiple-choice save payload.
type MCAnswerRequest struct {
	Label string `json:"label"`
	Text  string `json:"text" binding:"required"`
}

// MCQuestionRequest is the multiple-choice save payload.
type MCQuestionRequest struct {
	ID           string            `json:"id"`
	Content      string            `json:"content" binding:"required,min=5,max=2000"`
	Answers      []MCAnswerRequest `json:"answers" binding:"required,min=2,max=10,dive"`
	CorrectIndex string            `json:"correctIndex"`
	CorrectLabel string            `json:"correctLabel"`
	Explanation  string            `json:"explanation"`
	YoutubeURL   string            `json:"youtubeUrl"`
}

// EssayRequest is the essay save payload.
type EssayRequest struct {
	ID         string   `json:"id"`
	Content    string   `json:"content" binding:"required,min=10,max=2000"`
	Group      string   `json:"group" binding:"required"`
	Category   string   `json:"category" binding:"required,oneof=co-so chuyen-mon"`
	Keywords   []string `json:"keywords" binding:"required,min=1,max=20"`
	IsVerified bool     `json:"isVerified"`
	Hint       string   `json:"hint"`
}

// ListCourseQuestions godoc
// GET /api/courses/:courseId/questions
func (s *Server) ListCourseQuestions(c *gin.Context) {
	category, ok := s.courseCategory(c)
	if !ok {
		return
	}

	docs := []gin.H{}
	for _, q := range s.store.Questions(category, model.TypeMultipleChoice) {
		docs = append(docs, mcDoc(q))
	}
	response.Success(c, http.StatusOK, docs)
}

// SaveCourseQuestion godoc
// POST /api/courses/:courseId/questions
// Creates when no id is supplied, replaces otherwise.
func (s *Server) SaveCourseQuestion(c *gin.Context) {
	category, ok := s.courseCategory(c)
	if !ok {
		return
	}

	var req MCQuestionRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, details)
		return
	}

	correctIndex, err := strconv.Atoi(strings.TrimSpace(req.CorrectIndex))
	if err != nil || correctIndex < 0 || correctIndex >= len(req.Answers) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	options := make([]model.Option, 0, len(req.Answers))
	for i, answer := range req.Answers {
		label := answer.Label
		if label == "" {
			label = model.OptionLabel(i)
		}
		options = append(options, model.Option{
			Label:     label,
			Text:      answer.Text,
			IsCorrect: i == correctIndex,
		})
	}

	saved := s.store.UpsertQuestion(model.Question{
		ID:       req.ID,
		Type:     model.TypeMultipleChoice,
		Content:  req.Content,
		Category: category,
		MultipleChoice: &model.MultipleChoiceDetails{
			Options:        options,
			Explanation:    req.Explanation,
			ExplanationURL: req.YoutubeURL,
		},
	})
	response.Success(c, http.StatusOK, mcDoc(saved))
}

// DeleteCourseQuestion godoc
// DELETE /api/courses/:courseId/questions/:id
func (s *Server) DeleteCourseQuestion(c *gin.Context) {
	category, ok := s.courseCategory(c)
	if !ok {
		return
	}
	if !s.store.DeleteQuestion(category, c.Param("id")) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListEssays godoc
// GET /api/essays?category=
func (s *Server) ListEssays(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if !category.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCategory)
		return
	}

	docs := []gin.H{}
	for _, q := range s.store.Questions(category, model.TypeEssay) {
		docs = append(docs, essayDoc(q))
	}
	response.Success(c, http.StatusOK, docs)
}

// SaveEssay godoc
// POST /api/essays
// Creates when no id is supplied, replaces otherwise.
func (s *Server) SaveEssay(c *gin.Context) {
	var req EssayRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, details)
		return
	}

	saved := s.store.UpsertQuestion(model.Question{
		ID:       req.ID,
		Type:     model.TypeEssay,
		Content:  req.Content,
		Category: model.Category(req.Category),
		Essay: &model.EssayDetails{
			Hint:       req.Hint,
			Group:      req.Group,
			Keywords:   req.Keywords,
			IsVerified: req.IsVerified,
		},
	})
	response.Success(c, http.StatusOK, essayDoc(saved))
}
