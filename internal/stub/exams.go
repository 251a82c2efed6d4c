package stub

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/response"
	"github.com/ccmg/qbank-admin/internal/validator"
)

// ExamRequest is the create/update payload for both exam kinds.
type ExamRequest struct {
	Name            string   `json:"name" binding:"required,min=3,max=120"`
	DurationMinutes int      `json:"durationMinutes" binding:"required,min=1,max=1440"`
	Category        string   `json:"category" binding:"required,oneof=co-so chuyen-mon"`
	Questions       []string `json:"questions" binding:"required"`
}

func (s *Server) bindExam(c *gin.Context) (ExamRequest, bool) {
	var req ExamRequest
	if details := validator.Bind(c, &req); details != nil {
		response.FailWithDetails(c, http.StatusBadRequest, response.ErrValidation, details)
		return ExamRequest{}, false
	}
	return req, true
}

// checkCardinality enforces the per-type question-set size rules.
func checkCardinality(c *gin.Context, examType model.QuestionType, count int) bool {
	if count > model.MaxQuestionsPerExam {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrQuestionSetTooBig)
		return false
	}
	if examType == model.TypeMultipleChoice && count != model.MaxQuestionsPerExam {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrExamCardinality)
		return false
	}
	if examType == model.TypeEssay && count < 1 {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrExamCardinality)
		return false
	}
	return true
}

func (s *Server) saveExam(c *gin.Context, examType model.QuestionType, category model.Category, id string, req ExamRequest) {
	if !checkCardinality(c, examType, len(req.Questions)) {
		return
	}

	if id != "" {
		existing, ok := s.store.GetExam(id)
		if !ok || existing.Type != examType {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
	}

	saved := s.store.UpsertExam(model.Exam{
		ID:              id,
		Name:            req.Name,
		Category:        category,
		Type:            examType,
		DurationMinutes: req.DurationMinutes,
		Questions:       req.Questions,
	})
	response.Success(c, http.StatusOK, examDoc(saved))
}

// ListCourseExams godoc
// GET /api/courses/:courseId/exams
func (s *Server) ListCourseExams(c *gin.Context) {
	category, ok := s.courseCategory(c)
	if !ok {
		return
	}

	docs := []gin.H{}
	for _, exam := range s.store.Exams(model.TypeMultipleChoice, category) {
		docs = append(docs, examDoc(exam))
	}
	response.Success(c, http.StatusOK, docs)
}

// CreateCourseExam godoc
// POST /api/courses/:courseId/exams
func (s *Server) CreateCourseExam(c *gin.Context) {
	category, ok := s.courseCategory(c)
	if !ok {
		return
	}
	req, ok := s.bindExam(c)
	if !ok {
		return
	}
	s.saveExam(c, model.TypeMultipleChoice, category, "", req)
}

// UpdateCourseExam godoc
// PUT /api/courses/:courseId/exams/:id
func (s *Server) UpdateCourseExam(c *gin.Context) {
	category, ok := s.courseCategory(c)
	if !ok {
		return
	}
	req, ok := s.bindExam(c)
	if !ok {
		return
	}
	s.saveExam(c, model.TypeMultipleChoice, category, c.Param("id"), req)
}

// DeleteCourseExam godoc
// DELETE /api/courses/:courseId/exams/:id
func (s *Server) DeleteCourseExam(c *gin.Context) {
	if _, ok := s.courseCategory(c); !ok {
		return
	}
	if !s.store.DeleteExam(c.Param("id")) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListEssayExams godoc
// GET /api/essay-exams?category=
func (s *Server) ListEssayExams(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if !category.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCategory)
		return
	}

	docs := []gin.H{}
	for _, exam := range s.store.Exams(model.TypeEssay, category) {
		docs = append(docs, examDoc(exam))
	}
	response.Success(c, http.StatusOK, docs)
}

// CreateEssayExam godoc
// POST /api/essay-exams
// Category rides in the payload for essay exams.
func (s *Server) CreateEssayExam(c *gin.Context) {
	req, ok := s.bindExam(c)
	if !ok {
		return
	}
	s.saveExam(c, model.TypeEssay, model.Category(req.Category), "", req)
}

// UpdateEssayExam godoc
// PUT /api/essay-exams/:category/:id
func (s *Server) UpdateEssayExam(c *gin.Context) {
	category := model.Category(c.Param("category"))
	if !category.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCategory)
		return
	}
	req, ok := s.bindExam(c)
	if !ok {
		return
	}
	s.saveExam(c, model.TypeEssay, category, c.Param("id"), req)
}

// DeleteEssayExam godoc
// DELETE /api/essay-exams/:category/:id
func (s *Server) DeleteEssayExam(c *gin.Context) {
	category := model.Category(c.Param("category"))
	if !category.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCategory)
		return
	}
	if !s.store.DeleteExam(c.Param("id")) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
