package composer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ccmg/qbank-admin/internal/gateway"
	"github.com/ccmg/qbank-admin/internal/model"
)

// BeginEdit loads an existing exam into the form. Type and category
// follow the exam and stay locked until the edit finishes; if the
// active (type, category) pair changes, the pool and list are reloaded
// so the selection can resolve against the right questions.
func (c *Composer) BeginEdit(ctx context.Context, exam model.Exam) {
	pairChanged := exam.Type != c.examType || exam.Category != c.category

	edited := exam
	c.editing = &edited
	c.examType = exam.Type
	c.category = exam.Category
	c.name = exam.Name
	c.durationInput = strconv.Itoa(exam.DurationMinutes)
	c.searchTerm = ""

	c.selectedIDs = append([]string{}, exam.Questions...)
	c.selectedSet = make(map[string]struct{}, len(exam.Questions))
	for _, id := range exam.Questions {
		c.selectedSet[id] = struct{}{}
	}

	if pairChanged {
		c.Refresh(ctx)
	}
}

// CancelEdit abandons the edit and returns the form to its empty state.
func (c *Composer) CancelEdit() {
	c.resetForm()
}

// DeleteExam removes an exam after explicit confirmation. The list is
// refetched whether or not the delete call succeeded.
func (c *Composer) DeleteExam(ctx context.Context, exam model.Exam) {
	if c.deletingExamID != "" {
		return
	}
	if !c.confirm.Confirm(fmt.Sprintf(msgConfirmDeleteExam, exam.Name)) {
		return
	}

	c.deletingExamID = exam.ID
	defer func() { c.deletingExamID = "" }()

	err := c.api.DeleteExam(ctx, exam.Type, exam.Category, exam.ID)
	if !c.alive {
		return
	}
	if err != nil {
		c.log.Error().Err(err).Str("exam_id", exam.ID).Msg("exam delete failed")
		c.notify.Error(gateway.UserMessage(err, msgDeleteFailed))
	} else {
		c.notify.Success(msgDeleted)
		if c.editing != nil && c.editing.ID == exam.ID {
			c.resetForm()
		}
	}

	// The list is refetched even after a failed delete: the server may
	// have applied the write before the error surfaced.
	c.RefreshExamList(ctx)
}

// Submit validates the form in order (name, duration, cardinality, cap)
// and creates or updates the exam. The first violated precondition stops
// the submit with a notification and no request is sent.
func (c *Composer) Submit(ctx context.Context) {
	if c.saving {
		return
	}

	name := strings.TrimSpace(c.name)
	if utf8.RuneCountInString(name) < model.MinExamNameLength {
		c.notify.Error(msgNameTooShort)
		return
	}
	if utf8.RuneCountInString(name) > model.MaxExamNameLength {
		c.notify.Error(msgNameTooLong)
		return
	}

	duration, err := strconv.Atoi(strings.TrimSpace(c.durationInput))
	if err != nil || duration < model.MinExamDuration || duration > model.MaxExamDuration {
		c.notify.Error(msgDurationRange)
		return
	}

	count := len(c.selectedIDs)
	if c.examType == model.TypeMultipleChoice && count != model.MaxQuestionsPerExam {
		c.notify.Error(msgNeedExactly50)
		return
	}
	if c.examType == model.TypeEssay && count < 1 {
		c.notify.Error(msgNeedAtLeast1)
		return
	}
	if count > model.MaxQuestionsPerExam {
		c.notify.Error(msgCapacity)
		return
	}

	payload := model.ExamPayload{
		Name:            name,
		DurationMinutes: duration,
		Category:        c.category,
		Questions:       append([]string{}, c.selectedIDs...),
	}

	c.saving = true
	defer func() { c.saving = false }()

	if c.editing != nil {
		_, err = c.api.UpdateExam(ctx, c.examType, c.editing.ID, payload)
	} else {
		_, err = c.api.CreateExam(ctx, c.examType, payload)
	}
	if !c.alive {
		return
	}
	if err != nil {
		fallback := msgSaveFailed
		if c.editing != nil {
			fallback = msgUpdateFailed
		}
		c.log.Error().Err(err).Msg("exam save failed")
		c.notify.Error(gateway.UserMessage(err, fallback))
		return
	}

	switch {
	case c.editing != nil:
		c.notify.Success(msgUpdated)
	case c.examType == model.TypeEssay:
		c.notify.Success(msgCreatedEssay)
	default:
		c.notify.Success(msgCreatedMC)
	}

	c.resetForm()
	c.RefreshExamList(ctx)
}
