// Package composer implements the exam-assembly workflow: a pool of
// candidate questions, an ordered capped selection of question ids, and
// the type-specific save preconditions for multiple-choice and essay
// exams.
package composer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/gateway"
	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/notify"
)

// API is the slice of the gateway the composer consumes.
type API interface {
	ListQuestions(ctx context.Context, category model.Category) ([]model.Question, []gateway.SourceError)
	ListExams(ctx context.Context, examType model.QuestionType, category model.Category) ([]model.Exam, error)
	CreateExam(ctx context.Context, examType model.QuestionType, payload model.ExamPayload) (model.Exam, error)
	UpdateExam(ctx context.Context, examType model.QuestionType, id string, payload model.ExamPayload) (model.Exam, error)
	DeleteExam(ctx context.Context, examType model.QuestionType, category model.Category, id string) error
}

// Confirmer asks the user to approve a destructive action. The composer
// never wipes a selection or deletes an exam without its consent.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

const defaultDuration = "60"

// Composer owns the exam-building state for one admin session.
// Single-threaded like the rest of the engine.
type Composer struct {
	examType      model.QuestionType
	category      model.Category
	name          string
	durationInput string
	pool          []model.Question
	selectedIDs   []string
	selectedSet   map[string]struct{}
	examList      []model.Exam
	searchTerm    string
	editing       *model.Exam

	// Cooperative per-operation mutexes: an in-flight save, load, or
	// delete blocks a duplicate trigger of the same operation.
	saving           bool
	loadingQuestions bool
	loadingExams     bool
	deletingExamID   string

	// alive suppresses state writes from responses that land after the
	// composer was closed (component unmounted).
	alive bool

	api     API
	notify  notify.Notifier
	confirm Confirmer
	rng     *rand.Rand
	log     zerolog.Logger
}

// New creates a composer starting on multiple-choice / foundational with
// the default duration.
func New(api API, notifier notify.Notifier, confirm Confirmer, rng *rand.Rand, log zerolog.Logger) *Composer {
	return &Composer{
		examType:      model.TypeMultipleChoice,
		category:      model.CategoryFoundational,
		durationInput: defaultDuration,
		pool:          []model.Question{},
		selectedIDs:   []string{},
		selectedSet:   map[string]struct{}{},
		examList:      []model.Exam{},
		alive:         true,
		api:           api,
		notify:        notifier,
		confirm:       confirm,
		rng:           rng,
		log:           log.With().Str("component", "composer").Logger(),
	}
}

// Close marks the composer unmounted: responses still in flight may
// complete but their results are dropped.
func (c *Composer) Close() { c.alive = false }

// ─── Accessors ──────────────────────────────────────────────────────────

func (c *Composer) ExamType() model.QuestionType { return c.examType }
func (c *Composer) Category() model.Category     { return c.category }
func (c *Composer) Name() string                 { return c.name }
func (c *Composer) DurationInput() string        { return c.durationInput }
func (c *Composer) SearchTerm() string           { return c.searchTerm }
func (c *Composer) IsSaving() bool               { return c.saving }
func (c *Composer) IsEditing() bool              { return c.editing != nil }

// Editing returns a copy of the exam being edited, or nil.
func (c *Composer) Editing() *model.Exam {
	if c.editing == nil {
		return nil
	}
	edited := *c.editing
	return &edited
}

// Pool returns the loaded candidate questions.
func (c *Composer) Pool() []model.Question {
	return append([]model.Question(nil), c.pool...)
}

// ExamList returns the loaded exams for the active (type, category) pair.
func (c *Composer) ExamList() []model.Exam {
	return append([]model.Exam(nil), c.examList...)
}

// SelectedIDs returns the ordered selection.
func (c *Composer) SelectedIDs() []string {
	return append([]string(nil), c.selectedIDs...)
}

// SelectedCount returns the selection size.
func (c *Composer) SelectedCount() int { return len(c.selectedIDs) }

// IsSelected reports membership in O(1).
func (c *Composer) IsSelected(id string) bool {
	_, ok := c.selectedSet[id]
	return ok
}

// SelectedQuestions resolves the selection against the pool, preserving
// selection order and skipping ids no longer present.
func (c *Composer) SelectedQuestions() []model.Question {
	byID := make(map[string]model.Question, len(c.pool))
	for _, q := range c.pool {
		byID[q.ID] = q
	}
	selected := make([]model.Question, 0, len(c.selectedIDs))
	for _, id := range c.selectedIDs {
		if q, ok := byID[id]; ok {
			selected = append(selected, q)
		}
	}
	return selected
}

// FilteredPool narrows the pool by the search term using the shared
// diacritic/case/HTML-insensitive normalization.
func (c *Composer) FilteredPool() []model.Question {
	folded := FoldSearchText(c.searchTerm)
	if folded == "" {
		return c.Pool()
	}
	matched := []model.Question{}
	for _, q := range c.pool {
		if strings.Contains(FoldSearchText(q.Content), folded) {
			matched = append(matched, q)
		}
	}
	return matched
}

// ─── Form fields ────────────────────────────────────────────────────────

func (c *Composer) SetName(name string)         { c.name = name }
func (c *Composer) SetDuration(raw string)      { c.durationInput = raw }
func (c *Composer) SetSearchTerm(search string) { c.searchTerm = search }

// SetExamType switches the exam type. The in-progress selection and form
// do not survive the switch; while editing an exam the type is locked,
// since an exam cannot span types.
func (c *Composer) SetExamType(ctx context.Context, next model.QuestionType) {
	if next == c.examType || !next.Valid() {
		return
	}
	if c.editing != nil {
		c.notify.Error(msgLockedWhileEditing)
		return
	}
	c.resetForm()
	c.examType = next
	c.Refresh(ctx)
}

// SetCategory switches the category with the same full-reset semantics
// as SetExamType.
func (c *Composer) SetCategory(ctx context.Context, next model.Category) {
	if next == c.category || !next.Valid() {
		return
	}
	if c.editing != nil {
		c.notify.Error(msgLockedWhileEditing)
		return
	}
	c.resetForm()
	c.category = next
	c.Refresh(ctx)
}

func (c *Composer) resetForm() {
	c.editing = nil
	c.name = ""
	c.durationInput = defaultDuration
	c.selectedIDs = []string{}
	c.selectedSet = map[string]struct{}{}
	c.searchTerm = ""
}

// ─── Loading ────────────────────────────────────────────────────────────

// Refresh reloads both the question pool and the exam list for the
// active (type, category) pair.
func (c *Composer) Refresh(ctx context.Context) {
	c.RefreshQuestionPool(ctx)
	c.RefreshExamList(ctx)
}

// RefreshQuestionPool refetches the candidate questions, keeping only
// the active exam type. Source failures are reported individually; the
// surviving source still fills the pool.
func (c *Composer) RefreshQuestionPool(ctx context.Context) {
	if c.loadingQuestions {
		return
	}
	c.loadingQuestions = true
	defer func() { c.loadingQuestions = false }()

	questions, failures := c.api.ListQuestions(ctx, c.category)
	if !c.alive {
		return
	}
	for _, failure := range failures {
		c.notify.Error(gateway.UserMessage(failure.Err, msgLoadQuestionsFailed))
	}

	filtered := []model.Question{}
	for _, q := range questions {
		if q.Type == c.examType {
			filtered = append(filtered, q)
		}
	}
	c.pool = filtered
}

// RefreshExamList refetches the exams of the active (type, category) pair.
func (c *Composer) RefreshExamList(ctx context.Context) {
	if c.loadingExams {
		return
	}
	c.loadingExams = true
	defer func() { c.loadingExams = false }()

	exams, err := c.api.ListExams(ctx, c.examType, c.category)
	if !c.alive {
		return
	}
	if err != nil {
		c.log.Error().Err(err).Msg("exam list fetch failed")
		c.notify.Error(gateway.UserMessage(err, msgLoadExamsFailed))
		c.examList = []model.Exam{}
		return
	}
	c.examList = exams
}

// ─── Selection ──────────────────────────────────────────────────────────

// ToggleQuestion adds the question to the selection, or removes it when
// already selected. Adding past the cap is rejected with a capacity
// message and no state change.
func (c *Composer) ToggleQuestion(id string) {
	if c.IsSelected(id) {
		c.removeSelected(id)
		return
	}
	if len(c.selectedIDs) >= model.MaxQuestionsPerExam {
		c.notify.Error(msgCapacity)
		return
	}
	c.selectedIDs = append(c.selectedIDs, id)
	c.selectedSet[id] = struct{}{}
}

// RemoveQuestion drops a question from the selection.
func (c *Composer) RemoveQuestion(id string) {
	c.removeSelected(id)
}

func (c *Composer) removeSelected(id string) {
	if !c.IsSelected(id) {
		return
	}
	next := make([]string, 0, len(c.selectedIDs)-1)
	for _, existing := range c.selectedIDs {
		if existing != id {
			next = append(next, existing)
		}
	}
	c.selectedIDs = next
	delete(c.selectedSet, id)
}

// RandomPick fills the selection with a uniformly random draw from the
// currently filtered pool minus already-selected ids, up to
// min(cap, available, remaining capacity).
func (c *Composer) RandomPick() {
	remaining := model.MaxQuestionsPerExam - len(c.selectedIDs)
	if remaining <= 0 {
		c.notify.Info(msgCapacity)
		return
	}

	available := []string{}
	for _, q := range c.FilteredPool() {
		if !c.IsSelected(q.ID) {
			available = append(available, q.ID)
		}
	}
	if len(available) == 0 {
		c.notify.Info(msgNoCandidates)
		return
	}

	// Every permutation of the candidate set is equally likely.
	c.shuffle(available)

	pickCount := len(available)
	if pickCount > remaining {
		pickCount = remaining
	}
	for _, id := range available[:pickCount] {
		c.selectedIDs = append(c.selectedIDs, id)
		c.selectedSet[id] = struct{}{}
	}

	c.notify.Success(fmt.Sprintf(msgRandomPicked, pickCount))
}

func (c *Composer) shuffle(ids []string) {
	swap := func(i, j int) { ids[i], ids[j] = ids[j], ids[i] }
	if c.rng != nil {
		c.rng.Shuffle(len(ids), swap)
	} else {
		rand.Shuffle(len(ids), swap)
	}
}

// ClearAll wipes the selection after explicit confirmation. No-op when
// nothing is selected.
func (c *Composer) ClearAll() {
	if len(c.selectedIDs) == 0 {
		return
	}
	if !c.confirm.Confirm(msgConfirmClearAll) {
		return
	}
	c.selectedIDs = []string{}
	c.selectedSet = map[string]struct{}{}
}
