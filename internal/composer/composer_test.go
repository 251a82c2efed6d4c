package composer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/gateway"
	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/notify"
)

type fakeAPI struct {
	questions  []model.Question
	sourceErrs []gateway.SourceError
	exams      []model.Exam
	examsErr   error

	created   []model.ExamPayload
	updated   map[string]model.ExamPayload
	deleted   []string
	saveErr   error
	deleteErr error

	listExamCalls int
}

func (f *fakeAPI) ListQuestions(ctx context.Context, category model.Category) ([]model.Question, []gateway.SourceError) {
	return f.questions, f.sourceErrs
}

func (f *fakeAPI) ListExams(ctx context.Context, examType model.QuestionType, category model.Category) ([]model.Exam, error) {
	f.listExamCalls++
	return f.exams, f.examsErr
}

func (f *fakeAPI) CreateExam(ctx context.Context, examType model.QuestionType, payload model.ExamPayload) (model.Exam, error) {
	if f.saveErr != nil {
		return model.Exam{}, f.saveErr
	}
	f.created = append(f.created, payload)
	return model.Exam{ID: "exam-1", Name: payload.Name, Type: examType, Category: payload.Category}, nil
}

func (f *fakeAPI) UpdateExam(ctx context.Context, examType model.QuestionType, id string, payload model.ExamPayload) (model.Exam, error) {
	if f.saveErr != nil {
		return model.Exam{}, f.saveErr
	}
	if f.updated == nil {
		f.updated = map[string]model.ExamPayload{}
	}
	f.updated[id] = payload
	return model.Exam{ID: id, Name: payload.Name, Type: examType, Category: payload.Category}, nil
}

func (f *fakeAPI) DeleteExam(ctx context.Context, examType model.QuestionType, category model.Category, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func mcPool(n int) []model.Question {
	questions := make([]model.Question, 0, n)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		questions = append(questions, model.Question{
			ID:        fmt.Sprintf("q%03d", i),
			Type:      model.TypeMultipleChoice,
			Content:   fmt.Sprintf("<p>Câu hỏi số %d</p>", i),
			Category:  model.CategoryFoundational,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return questions
}

func newTestComposer(api *fakeAPI, recorder *notify.Recorder, confirm bool) *Composer {
	return New(api, recorder, ConfirmFunc(func(string) bool { return confirm }),
		rand.New(rand.NewSource(1)), zerolog.Nop())
}

func TestNewDefaults(t *testing.T) {
	c := newTestComposer(&fakeAPI{}, &notify.Recorder{}, true)

	if c.ExamType() != model.TypeMultipleChoice {
		t.Fatalf("ExamType = %q, want multiple-choice", c.ExamType())
	}
	if c.Category() != model.CategoryFoundational {
		t.Fatalf("Category = %q, want %q", c.Category(), model.CategoryFoundational)
	}
	if c.DurationInput() != "60" {
		t.Fatalf("DurationInput = %q, want the default", c.DurationInput())
	}
}

func TestToggleQuestionCap(t *testing.T) {
	recorder := &notify.Recorder{}
	c := newTestComposer(&fakeAPI{}, recorder, true)

	for i := 0; i < model.MaxQuestionsPerExam; i++ {
		c.ToggleQuestion(fmt.Sprintf("q%03d", i))
	}
	if c.SelectedCount() != model.MaxQuestionsPerExam {
		t.Fatalf("SelectedCount = %d, want %d", c.SelectedCount(), model.MaxQuestionsPerExam)
	}

	c.ToggleQuestion("q-extra")
	if c.SelectedCount() != model.MaxQuestionsPerExam {
		t.Fatal("toggling past the cap must not change the selection")
	}
	if c.IsSelected("q-extra") {
		t.Fatal("the rejected question must not be selected")
	}
	if got := recorder.ByKind("error"); len(got) != 1 || got[0] != msgCapacity {
		t.Fatalf("errors = %#v, want the capacity message", got)
	}

	// Toggling an already-selected id removes it again.
	c.ToggleQuestion("q000")
	if c.IsSelected("q000") {
		t.Fatal("second toggle must deselect")
	}
}

func TestToggleKeepsSelectionOrder(t *testing.T) {
	c := newTestComposer(&fakeAPI{}, &notify.Recorder{}, true)

	c.ToggleQuestion("b")
	c.ToggleQuestion("a")
	c.ToggleQuestion("c")
	c.ToggleQuestion("a")

	got := c.SelectedIDs()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("SelectedIDs = %#v, want [b c]", got)
	}
}

func TestRandomPickFillsToCap(t *testing.T) {
	api := &fakeAPI{questions: mcPool(60)}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)
	c.RefreshQuestionPool(context.Background())

	c.RandomPick()

	if c.SelectedCount() != model.MaxQuestionsPerExam {
		t.Fatalf("SelectedCount = %d, want the full cap", c.SelectedCount())
	}
	seen := map[string]bool{}
	poolIDs := map[string]bool{}
	for _, q := range c.Pool() {
		poolIDs[q.ID] = true
	}
	for _, id := range c.SelectedIDs() {
		if seen[id] {
			t.Fatalf("id %q picked twice", id)
		}
		seen[id] = true
		if !poolIDs[id] {
			t.Fatalf("id %q is not in the pool", id)
		}
	}
	if got := recorder.ByKind("success"); len(got) != 1 || got[0] != fmt.Sprintf(msgRandomPicked, 50) {
		t.Fatalf("success = %#v, want the picked-count message", got)
	}
}

func TestRandomPickSkipsSelected(t *testing.T) {
	api := &fakeAPI{questions: mcPool(10)}
	c := newTestComposer(api, &notify.Recorder{}, true)
	c.RefreshQuestionPool(context.Background())

	c.ToggleQuestion("q003")
	c.RandomPick()

	if c.SelectedCount() != 10 {
		t.Fatalf("SelectedCount = %d, want the whole pool", c.SelectedCount())
	}
}

func TestRandomPickWithNoCandidates(t *testing.T) {
	api := &fakeAPI{questions: mcPool(3)}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)
	c.RefreshQuestionPool(context.Background())

	c.RandomPick()
	c.RandomPick()

	if got := recorder.ByKind("info"); len(got) != 1 || got[0] != msgNoCandidates {
		t.Fatalf("info = %#v, want the no-candidates message", got)
	}
}

func TestRandomPickHonorsSearchFilter(t *testing.T) {
	pool := mcPool(5)
	pool[2].Content = "<p>Nội dung riêng biệt</p>"
	api := &fakeAPI{questions: pool}
	c := newTestComposer(api, &notify.Recorder{}, true)
	c.RefreshQuestionPool(context.Background())

	c.SetSearchTerm("riêng biệt")
	c.RandomPick()

	if got := c.SelectedIDs(); len(got) != 1 || got[0] != "q002" {
		t.Fatalf("SelectedIDs = %#v, want only the matching question", got)
	}
}

func TestClearAllIsConfirmGated(t *testing.T) {
	c := newTestComposer(&fakeAPI{}, &notify.Recorder{}, false)
	c.ToggleQuestion("q1")

	c.ClearAll()
	if c.SelectedCount() != 1 {
		t.Fatal("a declined confirmation must keep the selection")
	}

	confirmed := newTestComposer(&fakeAPI{}, &notify.Recorder{}, true)
	confirmed.ToggleQuestion("q1")
	confirmed.ClearAll()
	if confirmed.SelectedCount() != 0 {
		t.Fatal("a confirmed clear must wipe the selection")
	}
}

func TestSetExamTypeLockedWhileEditing(t *testing.T) {
	recorder := &notify.Recorder{}
	c := newTestComposer(&fakeAPI{}, recorder, true)

	c.BeginEdit(context.Background(), model.Exam{
		ID:              "exam-1",
		Name:            "Đề giữa kỳ",
		Type:            model.TypeMultipleChoice,
		Category:        model.CategoryFoundational,
		DurationMinutes: 90,
		Questions:       []string{"q1", "q2"},
	})

	c.SetExamType(context.Background(), model.TypeEssay)
	if c.ExamType() != model.TypeMultipleChoice {
		t.Fatal("exam type must stay locked while editing")
	}
	c.SetCategory(context.Background(), model.CategorySpecialized)
	if c.Category() != model.CategoryFoundational {
		t.Fatal("category must stay locked while editing")
	}
	if got := recorder.ByKind("error"); len(got) != 2 {
		t.Fatalf("errors = %#v, want one per rejected switch", got)
	}
}

func TestSetExamTypeResetsAndRefetches(t *testing.T) {
	api := &fakeAPI{}
	c := newTestComposer(api, &notify.Recorder{}, true)
	c.ToggleQuestion("q1")
	c.SetName("Đề thi thử")

	c.SetExamType(context.Background(), model.TypeEssay)

	if c.ExamType() != model.TypeEssay {
		t.Fatalf("ExamType = %q, want essay", c.ExamType())
	}
	if c.SelectedCount() != 0 || c.Name() != "" || c.DurationInput() != "60" {
		t.Fatal("switching type must reset the form")
	}
	if api.listExamCalls != 1 {
		t.Fatalf("listExamCalls = %d, want a refetch", api.listExamCalls)
	}
}

func TestBeginEditLoadsExam(t *testing.T) {
	api := &fakeAPI{}
	c := newTestComposer(api, &notify.Recorder{}, true)

	c.BeginEdit(context.Background(), model.Exam{
		ID:              "exam-7",
		Name:            "Đề cuối kỳ",
		Type:            model.TypeEssay,
		Category:        model.CategorySpecialized,
		DurationMinutes: 120,
		Questions:       []string{"q1", "q2", "q3"},
	})

	if !c.IsEditing() {
		t.Fatal("composer must be in edit mode")
	}
	if c.Name() != "Đề cuối kỳ" || c.DurationInput() != "120" {
		t.Fatalf("form = (%q, %q), want the exam's fields", c.Name(), c.DurationInput())
	}
	if c.ExamType() != model.TypeEssay || c.Category() != model.CategorySpecialized {
		t.Fatal("type and category must follow the exam")
	}
	if got := c.SelectedIDs(); len(got) != 3 || got[0] != "q1" {
		t.Fatalf("SelectedIDs = %#v, want the exam's questions in order", got)
	}
	if api.listExamCalls != 1 {
		t.Fatal("a changed (type, category) pair must refetch")
	}

	c.CancelEdit()
	if c.IsEditing() || c.SelectedCount() != 0 {
		t.Fatal("cancel must reset the form")
	}
}

func TestSubmitValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(c *Composer)
		want    string
	}{
		{
			name:    "name too short",
			prepare: func(c *Composer) { c.SetName("ab") },
			want:    msgNameTooShort,
		},
		{
			name: "name too long",
			prepare: func(c *Composer) {
				long := make([]rune, model.MaxExamNameLength+1)
				for i := range long {
					long[i] = 'đ'
				}
				c.SetName(string(long))
			},
			want: msgNameTooLong,
		},
		{
			name: "duration not a number",
			prepare: func(c *Composer) {
				c.SetName("Đề thi thử")
				c.SetDuration("chín mươi")
			},
			want: msgDurationRange,
		},
		{
			name: "duration out of range",
			prepare: func(c *Composer) {
				c.SetName("Đề thi thử")
				c.SetDuration("1441")
			},
			want: msgDurationRange,
		},
		{
			name: "multiple choice below fifty",
			prepare: func(c *Composer) {
				c.SetName("Đề thi thử")
				for i := 0; i < model.MaxQuestionsPerExam-1; i++ {
					c.ToggleQuestion(fmt.Sprintf("q%03d", i))
				}
			},
			want: msgNeedExactly50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			recorder := &notify.Recorder{}
			c := newTestComposer(api, recorder, true)
			tt.prepare(c)

			c.Submit(context.Background())

			if len(api.created) != 0 {
				t.Fatal("no request may go out while a precondition fails")
			}
			got := recorder.ByKind("error")
			if len(got) == 0 || got[len(got)-1] != tt.want {
				t.Fatalf("errors = %#v, want %q last", got, tt.want)
			}
		})
	}
}

func TestSubmitEssayNeedsAtLeastOneQuestion(t *testing.T) {
	api := &fakeAPI{}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)
	c.SetExamType(context.Background(), model.TypeEssay)
	c.SetName("Đề tự luận")

	c.Submit(context.Background())

	if got := recorder.ByKind("error"); len(got) != 1 || got[0] != msgNeedAtLeast1 {
		t.Fatalf("errors = %#v, want the at-least-one message", got)
	}

	c.ToggleQuestion("q1")
	c.Submit(context.Background())

	if len(api.created) != 1 {
		t.Fatalf("created = %d exams, want 1", len(api.created))
	}
	if got := recorder.ByKind("success"); len(got) != 1 || got[0] != msgCreatedEssay {
		t.Fatalf("success = %#v, want the essay creation message", got)
	}
}

func TestSubmitCreateMultipleChoice(t *testing.T) {
	api := &fakeAPI{}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)
	c.SetName("  Đề thi thử  ")
	c.SetDuration("90")
	for i := 0; i < model.MaxQuestionsPerExam; i++ {
		c.ToggleQuestion(fmt.Sprintf("q%03d", i))
	}

	c.Submit(context.Background())

	if len(api.created) != 1 {
		t.Fatalf("created = %d exams, want 1", len(api.created))
	}
	payload := api.created[0]
	if payload.Name != "Đề thi thử" {
		t.Fatalf("payload name = %q, want trimmed", payload.Name)
	}
	if payload.DurationMinutes != 90 || len(payload.Questions) != model.MaxQuestionsPerExam {
		t.Fatalf("payload = %+v, want 90 minutes and a full set", payload)
	}
	if got := recorder.ByKind("success"); len(got) != 1 || got[0] != msgCreatedMC {
		t.Fatalf("success = %#v, want the multiple-choice creation message", got)
	}
	if c.SelectedCount() != 0 || c.Name() != "" {
		t.Fatal("a successful submit must reset the form")
	}
	if api.listExamCalls != 1 {
		t.Fatal("a successful submit must refetch the exam list")
	}
}

func TestSubmitUpdateWhileEditing(t *testing.T) {
	api := &fakeAPI{}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)
	c.BeginEdit(context.Background(), model.Exam{
		ID:              "exam-9",
		Name:            "Đề tự luận cũ",
		Type:            model.TypeEssay,
		Category:        model.CategoryFoundational,
		DurationMinutes: 45,
		Questions:       []string{"q1"},
	})
	c.SetName("Đề tự luận mới")

	c.Submit(context.Background())

	if _, ok := api.updated["exam-9"]; !ok {
		t.Fatalf("updated = %#v, want exam-9", api.updated)
	}
	if got := recorder.ByKind("success"); len(got) != 1 || got[0] != msgUpdated {
		t.Fatalf("success = %#v, want the update message", got)
	}
	if c.IsEditing() {
		t.Fatal("a successful update must leave edit mode")
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	api := &fakeAPI{saveErr: errors.New("boom")}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)
	c.SetName("Đề tự luận")
	c.SetExamType(context.Background(), model.TypeEssay)
	c.SetName("Đề tự luận")
	c.ToggleQuestion("q1")

	c.Submit(context.Background())

	if got := recorder.ByKind("error"); len(got) != 1 || got[0] != msgSaveFailed {
		t.Fatalf("errors = %#v, want the save fallback", got)
	}
	if c.Name() != "Đề tự luận" || c.SelectedCount() != 1 {
		t.Fatal("a failed submit must keep the form intact")
	}
}

func TestDeleteExam(t *testing.T) {
	api := &fakeAPI{}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)

	c.DeleteExam(context.Background(), model.Exam{ID: "exam-3", Name: "Đề cũ", Type: model.TypeMultipleChoice, Category: model.CategoryFoundational})

	if len(api.deleted) != 1 || api.deleted[0] != "exam-3" {
		t.Fatalf("deleted = %#v, want exam-3", api.deleted)
	}
	if got := recorder.ByKind("success"); len(got) != 1 || got[0] != msgDeleted {
		t.Fatalf("success = %#v, want the delete message", got)
	}
	if api.listExamCalls != 1 {
		t.Fatal("a successful delete must refetch the list")
	}
}

func TestDeleteExamDeclined(t *testing.T) {
	api := &fakeAPI{}
	c := newTestComposer(api, &notify.Recorder{}, false)

	c.DeleteExam(context.Background(), model.Exam{ID: "exam-3", Type: model.TypeMultipleChoice})

	if len(api.deleted) != 0 || api.listExamCalls != 0 {
		t.Fatal("a declined confirmation must not touch the API")
	}
}

func TestDeleteExamFailureStillRefetches(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("boom")}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)

	c.DeleteExam(context.Background(), model.Exam{ID: "exam-3", Type: model.TypeMultipleChoice})

	if api.listExamCalls != 1 {
		t.Fatalf("listExamCalls = %d, want a refetch even after a failed delete", api.listExamCalls)
	}
	if got := recorder.ByKind("error"); len(got) != 1 || got[0] != msgDeleteFailed {
		t.Fatalf("errors = %#v, want the delete fallback", got)
	}
}

func TestRefreshQuestionPoolReportsSourceFailures(t *testing.T) {
	api := &fakeAPI{
		questions:  mcPool(2),
		sourceErrs: []gateway.SourceError{{Source: model.TypeEssay, Err: errors.New("essays down")}},
	}
	recorder := &notify.Recorder{}
	c := newTestComposer(api, recorder, true)

	c.RefreshQuestionPool(context.Background())

	if len(c.Pool()) != 2 {
		t.Fatalf("pool = %d questions, want the surviving source's results", len(c.Pool()))
	}
	if got := recorder.ByKind("error"); len(got) != 1 || got[0] != msgLoadQuestionsFailed {
		t.Fatalf("errors = %#v, want the load fallback per failure", got)
	}
}

func TestRefreshQuestionPoolFiltersByExamType(t *testing.T) {
	pool := mcPool(3)
	pool = append(pool, model.Question{ID: "e1", Type: model.TypeEssay, Category: model.CategoryFoundational})
	api := &fakeAPI{questions: pool}
	c := newTestComposer(api, &notify.Recorder{}, true)

	c.RefreshQuestionPool(context.Background())

	for _, q := range c.Pool() {
		if q.Type != model.TypeMultipleChoice {
			t.Fatalf("pool contains %q of type %q", q.ID, q.Type)
		}
	}
	if len(c.Pool()) != 3 {
		t.Fatalf("pool = %d questions, want 3", len(c.Pool()))
	}
}

func TestRefreshExamListFailureEmptiesList(t *testing.T) {
	api := &fakeAPI{exams: []model.Exam{{ID: "exam-1"}}}
	c := newTestComposer(api, &notify.Recorder{}, true)
	c.RefreshExamList(context.Background())
	if len(c.ExamList()) != 1 {
		t.Fatalf("ExamList = %d, want 1", len(c.ExamList()))
	}

	api.examsErr = errors.New("boom")
	c.RefreshExamList(context.Background())
	if len(c.ExamList()) != 0 {
		t.Fatal("a failed fetch must empty the stale list")
	}
}

func TestClosedComposerDropsLateResults(t *testing.T) {
	api := &fakeAPI{questions: mcPool(4)}
	c := newTestComposer(api, &notify.Recorder{}, true)

	c.Close()
	c.RefreshQuestionPool(context.Background())

	if len(c.Pool()) != 0 {
		t.Fatal("a closed composer must not absorb results")
	}
}
