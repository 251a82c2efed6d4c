// Package state holds the question-authoring state container: the persisted
// question list, the active tab, and the draft currently being composed.
// Transitions are pure functions of (state, action); the Store is the single
// explicit container owned by the composition root.
package state

import "github.com/ccmg/qbank-admin/internal/model"

// TabID identifies one of the admin surfaces.
type TabID string

const (
	TabAddQuestion  TabID = "add-question"
	TabQuestionList TabID = "question-list"
	TabExamBuilder  TabID = "exam-builder"
	TabUsers        TabID = "users"
)

// State is the full reducer state.
type State struct {
	Questions         []model.Question
	ActiveTab         TabID
	EditingQuestionID string
	Draft             model.Question
}

// New returns the initial state: no questions, the authoring tab active,
// and a fresh empty draft.
func New() State {
	return State{
		Questions: []model.Question{},
		ActiveTab: TabAddQuestion,
		Draft:     model.NewEmptyDraft(),
	}
}

// Action is a state transition request. Implementations live in this
// package; anything else dispatched is a no-op.
type Action interface {
	isAction()
}

// SetActiveTab replaces the active tab.
type SetActiveTab struct{ Tab TabID }

// HydrateQuestions replaces the question list wholesale, typically after a
// fetch or with an empty list on logout.
type HydrateQuestions struct{ Questions []model.Question }

// SetDraft replaces the draft wholesale. The form controller pushes every
// field-level change through this.
type SetDraft struct{ Draft model.Question }

// StartEdit loads an existing question into the draft and switches to the
// authoring tab.
type StartEdit struct{ Question model.Question }

// ResetDraft abandons the current draft and leaves edit mode.
type ResetDraft struct{}

// SaveQuestion commits a persisted question into the list: replacing the
// edited entry when editing, appending otherwise.
type SaveQuestion struct{ Question model.Question }

// DeleteQuestion removes a question by id.
type DeleteQuestion struct{ ID string }

func (SetActiveTab) isAction()     {}
func (HydrateQuestions) isAction() {}
func (SetDraft) isAction()         {}
func (StartEdit) isAction()        {}
func (ResetDraft) isAction()       {}
func (SaveQuestion) isAction()     {}
func (DeleteQuestion) isAction()   {}

// Reduce applies a single action and returns the next state. Unknown
// actions return the state unchanged; no transition can fail.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case SetActiveTab:
		s.ActiveTab = a.Tab
		return s

	case HydrateQuestions:
		if a.Questions == nil {
			s.Questions = []model.Question{}
		} else {
			s.Questions = append([]model.Question(nil), a.Questions...)
		}
		return s

	case SetDraft:
		s.Draft = a.Draft
		return s

	case StartEdit:
		draft := a.Question.Clone()
		draft.Normalize()
		s.EditingQuestionID = a.Question.ID
		s.ActiveTab = TabAddQuestion
		s.Draft = draft
		return s

	case ResetDraft:
		s.EditingQuestionID = ""
		s.Draft = model.NewEmptyDraft()
		return s

	case SaveQuestion:
		q := a.Question.Clone()
		if q.ID == "" {
			q.ID = model.NewID("question")
		}
		if !q.Category.Valid() {
			q.Category = model.CategoryFoundational
		}

		if s.EditingQuestionID != "" {
			next := append([]model.Question(nil), s.Questions...)
			for i := range next {
				if next[i].ID == s.EditingQuestionID {
					next[i] = q
				}
			}
			s.Questions = next
		} else {
			s.Questions = append(append([]model.Question(nil), s.Questions...), q)
		}

		s.EditingQuestionID = ""
		s.Draft = model.NewEmptyDraft()
		return s

	case DeleteQuestion:
		remaining := make([]model.Question, 0, len(s.Questions))
		for _, q := range s.Questions {
			if q.ID != a.ID {
				remaining = append(remaining, q)
			}
		}
		s.Questions = remaining

		if s.EditingQuestionID == a.ID {
			s.EditingQuestionID = ""
			s.Draft = model.NewEmptyDraft()
		}
		return s

	default:
		return s
	}
}

// Store owns a State and applies actions sequentially. It is not
// goroutine-safe: the admin runtime is single-threaded event-driven and
// every transition runs to completion before the next.
type Store struct {
	state State
}

// NewStore returns a store holding the initial state.
func NewStore() *Store {
	return &Store{state: New()}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies an action to the current state.
func (s *Store) Dispatch(action Action) {
	s.state = Reduce(s.state, action)
}
