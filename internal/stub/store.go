// Package stub is an in-memory fixture backend implementing the HTTP
// contract the admin engine's gateway consumes. It exists for local
// development and end-to-end testing; nothing here persists.
package stub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ccmg/qbank-admin/internal/model"
)

// Store holds the fixture data. Handlers run concurrently, so access
// goes through the mutex.
type Store struct {
	mu        sync.RWMutex
	courses   map[string]model.Category
	questions map[string]model.Question
	exams     map[string]model.Exam
	users     map[string]model.User
}

// NewStore builds an empty store serving the given courseID-per-category
// mapping.
func NewStore(courseIDs map[model.Category]string) *Store {
	courses := make(map[string]model.Category, len(courseIDs))
	for category, courseID := range courseIDs {
		if courseID != "" {
			courses[courseID] = category
		}
	}
	return &Store{
		courses:   courses,
		questions: map[string]model.Question{},
		exams:     map[string]model.Exam{},
		users:     map[string]model.User{},
	}
}

// CategoryForCourse resolves a course id from the URL to its category.
func (s *Store) CategoryForCourse(courseID string) (model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.courses[courseID]
	return category, ok
}

// Questions lists the stored questions of one category and type, newest
// first.
func (s *Store) Questions(category model.Category, qtype model.QuestionType) []model.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []model.Question{}
	for _, q := range s.questions {
		if q.Category == category && q.Type == qtype {
			items = append(items, q)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// UpsertQuestion stores q, assigning an id and timestamps when missing.
func (s *Store) UpsertQuestion(q model.Question) model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = model.NewID("question")
		q.CreatedAt = now
	} else if existing, ok := s.questions[q.ID]; ok {
		q.CreatedAt = existing.CreatedAt
	} else if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now

	s.questions[q.ID] = q
	return q
}

// DeleteQuestion removes a question of the given category.
func (s *Store) DeleteQuestion(category model.Category, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[id]
	if !ok || q.Category != category {
		return false
	}
	delete(s.questions, id)
	return true
}

// Exams lists the stored exams of one type and category, newest first.
func (s *Store) Exams(examType model.QuestionType, category model.Category) []model.Exam {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []model.Exam{}
	for _, exam := range s.exams {
		if exam.Type == examType && exam.Category == category {
			items = append(items, exam)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// GetExam fetches one exam by id.
func (s *Store) GetExam(id string) (model.Exam, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exam, ok := s.exams[id]
	return exam, ok
}

// UpsertExam stores an exam, assigning an id and timestamps when missing.
func (s *Store) UpsertExam(exam model.Exam) model.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if exam.ID == "" {
		exam.ID = model.NewID("exam")
		exam.CreatedAt = now
	} else if existing, ok := s.exams[exam.ID]; ok {
		exam.CreatedAt = existing.CreatedAt
	} else if exam.CreatedAt.IsZero() {
		exam.CreatedAt = now
	}
	exam.UpdatedAt = now
	exam.QuestionCount = len(exam.Questions)

	s.exams[exam.ID] = exam
	return exam
}

// DeleteExam removes an exam.
func (s *Store) DeleteExam(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exams[id]; !ok {
		return false
	}
	delete(s.exams, id)
	return true
}

// Users lists the stored users, optionally filtered by a case-insensitive
// substring match on username, email or nickname.
func (s *Store) Users(search string) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	items := []model.User{}
	for _, user := range s.users {
		if needle != "" && !userMatches(user, needle) {
			continue
		}
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UserName < items[j].UserName })
	return items
}

func userMatches(user model.User, needle string) bool {
	for _, field := range []string{user.UserName, user.Email, user.Nickname} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// GetUser fetches one user by id.
func (s *Store) GetUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	return user, ok
}

// UpsertUser stores a user, assigning an id when missing.
func (s *Store) UpsertUser(user model.User) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = model.NewID("user")
	}
	s.users[user.ID] = user
	return user
}

// DeleteUser removes a user.
func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
