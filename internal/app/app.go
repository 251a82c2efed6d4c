// Package app wires the engine together: the API gateway, the session
// store, the question-bank state store, the draft form controller and
// the exam composer, plus the cross-cutting flows (login, hydration,
// save, delete) that span them.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/composer"
	"github.com/ccmg/qbank-admin/internal/config"
	"github.com/ccmg/qbank-admin/internal/form"
	"github.com/ccmg/qbank-admin/internal/gateway"
	"github.com/ccmg/qbank-admin/internal/model"
	"github.com/ccmg/qbank-admin/internal/notify"
	"github.com/ccmg/qbank-admin/internal/session"
	"github.com/ccmg/qbank-admin/internal/state"
)

// App is the admin engine's composition root. Like the stores it owns
// it is single-threaded: callers drive it from one goroutine.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	api      *gateway.Client
	sessions *session.Store
	store    *state.Store
	form     *form.Controller
	composer *composer.Composer
	notify   notify.Notifier
	confirm  composer.Confirmer

	searchTerm string

	// Cooperative busy flags: a re-trigger of an in-flight flow is
	// ignored instead of racing it.
	hydrating  bool
	loggingIn  bool
	saving     bool
	deletingID string

	alive bool
}

// New builds the engine from configuration. The session store is loaded
// eagerly, so IsAuthenticated is meaningful immediately after New.
func New(cfg *config.Config, log zerolog.Logger, notifier notify.Notifier, confirm composer.Confirmer) *App {
	sessions := session.NewStore(cfg.SessionFile, log)
	api := gateway.New(cfg.APIBaseURL, cfg.CourseIDs, sessions, log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	a := &App{
		cfg:      cfg,
		log:      log.With().Str("component", "app").Logger(),
		api:      api,
		sessions: sessions,
		store:    state.NewStore(),
		composer: composer.New(api, notifier, confirm, rng, log),
		notify:   notifier,
		confirm:  confirm,
		alive:    true,
	}
	a.form = form.New(a.store.State().Draft, false, a.pushDraft)
	return a
}

// Close marks the engine shut down; late responses no longer mutate state.
func (a *App) Close() {
	a.alive = false
	a.composer.Close()
}

func (a *App) pushDraft(draft model.Question) {
	a.store.Dispatch(state.SetDraft{Draft: draft})
}

// State returns the current question-bank state snapshot.
func (a *App) State() state.State { return a.store.State() }

// Form returns the draft form controller.
func (a *App) Form() *form.Controller { return a.form }

// Composer returns the exam composer.
func (a *App) Composer() *composer.Composer { return a.composer }

// Gateway exposes the API client for auxiliary surfaces (user admin,
// exports).
func (a *App) Gateway() *gateway.Client { return a.api }

// Session returns the persisted session snapshot.
func (a *App) Session() session.Session { return a.sessions.Current() }

// IsAuthenticated reports whether a usable token is on file.
func (a *App) IsAuthenticated() bool { return a.sessions.IsAuthenticated() }

// SearchTerm returns the question-list filter text.
func (a *App) SearchTerm() string { return a.searchTerm }

// SetSearchTerm updates the question-list filter text.
func (a *App) SetSearchTerm(term string) { a.searchTerm = term }

// SetActiveTab switches the main navigation tab.
func (a *App) SetActiveTab(tab state.TabID) {
	a.store.Dispatch(state.SetActiveTab{Tab: tab})
}

// FilteredQuestions narrows the hydrated bank by the search term,
// matching diacritic- and case-insensitively on stripped content.
func (a *App) FilteredQuestions() []model.Question {
	questions := a.store.State().Questions
	folded := composer.FoldSearchText(a.searchTerm)
	if folded == "" {
		return append([]model.Question(nil), questions...)
	}
	matched := []model.Question{}
	for _, q := range questions {
		if strings.Contains(composer.FoldSearchText(q.Content), folded) {
			matched = append(matched, q)
		}
	}
	return matched
}

// ─── Auth ───────────────────────────────────────────────────────────────

// Login authenticates against the backend and persists the session.
// On success the question bank is hydrated right away.
func (a *App) Login(ctx context.Context, username, password string) error {
	if a.loggingIn {
		return nil
	}
	a.loggingIn = true
	defer func() { a.loggingIn = false }()

	result, err := a.api.Login(ctx, username, password)
	if !a.alive {
		return err
	}
	if err != nil {
		a.log.Warn().Err(err).Str("username", username).Msg("login failed")
		a.notify.Error(gateway.UserMessage(err, msgLoginFailed))
		return err
	}

	user := result.User
	if err := a.sessions.Save(session.Session{Token: result.Token, User: &user}); err != nil {
		a.log.Error().Err(err).Msg("session persist failed")
	}
	a.Hydrate(ctx)
	return nil
}

// Logout clears the persisted session and tears the in-memory state
// down to its initial shape.
func (a *App) Logout() {
	if err := a.sessions.Clear(); err != nil {
		a.log.Error().Err(err).Msg("session clear failed")
	}
	a.store.Dispatch(state.HydrateQuestions{Questions: nil})
	a.store.Dispatch(state.ResetDraft{})
	a.form.Rebind(a.store.State().Draft, false)
	a.searchTerm = ""
}

// ─── Question bank ──────────────────────────────────────────────────────

// Hydrate loads the full question bank across both categories. A failed
// source is reported and skipped; the surviving sources still hydrate,
// sorted newest first.
func (a *App) Hydrate(ctx context.Context) {
	if a.hydrating {
		return
	}
	a.hydrating = true
	defer func() { a.hydrating = false }()

	merged := []model.Question{}
	for _, category := range []model.Category{model.CategoryFoundational, model.CategorySpecialized} {
		questions, failures := a.api.ListQuestions(ctx, category)
		if !a.alive {
			return
		}
		for _, failure := range failures {
			a.log.Warn().Err(failure.Err).Str("source", string(failure.Source)).Msg("question source failed")
			a.notify.Error(gateway.UserMessage(failure.Err, msgLoadQuestionsFailed))
		}
		merged = append(merged, questions...)
	}

	gateway.SortByNewest(merged)
	a.store.Dispatch(state.HydrateQuestions{Questions: merged})
}

// RefreshQuestions re-hydrates on explicit user request and confirms
// with a toast.
func (a *App) RefreshQuestions(ctx context.Context) {
	a.Hydrate(ctx)
	if !a.alive {
		return
	}
	a.notify.Success(msgRefreshed)
}

// SaveDraft submits the form. Validation and payload normalization live
// in the form controller; on success the bank is updated in place and
// refetched so server-assigned fields come back.
func (a *App) SaveDraft(ctx context.Context) {
	if a.saving {
		return
	}
	a.saving = true
	defer func() { a.saving = false }()

	wasEditing := a.form.IsEditing()
	saved, err := a.form.Submit(ctx, a.api.SaveQuestion)
	if !a.alive || err != nil {
		return
	}

	a.store.Dispatch(state.SaveQuestion{Question: saved})
	a.form.Rebind(a.store.State().Draft, false)
	if wasEditing {
		a.notify.Success(msgQuestionUpdated)
	} else {
		a.notify.Success(msgQuestionSaved)
	}
	a.Hydrate(ctx)
}

// StartEdit loads a question from the bank into the form and switches
// to the editing tab.
func (a *App) StartEdit(q model.Question) {
	a.store.Dispatch(state.StartEdit{Question: q})
	a.form.Rebind(q, true)
	a.store.Dispatch(state.SetActiveTab{Tab: state.TabAddQuestion})
}

// CancelEdit abandons the edit and resets the form to an empty draft.
func (a *App) CancelEdit() {
	a.store.Dispatch(state.ResetDraft{})
	a.form.Rebind(a.store.State().Draft, false)
}

// DeleteQuestion removes a question after explicit confirmation. The
// bank is refetched only when the delete succeeded.
func (a *App) DeleteQuestion(ctx context.Context, q model.Question) {
	if a.deletingID != "" {
		return
	}
	if !a.confirm.Confirm(fmt.Sprintf(msgConfirmDeleteQuestion, composer.Excerpt(q.Content, 120))) {
		return
	}

	a.deletingID = q.ID
	defer func() { a.deletingID = "" }()

	err := a.api.DeleteQuestion(ctx, q.Category, q.ID)
	if !a.alive {
		return
	}
	if err != nil {
		a.log.Error().Err(err).Str("question_id", q.ID).Msg("question delete failed")
		a.notify.Error(gateway.UserMessage(err, msgQuestionDeleteFailed))
		return
	}

	a.store.Dispatch(state.DeleteQuestion{ID: q.ID})
	a.form.Rebind(a.store.State().Draft, a.store.State().EditingQuestionID != "")
	a.notify.Success(msgQuestionDeleted)
	a.Hydrate(ctx)
}
