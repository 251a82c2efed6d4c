// Package form keeps a working copy of one question draft in sync with
// the state store, handles type toggling without cross-contamination
// between the two question shapes, and validates before emitting a save.
package form

import (
	"context"
	"strings"

	"github.com/ccmg/qbank-admin/internal/gateway"
	"github.com/ccmg/qbank-admin/internal/model"
)

// Option count and content limits enforced by the form.
const (
	MinOptionsCount  = 2
	MaxOptionsCount  = 10
	MaxKeywords      = 20
	MaxContentLength = 2000
	// Essay prompts need more substance than a multiple-choice stem.
	MinContentEssay          = 10
	MinContentMultipleChoice = 5
)

// SaveFunc persists a normalized question payload and returns the stored
// record. It is the external boundary the controller submits through.
type SaveFunc func(ctx context.Context, q model.Question) (model.Question, error)

// values is the flat working state of the form. Both variants' fields
// coexist here while editing, exactly like the bound field map of a form
// library; cross-type fields are zeroed only when a payload is
// materialized.
type values struct {
	qtype          model.QuestionType
	content        string
	category       model.Category
	options        []model.Option
	explanation    string
	explanationURL string
	hint           string
	group          string
	keywords       []string
	isVerified     bool
}

// Controller binds the form values to a reducer draft.
type Controller struct {
	vals    values
	draftID string
	editing bool

	// Per-field caches keyed by question type: toggling A→B→A restores
	// the value the user had under A instead of blanking it.
	contentCache  map[model.QuestionType]string
	categoryCache map[model.QuestionType]model.Category

	keywordDraft string
	errors       *Errors
	submitError  string

	onDraftChange func(model.Question)
}

// New binds a controller to the given reducer draft. onDraftChange
// receives the materialized draft after every field-level change (the
// explicit push back into shared state); it may be nil.
func New(draft model.Question, editing bool, onDraftChange func(model.Question)) *Controller {
	c := &Controller{onDraftChange: onDraftChange}
	c.Rebind(draft, editing)
	return c
}

// Rebind replaces the working state from a reducer draft: used on mount,
// when entering edit mode, and after a save or cancel resets the draft.
func (c *Controller) Rebind(draft model.Question, editing bool) {
	draft = draft.Clone()
	draft.Normalize()

	c.draftID = draft.ID
	c.editing = editing
	c.errors = newErrors()
	c.submitError = ""
	c.keywordDraft = ""

	c.vals = values{
		qtype:    draft.Type,
		content:  draft.Content,
		category: draft.Category,
		keywords: []string{},
	}
	if mc := draft.MultipleChoice; mc != nil {
		c.vals.options = append([]model.Option(nil), mc.Options...)
		c.vals.explanation = mc.Explanation
		c.vals.explanationURL = mc.ExplanationURL
	}
	if es := draft.Essay; es != nil {
		c.vals.hint = es.Hint
		c.vals.group = es.Group
		c.vals.keywords = append([]string{}, es.Keywords...)
		c.vals.isVerified = es.IsVerified
	}
	if len(c.vals.options) == 0 && draft.Type == model.TypeMultipleChoice {
		c.vals.options = []model.Option{model.NewEmptyOption(), model.NewEmptyOption()}
	}

	// A brand-new draft starts with no category chosen; the author must
	// pick one explicitly.
	if !editing && draft.ID == "" {
		c.vals.category = ""
	}

	c.contentCache = map[model.QuestionType]string{
		model.TypeMultipleChoice: "",
		model.TypeEssay:          "",
	}
	c.categoryCache = map[model.QuestionType]model.Category{
		model.TypeMultipleChoice: "",
		model.TypeEssay:          "",
	}
	c.contentCache[draft.Type] = c.vals.content
	c.categoryCache[draft.Type] = c.vals.category
}

// Type returns the active question type.
func (c *Controller) Type() model.QuestionType { return c.vals.qtype }

// IsEditing reports whether the bound draft came from an existing question.
func (c *Controller) IsEditing() bool { return c.editing }

// SubmitError returns the message of the last rejected save, if any.
func (c *Controller) SubmitError() string { return c.submitError }

// Errors exposes the current field-level validation errors.
func (c *Controller) Errors() *Errors { return c.errors }

// KeywordDraft returns the uncommitted keyword input.
func (c *Controller) KeywordDraft() string { return c.keywordDraft }

// SetType toggles the question type, preserving per-type content and
// category through the caches and restoring or synthesizing the variant
// fields of the target type.
func (c *Controller) SetType(next model.QuestionType) {
	prev := c.vals.qtype
	if !next.Valid() || next == prev {
		return
	}

	// Snapshot the outgoing type's values, then restore the incoming
	// type's (empty if never visited).
	c.contentCache[prev] = c.vals.content
	c.categoryCache[prev] = c.vals.category
	c.vals.qtype = next
	c.vals.content = c.contentCache[next]
	c.vals.category = c.categoryCache[next]
	c.errors.clear(FieldType, FieldContent, FieldCategory)

	if next == model.TypeMultipleChoice {
		if len(c.vals.options) == 0 {
			c.vals.options = []model.Option{model.NewEmptyOption(), model.NewEmptyOption()}
		}
		c.errors.clear(FieldGroup, FieldKeywords)
	} else {
		c.vals.explanation = ""
		c.vals.explanationURL = ""
		if c.vals.keywords == nil {
			c.vals.keywords = []string{}
		}
		c.keywordDraft = ""
		c.errors.clear(FieldOptions, FieldGroup, FieldKeywords)
		c.errors.clearOptionTexts(len(c.vals.options))
	}

	c.syncDraft()
}

// SetContent updates the question content and the active type's cache.
func (c *Controller) SetContent(content string) {
	c.vals.content = content
	c.contentCache[c.vals.qtype] = content
	c.syncDraft()
}

// SetCategory updates the category and the active type's cache.
func (c *Controller) SetCategory(category model.Category) {
	c.vals.category = category
	c.categoryCache[c.vals.qtype] = category
	if category != "" {
		c.errors.clear(FieldCategory)
	}
	c.syncDraft()
}

// SetExplanation updates the multiple-choice explanation text.
func (c *Controller) SetExplanation(text string) {
	c.vals.explanation = text
	c.syncDraft()
}

// SetExplanationURL updates the multiple-choice explanation link.
func (c *Controller) SetExplanationURL(link string) {
	c.vals.explanationURL = link
	c.syncDraft()
}

// SetHint updates the essay answer hint.
func (c *Controller) SetHint(hint string) {
	c.vals.hint = hint
	c.syncDraft()
}

// SetGroup updates the essay group and clears its error.
func (c *Controller) SetGroup(group string) {
	c.vals.group = group
	c.errors.clear(FieldGroup)
	c.syncDraft()
}

// SetVerified marks the essay as internally reviewed.
func (c *Controller) SetVerified(verified bool) {
	c.vals.isVerified = verified
	c.syncDraft()
}

// Draft returns the materialized working draft.
func (c *Controller) Draft() model.Question {
	return c.materialize()
}

// materialize builds the sum-typed draft from the flat working values.
// Fields of the inactive variant never make it into the result.
func (c *Controller) materialize() model.Question {
	q := model.Question{
		ID:       c.draftID,
		Type:     c.vals.qtype,
		Content:  c.vals.content,
		Category: c.vals.category,
	}
	if c.vals.qtype == model.TypeEssay {
		keywords := make([]string, 0, len(c.vals.keywords))
		for _, kw := range c.vals.keywords {
			if strings.TrimSpace(kw) != "" {
				keywords = append(keywords, kw)
			}
		}
		q.Essay = &model.EssayDetails{
			Hint:       c.vals.hint,
			Group:      c.vals.group,
			Keywords:   keywords,
			IsVerified: c.vals.isVerified,
		}
	} else {
		q.MultipleChoice = &model.MultipleChoiceDetails{
			Options:        append([]model.Option(nil), c.vals.options...),
			Explanation:    c.vals.explanation,
			ExplanationURL: c.vals.explanationURL,
		}
	}
	return q
}

func (c *Controller) syncDraft() {
	if c.onDraftChange != nil {
		c.onDraftChange(c.materialize())
	}
}

// Submit validates the working values in order (first failing rule wins)
// and, when valid, passes the normalized payload to save. A rejected save
// keeps the draft intact so the author can retry.
func (c *Controller) Submit(ctx context.Context, save SaveFunc) (model.Question, error) {
	c.submitError = ""

	if !c.validate() {
		return model.Question{}, ErrValidationFailed
	}

	payload := c.normalizedPayload()
	persisted, err := save(ctx, payload)
	if err != nil {
		c.submitError = gateway.UserMessage(err, msgSaveFailed)
		return model.Question{}, err
	}
	return persisted, nil
}

// normalizedPayload trims every textual field and zeroes the inactive
// variant before the draft crosses the API boundary.
func (c *Controller) normalizedPayload() model.Question {
	q := c.materialize()
	q.Content = strings.TrimSpace(q.Content)

	if q.Type == model.TypeEssay {
		es := q.Essay
		es.Group = strings.TrimSpace(es.Group)
		es.Hint = strings.TrimSpace(es.Hint)
		normalized := make([]string, 0, len(es.Keywords))
		for _, kw := range es.Keywords {
			if trimmed := strings.TrimSpace(kw); trimmed != "" {
				normalized = append(normalized, trimmed)
			}
		}
		es.Keywords = normalized
	} else {
		mc := q.MultipleChoice
		for i := range mc.Options {
			mc.Options[i].Text = strings.TrimSpace(mc.Options[i].Text)
		}
		mc.Explanation = strings.TrimSpace(mc.Explanation)
		mc.ExplanationURL = strings.TrimSpace(mc.ExplanationURL)
	}

	q.Normalize()
	return q
}
