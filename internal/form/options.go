package form

import (
	"strings"

	"github.com/ccmg/qbank-admin/internal/model"
)

// Options returns a copy of the current option rows.
func (c *Controller) Options() []model.Option {
	return append([]model.Option(nil), c.vals.options...)
}

// AddOption appends an empty option row, rejecting past the cap.
func (c *Controller) AddOption() {
	if len(c.vals.options) >= MaxOptionsCount {
		c.errors.setFocused(FieldOptions, msgOptionsMaxAdd)
		return
	}
	c.errors.clear(FieldOptions)
	c.vals.options = append(c.vals.options, model.NewEmptyOption())
	c.syncDraft()
}

// RemoveOption deletes an option row, refusing to drop below the minimum.
func (c *Controller) RemoveOption(index int) {
	if index < 0 || index >= len(c.vals.options) {
		return
	}
	if len(c.vals.options) <= MinOptionsCount {
		c.errors.setFocused(FieldOptions, msgOptionsMin)
		return
	}
	c.errors.clear(FieldOptions, OptionTextField(index))
	c.vals.options = append(c.vals.options[:index], c.vals.options[index+1:]...)
	c.syncDraft()
}

// SetOptionText updates one option's text, clearing its empty-text error
// as soon as real content appears.
func (c *Controller) SetOptionText(index int, text string) {
	if index < 0 || index >= len(c.vals.options) {
		return
	}
	c.vals.options[index].Text = text
	if strings.TrimSpace(text) != "" {
		c.errors.clear(OptionTextField(index))
	}
	c.syncDraft()
}

// MoveOption reorders an option row, preserving ids and correctness.
func (c *Controller) MoveOption(from, to int) {
	if from == to || from < 0 || to < 0 || from >= len(c.vals.options) || to >= len(c.vals.options) {
		return
	}
	moved := c.vals.options[from]
	rest := append(c.vals.options[:from], c.vals.options[from+1:]...)
	c.vals.options = append(rest[:to], append([]model.Option{moved}, rest[to:]...)...)
	c.syncDraft()
}

// MarkCorrect makes option index the single correct answer: one atomic
// replace of the options slice that clears every other flag, preserving
// order and ids (radio semantics).
func (c *Controller) MarkCorrect(index int) {
	if index < 0 || index >= len(c.vals.options) {
		return
	}
	next := append([]model.Option(nil), c.vals.options...)
	for i := range next {
		next[i].IsCorrect = i == index
	}
	c.vals.options = next
	c.errors.clear(FieldOptions)
	c.syncDraft()
}
