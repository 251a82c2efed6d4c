package form

import (
	"strings"

	"github.com/ccmg/qbank-admin/internal/model"
)

// validate runs the submit rules in order and stops at the first failure.
// It returns true when the draft may be submitted.
func (c *Controller) validate() bool {
	if !c.vals.qtype.Valid() {
		c.errors.setFocused(FieldType, msgTypeRequired)
		return false
	}
	c.errors.clear(FieldType)

	if !c.vals.category.Valid() {
		c.errors.setFocused(FieldCategory, msgCategoryRequired)
		return false
	}
	c.errors.clear(FieldCategory)

	if c.vals.qtype == model.TypeMultipleChoice {
		if !c.validateOptions() {
			return false
		}
	} else {
		if !c.validateEssayFields() {
			return false
		}
	}

	return c.validateContent()
}

func (c *Controller) validateOptions() bool {
	c.errors.clear(FieldOptions)
	c.errors.clearOptionTexts(len(c.vals.options))

	firstEmpty := -1
	for i, option := range c.vals.options {
		if strings.TrimSpace(option.Text) == "" {
			c.errors.set(OptionTextField(i), msgOptionEmpty)
			if firstEmpty < 0 {
				firstEmpty = i
			}
		}
	}
	if firstEmpty >= 0 {
		c.errors.focus = OptionTextField(firstEmpty)
		return false
	}

	if len(c.vals.options) < MinOptionsCount {
		c.errors.setFocused(FieldOptions, msgOptionsMin)
		return false
	}
	if len(c.vals.options) > MaxOptionsCount {
		c.errors.setFocused(FieldOptions, msgOptionsMaxSubmit)
		return false
	}

	hasCorrect := false
	for _, option := range c.vals.options {
		if option.IsCorrect {
			hasCorrect = true
			break
		}
	}
	if !hasCorrect {
		c.errors.setFocused(FieldOptions, msgNeedCorrect)
		return false
	}
	return true
}

func (c *Controller) validateEssayFields() bool {
	if strings.TrimSpace(c.vals.group) == "" {
		c.errors.setFocused(FieldGroup, msgGroupRequired)
		return false
	}

	normalized := 0
	for _, kw := range c.vals.keywords {
		if strings.TrimSpace(kw) != "" {
			normalized++
		}
	}
	if normalized == 0 {
		c.errors.setFocused(FieldKeywords, msgKeywordsMin)
		return false
	}
	if normalized > MaxKeywords {
		c.errors.setFocused(FieldKeywords, msgKeywordsMax)
		return false
	}
	return true
}

func (c *Controller) validateContent() bool {
	trimmed := strings.TrimSpace(c.vals.content)
	min := MinContentMultipleChoice
	if c.vals.qtype == model.TypeEssay {
		min = MinContentEssay
	}

	switch {
	case trimmed == "":
		c.errors.setFocused(FieldContent, msgContentRequired)
		return false
	case len([]rune(trimmed)) < min:
		c.errors.setFocused(FieldContent, msgContentTooShort(min))
		return false
	case len([]rune(trimmed)) > MaxContentLength:
		c.errors.setFocused(FieldContent, msgContentTooLong)
		return false
	}

	c.errors.clear(FieldContent)
	return true
}
