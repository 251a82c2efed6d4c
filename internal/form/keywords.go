package form

import "strings"

// Keywords returns a copy of the committed keywords.
func (c *Controller) Keywords() []string {
	return append([]string{}, c.vals.keywords...)
}

// SetKeywordDraft updates the uncommitted keyword input.
func (c *Controller) SetKeywordDraft(raw string) {
	c.keywordDraft = raw
}

// CommitKeywordDraft commits whatever is in the keyword input.
func (c *Controller) CommitKeywordDraft() {
	c.CommitKeyword(c.keywordDraft)
}

// CommitKeyword normalizes raw (trim, collapse internal whitespace) and
// appends it to the keywords. Case-insensitive duplicates are ignored
// silently; committing past the cap raises an explicit error.
func (c *Controller) CommitKeyword(raw string) {
	normalized := strings.Join(strings.Fields(raw), " ")
	if normalized == "" {
		c.keywordDraft = ""
		return
	}

	if len(c.vals.keywords) >= MaxKeywords {
		c.errors.set(FieldKeywords, msgKeywordsMax)
		return
	}

	lowered := strings.ToLower(normalized)
	for _, existing := range c.vals.keywords {
		if strings.ToLower(existing) == lowered {
			c.keywordDraft = ""
			return
		}
	}

	c.vals.keywords = append(c.vals.keywords, normalized)
	c.errors.clear(FieldKeywords)
	c.keywordDraft = ""
	c.syncDraft()
}

// RemoveKeyword deletes a committed keyword. Removing the last one
// re-raises the at-least-one error right away, before any submit.
func (c *Controller) RemoveKeyword(index int) {
	if index < 0 || index >= len(c.vals.keywords) {
		return
	}
	c.vals.keywords = append(c.vals.keywords[:index], c.vals.keywords[index+1:]...)
	if len(c.vals.keywords) == 0 {
		c.errors.setFocused(FieldKeywords, msgKeywordsMin)
	}
	c.syncDraft()
}
