// Package export renders the question bank as an Excel workbook, one
// sheet per question type.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ccmg/qbank-admin/internal/composer"
	"github.com/ccmg/qbank-admin/internal/model"
)

const (
	sheetMultipleChoice = "Trac nghiem"
	sheetEssay          = "Tu luan"

	timeLayout = "2006-01-02 15:04:05"
)

var mcHeaders = []string{"id", "content", "category", "options", "correct", "explanation", "explanation_url", "created_at"}

var essayHeaders = []string{"id", "content", "category", "group", "hint", "keywords", "verified", "created_at"}

// WorkbookBytes builds an xlsx workbook from the merged question bank.
// Multiple-choice and essay questions land on separate sheets; question
// content is exported with HTML markup stripped.
func WorkbookBytes(questions []model.Question) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName(f.GetSheetName(0), sheetMultipleChoice)
	if _, err := f.NewSheet(sheetEssay); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	writeHeader(f, sheetMultipleChoice, mcHeaders)
	writeHeader(f, sheetEssay, essayHeaders)

	mcRow, essayRow := 2, 2
	for _, q := range questions {
		switch q.Type {
		case model.TypeMultipleChoice:
			writeRow(f, sheetMultipleChoice, mcRow, mcValues(q))
			mcRow++
		case model.TypeEssay:
			writeRow(f, sheetEssay, essayRow, essayValues(q))
			essayRow++
		}
	}

	_ = f.SetColWidth(sheetMultipleChoice, "A", "H", 28)
	_ = f.SetColWidth(sheetEssay, "A", "H", 28)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func mcValues(q model.Question) []any {
	options := []string{}
	correct := ""
	if q.MultipleChoice != nil {
		for i, opt := range q.MultipleChoice.Options {
			label := opt.Label
			if label == "" {
				label = model.OptionLabel(i)
			}
			options = append(options, label+". "+opt.Text)
			if opt.IsCorrect {
				correct = label
			}
		}
	}
	explanation, explanationURL := "", ""
	if q.MultipleChoice != nil {
		explanation = q.MultipleChoice.Explanation
		explanationURL = q.MultipleChoice.ExplanationURL
	}
	return []any{
		q.ID,
		composer.NormalizeContent(q.Content),
		string(q.Category),
		strings.Join(options, "\n"),
		correct,
		explanation,
		explanationURL,
		formatTime(q),
	}
}

func essayValues(q model.Question) []any {
	group, hint := "", ""
	keywords := []string{}
	verified := false
	if q.Essay != nil {
		group = q.Essay.Group
		hint = q.Essay.Hint
		keywords = q.Essay.Keywords
		verified = q.Essay.IsVerified
	}
	return []any{
		q.ID,
		composer.NormalizeContent(q.Content),
		string(q.Category),
		group,
		hint,
		strings.Join(keywords, ", "),
		verified,
		formatTime(q),
	}
}

func formatTime(q model.Question) string {
	if q.CreatedAt.IsZero() {
		return ""
	}
	return q.CreatedAt.Format(timeLayout)
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
