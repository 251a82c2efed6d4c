package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ccmg/qbank-admin/internal/model"
)

func TestWorkbookBytesSplitsSheetsByType(t *testing.T) {
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	questions := []model.Question{
		{
			ID:        "mc-1",
			Type:      model.TypeMultipleChoice,
			Content:   "<p>Thủ đô của Việt Nam?</p>",
			Category:  model.CategoryFoundational,
			CreatedAt: created,
			MultipleChoice: &model.MultipleChoiceDetails{
				Options: []model.Option{
					{Label: "A", Text: "Hà Nội", IsCorrect: true},
					{Label: "B", Text: "Huế"},
				},
				Explanation: "xem bài 1",
			},
		},
		{
			ID:       "essay-1",
			Type:     model.TypeEssay,
			Content:  "Trình bày khái niệm.",
			Category: model.CategorySpecialized,
			Essay: &model.EssayDetails{
				Group:      "Nhóm 2",
				Keywords:   []string{"khái niệm", "phân tích"},
				IsVerified: true,
			},
		},
	}

	data, err := WorkbookBytes(questions)
	if err != nil {
		t.Fatalf("WorkbookBytes: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetMultipleChoice || sheets[1] != sheetEssay {
		t.Fatalf("sheets = %#v, want one per question type", sheets)
	}

	mcRows, err := f.GetRows(sheetMultipleChoice)
	if err != nil {
		t.Fatalf("read mc rows: %v", err)
	}
	if len(mcRows) != 2 {
		t.Fatalf("mc rows = %d, want header plus one question", len(mcRows))
	}
	if mcRows[0][0] != "id" || mcRows[1][0] != "mc-1" {
		t.Fatalf("mc rows = %#v, want the question row under the header", mcRows)
	}
	if mcRows[1][1] != "Thủ đô của Việt Nam?" {
		t.Fatalf("content = %q, want HTML stripped", mcRows[1][1])
	}
	if mcRows[1][4] != "A" {
		t.Fatalf("correct = %q, want the correct option's label", mcRows[1][4])
	}
	if mcRows[1][7] != "2025-06-01 08:00:00" {
		t.Fatalf("created_at = %q, want formatted", mcRows[1][7])
	}

	essayRows, err := f.GetRows(sheetEssay)
	if err != nil {
		t.Fatalf("read essay rows: %v", err)
	}
	if len(essayRows) != 2 {
		t.Fatalf("essay rows = %d, want header plus one question", len(essayRows))
	}
	if essayRows[1][0] != "essay-1" || essayRows[1][3] != "Nhóm 2" {
		t.Fatalf("essay row = %#v, want the essay fields", essayRows[1])
	}
	if essayRows[1][5] != "khái niệm, phân tích" {
		t.Fatalf("keywords = %q, want comma-joined", essayRows[1][5])
	}
}

func TestWorkbookBytesEmptyBank(t *testing.T) {
	data, err := WorkbookBytes(nil)
	if err != nil {
		t.Fatalf("WorkbookBytes: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetMultipleChoice)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want only the header", len(rows))
	}
}
