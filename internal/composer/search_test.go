package composer

import "testing"

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "đáp án", "đáp án"},
		{"strips tags", "<p>Câu <b>hỏi</b> số 1</p>", "Câu hỏi số 1"},
		{"collapses whitespace", "  nhiều \n khoảng\ttrắng  ", "nhiều khoảng trắng"},
		{"tag becomes separator", "một<br>hai", "một hai"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeContent(tt.in); got != tt.want {
				t.Fatalf("NormalizeContent(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldSearchText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "ĐÁP ÁN", "đap an"},
		{"removes tone marks", "nguyễn", "nguyen"},
		{"d with stroke survives", "đúng", "đung"},
		{"html stripped first", "<i>Đáp Án</i>", "đap an"},
		{"ascii unchanged", "abc 123", "abc 123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoldSearchText(tt.in); got != tt.want {
				t.Fatalf("FoldSearchText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldSearchTextMatchesBothSides(t *testing.T) {
	content := "<p>Hãy chọn <b>Đáp Án</b> đúng nhất.</p>"
	query := "dap an"

	if FoldSearchText(query) != "dap an" {
		t.Fatalf("query folded to %q", FoldSearchText(query))
	}
	folded := FoldSearchText(content)
	if want := "hay chon đap an đung nhat."; folded != want {
		t.Fatalf("content folded to %q, want %q", folded, want)
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("<p>ngắn</p>", 10); got != "ngắn" {
		t.Fatalf("Excerpt = %q, want untouched short text", got)
	}
	if got := Excerpt("một hai ba bốn năm", 7); got != "một hai…" {
		t.Fatalf("Excerpt = %q, want rune-safe cut with ellipsis", got)
	}
}
