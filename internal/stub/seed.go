package stub

import (
	"fmt"

	"github.com/ccmg/qbank-admin/internal/model"
)

// Seed fills the store with a small working dataset: a handful of
// questions of each type per category and a few user accounts.
func Seed(store *Store) {
	for _, category := range []model.Category{model.CategoryFoundational, model.CategorySpecialized} {
		for i := 1; i <= 5; i++ {
			store.UpsertQuestion(model.Question{
				Type:     model.TypeMultipleChoice,
				Content:  fmt.Sprintf("<p>Câu hỏi trắc nghiệm số %d (%s)?</p>", i, category),
				Category: category,
				MultipleChoice: &model.MultipleChoiceDetails{
					Options: []model.Option{
						{Label: "A", Text: "Phương án thứ nhất", IsCorrect: i%4 == 0},
						{Label: "B", Text: "Phương án thứ hai", IsCorrect: i%4 == 1},
						{Label: "C", Text: "Phương án thứ ba", IsCorrect: i%4 == 2},
						{Label: "D", Text: "Phương án thứ tư", IsCorrect: i%4 == 3},
					},
					Explanation: "Xem lại bài giảng liên quan.",
				},
			})

			store.UpsertQuestion(model.Question{
				Type:     model.TypeEssay,
				Content:  fmt.Sprintf("<p>Trình bày nội dung tự luận số %d (%s).</p>", i, category),
				Category: category,
				Essay: &model.EssayDetails{
					Hint:       "Nêu khái niệm trước, sau đó phân tích.",
					Group:      fmt.Sprintf("Nhóm %d", (i%3)+1),
					Keywords:   []string{"khái niệm", "phân tích", fmt.Sprintf("nội dung %d", i)},
					IsVerified: i%2 == 0,
				},
			})
		}
	}

	store.UpsertUser(model.User{
		UserName:   "hocvien01",
		Email:      "hocvien01@example.com",
		Gender:     "male",
		Occupation: "student",
		Nickname:   "Nam",
		IsActive:   true,
	})
	store.UpsertUser(model.User{
		UserName:   "hocvien02",
		Email:      "hocvien02@example.com",
		Gender:     "female",
		Occupation: "teacher",
		Nickname:   "Lan",
		IsActive:   true,
	})
	store.UpsertUser(model.User{
		UserName: "hocvien03",
		Email:    "hocvien03@example.com",
		Nickname: "Minh",
		IsActive: false,
	})
}
