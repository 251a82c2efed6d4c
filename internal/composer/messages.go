package composer

// User-facing Vietnamese strings for the exam composer.
const (
	msgCapacity           = "Mỗi bộ đề chỉ được chứa tối đa 50 câu hỏi."
	msgNoCandidates       = "Không còn câu hỏi phù hợp để chọn."
	msgRandomPicked       = "Đã thêm ngẫu nhiên %d câu hỏi."
	msgConfirmClearAll    = "Bạn có chắc chắn muốn gỡ toàn bộ câu hỏi đã chọn?"
	msgConfirmDeleteExam  = "Bạn có chắc chắn muốn xóa \"%s\"?"
	msgLockedWhileEditing = "Không thể đổi kiểu hoặc lĩnh vực khi đang chỉnh sửa bộ đề."

	msgNameTooShort  = "Tên bộ đề phải có ít nhất 3 ký tự."
	msgNameTooLong   = "Tên bộ đề không được vượt quá 120 ký tự."
	msgDurationRange = "Thời gian làm bài phải nằm trong khoảng 1 - 1440 phút."
	msgNeedExactly50 = "Bộ đề trắc nghiệm phải chứa đủ 50 câu hỏi."
	msgNeedAtLeast1  = "Vui lòng chọn ít nhất 1 câu hỏi cho bộ đề."

	msgCreatedMC     = "Đã tạo bộ đề trắc nghiệm thành công."
	msgCreatedEssay  = "Đã tạo bộ đề tự luận thành công."
	msgUpdated       = "Đã cập nhật bộ đề thành công."
	msgDeleted       = "Đã xóa bộ đề."
	msgSaveFailed    = "Không thể lưu bộ đề."
	msgUpdateFailed  = "Không thể cập nhật bộ đề."
	msgDeleteFailed  = "Không thể xóa bộ đề."
	msgLoadQuestionsFailed = "Không thể tải danh sách câu hỏi."
	msgLoadExamsFailed     = "Không thể tải danh sách bộ đề."
)
