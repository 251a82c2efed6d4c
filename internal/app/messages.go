package app

const (
	msgLoginFailed           = "Đăng nhập thất bại."
	msgLoadQuestionsFailed   = "Không thể tải danh sách câu hỏi."
	msgRefreshed             = "Đã làm mới danh sách câu hỏi."
	msgQuestionSaved         = "Đã lưu câu hỏi thành công."
	msgQuestionUpdated       = "Đã cập nhật câu hỏi thành công."
	msgQuestionDeleted       = "Đã xóa câu hỏi."
	msgQuestionDeleteFailed  = "Không thể xóa câu hỏi."
	msgConfirmDeleteQuestion = "Bạn có chắc chắn muốn xóa câu hỏi \"%s\"?"
)
