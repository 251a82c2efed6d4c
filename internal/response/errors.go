package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Domain ────────────────────────────────────────────────────────
	ErrUnknownCourse     ErrCode = "UNKNOWN_COURSE"
	ErrInvalidCategory   ErrCode = "INVALID_CATEGORY"
	ErrExamCardinality   ErrCode = "EXAM_CARDINALITY"
	ErrQuestionSetTooBig ErrCode = "QUESTION_SET_TOO_BIG"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Tên đăng nhập hoặc mật khẩu không đúng."
	case ErrTokenRequired:
		return "Yêu cầu token xác thực."
	case ErrTokenInvalid:
		return "Token xác thực không hợp lệ."
	case ErrTokenExpired:
		return "Phiên đăng nhập đã hết hạn. Vui lòng đăng nhập lại."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dữ liệu không hợp lệ. Vui lòng kiểm tra lại."
	case ErrInvalidID:
		return "Định dạng ID không hợp lệ."
	case ErrInvalidPayload:
		return "Nội dung yêu cầu không hợp lệ."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Không tìm thấy dữ liệu."
	case ErrConflict:
		return "Dữ liệu đã tồn tại."

	// ─── Domain ────────────────────────────────────────────────────────
	case ErrUnknownCourse:
		return "Chưa cấu hình khóa học cho danh mục này."
	case ErrInvalidCategory:
		return "Danh mục không hợp lệ."
	case ErrExamCardinality:
		return "Số lượng câu hỏi của bộ đề không hợp lệ."
	case ErrQuestionSetTooBig:
		return "Mỗi bộ đề chỉ được chứa tối đa 50 câu hỏi."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Đã xảy ra lỗi máy chủ."
	default:
		return "Yêu cầu thất bại."
	}
}
