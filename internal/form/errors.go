package form

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is returned by Submit when a local rule blocks the
// save; the specific failures are on Controller.Errors.
var ErrValidationFailed = errors.New("form: validation failed")

// Field identifies a form field carrying a validation error.
type Field string

const (
	FieldType     Field = "type"
	FieldContent  Field = "content"
	FieldCategory Field = "category"
	FieldOptions  Field = "options"
	FieldGroup    Field = "group"
	FieldKeywords Field = "keywords"
)

// OptionTextField addresses the text input of a single option row.
func OptionTextField(index int) Field {
	return Field(fmt.Sprintf("options.%d.text", index))
}

// Errors holds the current field-scoped validation errors plus the field
// that should receive focus after the latest failed check.
type Errors struct {
	byField map[Field]string
	focus   Field
}

func newErrors() *Errors {
	return &Errors{byField: make(map[Field]string)}
}

// Get returns the message for a field, or "".
func (e *Errors) Get(field Field) string {
	return e.byField[field]
}

// Has reports whether the field currently carries an error.
func (e *Errors) Has(field Field) bool {
	_, ok := e.byField[field]
	return ok
}

// Focus is the field the UI should scroll to and focus, or "".
func (e *Errors) Focus() Field {
	return e.focus
}

// Empty reports whether no field carries an error.
func (e *Errors) Empty() bool {
	return len(e.byField) == 0
}

func (e *Errors) set(field Field, message string) {
	e.byField[field] = message
}

func (e *Errors) setFocused(field Field, message string) {
	e.set(field, message)
	e.focus = field
}

func (e *Errors) clear(fields ...Field) {
	for _, f := range fields {
		delete(e.byField, f)
		if e.focus == f {
			e.focus = ""
		}
	}
}

func (e *Errors) clearOptionTexts(count int) {
	for i := 0; i < count; i++ {
		e.clear(OptionTextField(i))
	}
}

// Localized form messages, kept identical to the admin UI copy.
const (
	msgTypeRequired     = "Vui lòng chọn kiểu câu hỏi."
	msgCategoryRequired = "Vui lòng chọn lĩnh vực câu hỏi."
	msgOptionEmpty      = "Vui lòng nhập nội dung cho tùy chọn này."
	msgOptionsMin       = "Cần ít nhất 2 lựa chọn hợp lệ."
	msgOptionsMaxAdd    = "Tối đa 10 lựa chọn cho một câu hỏi trắc nghiệm."
	msgOptionsMaxSubmit = "Không được vượt quá 10 lựa chọn cho một câu hỏi."
	msgNeedCorrect      = "Chọn ít nhất một đáp án đúng."
	msgGroupRequired    = "Vui lòng nhập nhóm câu hỏi."
	msgKeywordsMin      = "Vui lòng thêm ít nhất một từ khóa."
	msgKeywordsMax      = "Tối đa 20 từ khóa cho mỗi câu hỏi."
	msgContentRequired  = "Vui lòng nhập nội dung câu hỏi."
	msgContentTooLong   = "Nội dung câu hỏi tối đa 2000 ký tự."
	msgSaveFailed       = "Không thể lưu câu hỏi."
)

func msgContentTooShort(min int) string {
	return fmt.Sprintf("Nội dung câu hỏi phải có ít nhất %d ký tự.", min)
}
