package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPErrorはusecaseからhandlerへ渡すエラーの共通形。
// Fieldsはバリデーション失敗時のフィールド別メッセージ（全件まとめて返す）。
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 400とフィールド別メッセージをまとめて返す
func NewValidationError(fields map[string]string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
