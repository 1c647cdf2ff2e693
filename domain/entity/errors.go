package entity

import "fmt"

// 常见字段错误
var (
	ErrFieldNotFound     = &EntityError{Code: "FIELD_NOT_FOUND", Message: "entity field not found"}
	ErrFieldTypeMismatch = &EntityError{Code: "FIELD_TYPE_MISMATCH", Message: "entity field has unexpected type"}
)

// EntityError 实体错误
type EntityError struct {
	Code    string
	Message string
}

func (e *EntityError) Error() string {
	return e.Message
}

// FieldError 描述某个实体的某个字段读取失败
type FieldError struct {
	EntityID string
	Field    string
	Want     string
	Got      string
	Err      error
}

func (e *FieldError) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("%s.%s: %s (want %s, got %s)", e.EntityID, e.Field, e.Err, e.Want, e.Got)
	}
	return fmt.Sprintf("%s.%s: %s", e.EntityID, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
