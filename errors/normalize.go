package errors

import (
	stdErrors "errors"

	"dci/domain/entity"
)

// Normalize 将实体层错误规范化为 AppError。
//
// 注意：
//   - 如果传入的 err 已经是 IError，则原样返回；
//   - 未识别的错误保持原样，不强行包装，交由调用方决定是否 Wrap。
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(IError); ok {
		return err
	}

	var fieldErr *entity.FieldError
	if stdErrors.As(err, &fieldErr) {
		var normalized IError
		switch {
		case stdErrors.Is(err, entity.ErrFieldNotFound):
			normalized = WrapError(err, ErrCodeFieldNotFound, "实体字段未设置")
		case stdErrors.Is(err, entity.ErrFieldTypeMismatch):
			normalized = WrapError(err, ErrCodeFieldTypeMismatch, "实体字段类型不符")
		default:
			return err
		}
		return normalized.
			WithContext("entity_id", fieldErr.EntityID).
			WithContext("field", fieldErr.Field)
	}

	return err
}
