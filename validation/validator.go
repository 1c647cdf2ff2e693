package validation

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"dci/errors"
)

// IValidator 定义通用验证器接口
type IValidator interface {
	Validate(value any) error
}

// StructValidator 基于 struct tag（`validate:"..."`）的验证器
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator 创建结构体验证器
func NewStructValidator() *StructValidator {
	return &StructValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate 实现 IValidator 接口，失败时返回 ErrCodeValidation 错误并附带字段列表
func (v *StructValidator) Validate(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stdErrors.As(err, &fieldErrs) {
		return errors.WrapError(err, errors.ErrCodeValidation, "结构体验证失败")
	}

	parts := make([]string, 0, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
		fields = append(fields, fe.Field())
	}
	return errors.WrapError(err, errors.ErrCodeValidation,
		fmt.Sprintf("字段验证失败: %s", strings.Join(parts, ", "))).
		WithContext("fields", fields)
}

var defaultStructValidator = NewStructValidator()

// ValidateStruct 使用默认结构体验证器
func ValidateStruct(value any) error {
	return defaultStructValidator.Validate(value)
}

// ValidateRequired 验证必填字段
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewError(errors.ErrCodeValidation,
			fmt.Sprintf("%s不能为空", fieldName))
	}
	return nil
}

// ValidatePositive 验证正数
func ValidatePositive(value int64, fieldName string) error {
	if value <= 0 {
		return errors.NewError(errors.ErrCodeValidation,
			fmt.Sprintf("%s必须为正数（当前%d）", fieldName, value))
	}
	return nil
}

// ValidateNonNegative 验证非负数
func ValidateNonNegative(value int64, fieldName string) error {
	if value < 0 {
		return errors.NewError(errors.ErrCodeValidation,
			fmt.Sprintf("%s不能为负数（当前%d）", fieldName, value))
	}
	return nil
}
