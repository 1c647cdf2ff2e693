package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sharederrors "dci/errors"
)

// TestValidateRequired 测试必填验证
func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "有效值", value: "account/1", wantErr: false},
		{name: "空字符串", value: "", wantErr: true},
		{name: "仅空白", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.value, "账户ID")
			if tt.wantErr {
				assert.True(t, sharederrors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestValidatePositive 测试正数验证
func TestValidatePositive(t *testing.T) {
	assert.NoError(t, ValidatePositive(1, "金额"))
	assert.True(t, sharederrors.IsValidation(ValidatePositive(0, "金额")))
	assert.True(t, sharederrors.IsValidation(ValidatePositive(-5, "金额")))
}

// TestValidateNonNegative 测试非负验证
func TestValidateNonNegative(t *testing.T) {
	assert.NoError(t, ValidateNonNegative(0, "余额"))
	assert.NoError(t, ValidateNonNegative(10, "余额"))
	assert.True(t, sharederrors.IsValidation(ValidateNonNegative(-1, "余额")))
}

type sinkSettings struct {
	Kind   string `validate:"required,oneof=console sqlite"`
	Stream string `validate:"required_if=Kind sqlite"`
}

// TestValidateStruct 测试结构体验证
func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		value   sinkSettings
		wantErr bool
	}{
		{name: "控制台", value: sinkSettings{Kind: "console"}},
		{name: "sqlite需要stream", value: sinkSettings{Kind: "sqlite"}, wantErr: true},
		{name: "sqlite完整", value: sinkSettings{Kind: "sqlite", Stream: "reports"}},
		{name: "未知类型", value: sinkSettings{Kind: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.value)
			if tt.wantErr {
				assert.True(t, sharederrors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
