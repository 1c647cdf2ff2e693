package errors

import (
	"context"
	stdErrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dci/domain/entity"
)

// TestWrap 测试基本错误包装
func TestWrap(t *testing.T) {
	ctx := context.Background()
	originalErr := stdErrors.New("原始错误")

	wrapped := Wrap(ctx, originalErr, ErrCodeInternal, "包装消息")

	require.Error(t, wrapped)
	assert.True(t, stdErrors.Is(wrapped, originalErr))
	assert.Equal(t, ErrCodeInternal, GetErrorCode(wrapped))
}

// TestWrap_NilError 测试包装nil错误
func TestWrap_NilError(t *testing.T) {
	assert.NoError(t, Wrap(context.Background(), nil, ErrCodeInternal, "消息"))
	assert.NoError(t, WrapWithLog(context.Background(), nil, ErrCodeInternal, "消息"))
	assert.NoError(t, WrapDatabaseError(context.Background(), nil, "操作"))
	assert.NoError(t, WrapQueueError(context.Background(), nil, "stream"))
}

// TestWrapInfrastructureErrors 测试基础设施错误码
func TestWrapInfrastructureErrors(t *testing.T) {
	ctx := context.Background()
	cause := stdErrors.New("connection refused")

	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{name: "数据库错误", err: WrapDatabaseError(ctx, cause, "insert report line"), code: ErrCodeDatabase},
		{name: "队列错误", err: WrapQueueError(ctx, cause, "dci:reports"), code: ErrCodeQueue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, IsErrorCode(tt.err, tt.code))
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

// TestAppErrorIs 同错误码视为同类错误
func TestAppErrorIs(t *testing.T) {
	err := NewError(ErrCodeMissingDependency, "missing dependency: *foo.Bar")

	assert.True(t, stdErrors.Is(err, NewError(ErrCodeMissingDependency, "other")))
	assert.False(t, stdErrors.Is(err, NewError(ErrCodeAmbiguousDependency, "other")))
	assert.True(t, IsMissingDependency(err))
	assert.False(t, IsAmbiguousDependency(err))
}

// TestWithContext 添加上下文不修改原错误
func TestWithContext(t *testing.T) {
	base := NewError(ErrCodeDuplicateContract, "duplicate contract")
	withCtx := base.WithContext("contract", "int")

	assert.Equal(t, "int", withCtx.Details()["contract"])
	assert.NotContains(t, base.Details(), "contract")
	assert.True(t, IsDuplicateContract(withCtx))
}

// TestGetErrorCode 非 AppError 归为内部错误
func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
	assert.Equal(t, ErrCodeInternal, GetErrorCode(stdErrors.New("plain")))
	assert.Equal(t, ErrCodeInsufficientFunds, GetErrorCode(NewError(ErrCodeInsufficientFunds, "余额不足")))
}

// TestNormalize 测试实体错误规范化
func TestNormalize(t *testing.T) {
	account := entity.New("account/1")
	account.Set("Balance", "not a number")

	_, missing := entity.Field[int64](account, "Overdraft")
	_, mismatch := entity.Field[int64](account, "Balance")

	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{name: "字段缺失", err: missing, code: ErrCodeFieldNotFound},
		{name: "类型不符", err: mismatch, code: ErrCodeFieldTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := Normalize(tt.err)
			assert.True(t, IsErrorCode(normalized, tt.code))
			assert.ErrorIs(t, normalized, tt.err)

			var appErr *AppError
			require.True(t, stdErrors.As(normalized, &appErr))
			assert.Equal(t, "account/1", appErr.Details()["entity_id"])
		})
	}

	assert.NoError(t, Normalize(nil))

	plain := stdErrors.New("plain")
	assert.Same(t, plain, Normalize(plain))

	already := NewError(ErrCodeInsufficientFunds, "余额不足")
	assert.Same(t, already, Normalize(already))
}

// BenchmarkWrap 基准测试：基本包装
func BenchmarkWrap(b *testing.B) {
	ctx := context.Background()
	err := stdErrors.New("测试错误")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Wrap(ctx, err, ErrCodeInternal, "基准测试")
	}
}
