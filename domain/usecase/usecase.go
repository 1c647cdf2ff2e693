// Package usecase 定义用例上下文（Context）的最小契约及其执行器。
//
// 一个上下文在构造时绑定参与的角色与参数，通过 Execute 运行一次交互。
package usecase

import (
	"context"
	"sync"

	"dci/domain"
	"dci/errors"
)

// IContext 用例上下文
type IContext interface {
	Execute(ctx context.Context) error
}

// ErrContextAlreadyExecuted 上下文重复执行
var ErrContextAlreadyExecuted = errors.NewError(errors.ErrCodeAlreadyExecuted, "context has already been executed")

// Once 单次执行守卫，供上下文嵌入
//
// 转账等有副作用的上下文只能执行一次，第二次 Begin 返回 ErrContextAlreadyExecuted。
type Once struct {
	mutex sync.Mutex
	done  bool
}

// Begin 标记开始执行
func (o *Once) Begin() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.done {
		return ErrContextAlreadyExecuted
	}
	o.done = true
	return nil
}

// Executed 是否已执行
func (o *Once) Executed() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.done
}

// Func 函数适配为上下文
type Func func(ctx context.Context) error

// Execute 实现 IContext
func (f Func) Execute(ctx context.Context) error {
	return f(ctx)
}

// validate 执行前校验实现了 domain.IValidatable 的上下文
func validate(c IContext) error {
	v, ok := c.(domain.IValidatable)
	if !ok {
		return nil
	}
	return v.Validate()
}
