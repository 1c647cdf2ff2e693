// Package di 提供基于契约类型的组合引擎（Composer）。
//
// 调用方持有一个 Catalog，登记可组合的部件（构造函数或带注入字段的结构体），
// 然后在每次 Compose/CastTo 调用时提供一组种子（实体、标量、已构造的角色）。
// Composer 按精确类型把部件声明的依赖与种子或其它部件匹配，递归构造目标。
//
// 规则：
//   - 每次调用使用全新的解析作用域，不跨调用缓存，也没有全局容器；
//   - 种子直接满足同类型依赖，优先于目录中的部件；
//   - 依赖无候选为 MISSING_DEPENDENCY，多个部件为 AMBIGUOUS_DEPENDENCY，
//     同类型种子重复为 DUPLICATE_CONTRACT，构造链成环为 CYCLIC_DEPENDENCY；
//   - 所有错误都携带未满足契约的类型标识（details["contract"]）。
package di

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"dci/errors"
	"dci/logging"
)

// IObserver 组合观测者（如 Prometheus 指标）
type IObserver interface {
	ObserveComposition(target Contract, elapsed time.Duration, err error)
}

// Option Composer 选项
type Option func(*Composer)

// WithLogger 设置日志
func WithLogger(logger logging.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver 设置观测者
func WithObserver(observer IObserver) Option {
	return func(c *Composer) {
		c.observer = observer
	}
}

// Composer 组合引擎
//
// Composer 本身无可变状态，可在多个调用间复用；Catalog 在登记完成后视为只读。
type Composer struct {
	catalog  *Catalog
	logger   logging.Logger
	observer IObserver
}

// NewComposer 创建组合引擎，catalog 为 nil 时只能用种子满足依赖
func NewComposer(catalog *Catalog, opts ...Option) *Composer {
	if catalog == nil {
		catalog = NewCatalog()
	}
	c := &Composer{
		catalog: catalog,
		logger:  logging.GetLogger().WithFields(logging.Component("di.composer")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog 返回目录
func (c *Composer) Catalog() *Catalog {
	return c.catalog
}

// ComposeContract 按契约组合目标，返回值的动态类型满足 target
func (c *Composer) ComposeContract(target Contract, seeds ...any) (any, error) {
	v, err := c.compose(target, seeds)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (c *Composer) compose(target Contract, seeds []any) (reflect.Value, error) {
	start := time.Now()
	v, scopeID, err := c.resolve(target, seeds)
	elapsed := time.Since(start)

	if c.observer != nil {
		c.observer.ObserveComposition(target, elapsed, err)
	}

	ctx := context.Background()
	if err != nil {
		c.logger.Warn(ctx, "组合失败",
			logging.String("target", target.String()),
			logging.String("error_code", string(errors.GetErrorCode(err))),
			logging.Error(err))
		return reflect.Value{}, err
	}
	c.logger.Debug(ctx, "组合完成",
		logging.String("scope", scopeID),
		logging.String("target", target.String()),
		logging.Int("seeds", len(seeds)),
		logging.Duration("elapsed", elapsed))
	return v, nil
}

func (c *Composer) resolve(target Contract, seeds []any) (reflect.Value, string, error) {
	if target.IsZero() {
		return reflect.Value{}, "", errors.NewError(errors.ErrCodeInvalidInput, "target contract cannot be empty")
	}
	s, err := newScope(c.catalog, seeds)
	if err != nil {
		return reflect.Value{}, "", err
	}
	v, err := s.resolve(target)
	return v, s.id, err
}

// Compose 组合类型 T 的实例
//
//	withdrawal, err := di.Compose[*composition.CashWithdrawal](composer, account, banking.Amount(120))
func Compose[T any](c *Composer, seeds ...any) (T, error) {
	var zero T
	v, err := c.compose(ContractOf[T](), seeds)
	if err != nil {
		return zero, err
	}
	typed, ok := v.Interface().(T)
	if !ok {
		return zero, errors.NewError(errors.ErrCodeInternal,
			fmt.Sprintf("composed value %s is not %s", v.Type(), ContractOf[T]()))
	}
	return typed, nil
}

// CastTo 把已构造的对象作为种子，重新解释为另一种角色 T
//
// 等价于 Compose[T](c, existing, extraSeeds...)。
func CastTo[T any](c *Composer, existing any, extraSeeds ...any) (T, error) {
	seeds := make([]any, 0, len(extraSeeds)+1)
	seeds = append(seeds, existing)
	seeds = append(seeds, extraSeeds...)
	return Compose[T](c, seeds...)
}

// MustCompose 组合类型 T 的实例（panic版本），用于示例程序
func MustCompose[T any](c *Composer, seeds ...any) T {
	v, err := Compose[T](c, seeds...)
	if err != nil {
		panic(err)
	}
	return v
}
