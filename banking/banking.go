// Package banking 是角色组合工具包的示例领域：账户余额查询、转账与取现。
//
// 三个子包分别演示三种绑定方式：
//   - dynamic：属性包实体 + 动态角色
//   - composition：通过 di.Composer 按类型组合角色与上下文
//   - static：RoleFor[T] 静态绑定
package banking

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dci/di"
	"dci/domain/usecase"
	"dci/errors"
	"dci/report"
)

// Amount 金额，整数最小货币单位
type Amount int64

// ErrInsufficientFunds 余额不足；accountID 为空时不记录账户
func ErrInsufficientFunds(accountID string, balance, amount Amount) error {
	err := errors.NewError(errors.ErrCodeInsufficientFunds, "insufficient funds").
		WithContext("balance", int64(balance)).
		WithContext("amount", int64(amount))
	if accountID != "" {
		err = err.WithContext("account", accountID)
	}
	return err
}

// Formatter 按区域格式化金额
type Formatter struct {
	printer *message.Printer
}

// NewFormatter 创建格式化器；无法识别的 locale 回退到英语
func NewFormatter(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{printer: message.NewPrinter(tag)}
}

// Amount 格式化金额（带千分位）
func (f Formatter) Amount(a Amount) string {
	if f.printer == nil {
		return fmt.Sprintf("%d", int64(a))
	}
	return f.printer.Sprintf("%d", int64(a))
}

// Env 示例运行环境
type Env struct {
	Sink            report.ISink
	Formatter       Formatter
	Runner          *usecase.Runner
	ComposerOptions []di.Option
}

// WithDefaults 补齐未设置的字段
func (e Env) WithDefaults() Env {
	if e.Sink == nil {
		e.Sink = report.NewWriterSink(nil)
	}
	if e.Formatter.printer == nil {
		e.Formatter = NewFormatter("en")
	}
	if e.Runner == nil {
		e.Runner = usecase.NewRunner()
	}
	return e
}
