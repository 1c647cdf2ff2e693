// Package static 演示 RoleFor[T] 静态绑定：角色直接访问强类型账户，由组合代码显式赋值。
package static

import (
	"context"
	"fmt"

	"dci/banking"
	"dci/domain/role"
	"dci/report"
)

// Operation 操作记录（值对象）
type Operation struct {
	Amount      banking.Amount
	Description string
}

// Account 账户实体，追加操作时输出一行流水
type Account struct {
	Number     string
	operations []Operation
	journal    report.ISink
	format     banking.Formatter
}

// NewAccount 创建账户；journal 为 nil 时不输出流水
func NewAccount(number string, journal report.ISink, format banking.Formatter) *Account {
	return &Account{Number: number, journal: journal, format: format}
}

// Operations 返回操作副本
func (a *Account) Operations() []Operation {
	out := make([]Operation, len(a.operations))
	copy(out, a.operations)
	return out
}

// AddOperation 追加操作
func (a *Account) AddOperation(ctx context.Context, op Operation) error {
	a.operations = append(a.operations, op)
	if a.journal == nil {
		return nil
	}
	return report.Printf(ctx, a.journal, "%s: %s %s", a.Number, a.format.Amount(op.Amount), op.Description)
}

// AccountWithBalance 复用余额计算的中间角色
type AccountWithBalance struct {
	role.RoleFor[*Account]
}

// Balance 操作金额之和
func (a *AccountWithBalance) Balance() banking.Amount {
	var sum banking.Amount
	for _, op := range a.This().operations {
		sum += op.Amount
	}
	return sum
}

// SourceAccount MoneyTransfer 中的转出方
type SourceAccount struct {
	AccountWithBalance
}

// TransferTo 先检查余额，再记录转出并通知转入方
func (s *SourceAccount) TransferTo(ctx context.Context, amount banking.Amount, destination *DestinationAccount) error {
	if available := s.Balance(); available < amount {
		return banking.ErrInsufficientFunds(s.This().Number, available, amount)
	}
	if err := s.This().AddOperation(ctx, Operation{
		Amount:      -amount,
		Description: fmt.Sprintf("Transfer to %s", destination.Number()),
	}); err != nil {
		return err
	}
	return destination.AcceptTransferFrom(ctx, amount, s.This().Number)
}

// DestinationAccount MoneyTransfer 中的转入方
type DestinationAccount struct {
	role.RoleFor[*Account]
}

// Number 账号
func (d *DestinationAccount) Number() string {
	return d.This().Number
}

// AcceptTransferFrom 记录转入
func (d *DestinationAccount) AcceptTransferFrom(ctx context.Context, amount banking.Amount, sourceNumber string) error {
	return d.This().AddOperation(ctx, Operation{
		Amount:      amount,
		Description: fmt.Sprintf("Transfer from %s", sourceNumber),
	})
}

// BalanceInquiryAccount BalanceInquiry 中的账户角色
type BalanceInquiryAccount struct {
	AccountWithBalance
}

// ReportBalance 输出 "Balance of <number>: <balance>"
func (b *BalanceInquiryAccount) ReportBalance(ctx context.Context, sink report.ISink, format banking.Formatter) error {
	return report.Printf(ctx, sink, "Balance of %s: %s", b.This().Number, format.Amount(b.Balance()))
}
