// Package composition 演示通过 di.Composer 组合角色：
// 账户实体是一组操作记录，余额、可取现账户、取现上下文都是按类型注入的部件。
package composition

import (
	"time"

	"github.com/google/uuid"

	"dci/banking"
	"dci/errors"
)

// Operation 账户操作记录
type Operation struct {
	ID          string
	Amount      banking.Amount
	Description string
	Timestamp   time.Time
}

// Account 账户实体，只保存操作记录
type Account struct {
	Operations []Operation
}

// NewAccount 创建账户并记录初始存款
func NewAccount(initialDeposit banking.Amount) *Account {
	a := &Account{}
	a.Add(initialDeposit, "Initial deposit")
	return a
}

// Add 追加操作
func (a *Account) Add(amount banking.Amount, description string) Operation {
	op := Operation{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: description,
		Timestamp:   time.Now(),
	}
	a.Operations = append(a.Operations, op)
	return op
}

// AccountWithBalance 余额视图角色
type AccountWithBalance struct {
	Account *Account `inject:""`
}

// Balance 操作金额之和
func (a *AccountWithBalance) Balance() banking.Amount {
	var sum banking.Amount
	for _, op := range a.Account.Operations {
		sum += op.Amount
	}
	return sum
}

// WithdrawableAccount 可取现账户角色
type WithdrawableAccount struct {
	Account *Account            `inject:""`
	Balance *AccountWithBalance `inject:""`
}

// Withdraw 余额不足时不追加任何操作
func (w *WithdrawableAccount) Withdraw(amount banking.Amount) error {
	if available := w.Balance.Balance(); available < amount {
		return banking.ErrInsufficientFunds("", available, amount)
	}
	w.Account.Add(-amount, "Cash withdrawal")
	return nil
}

// OnImportsSatisfied 实现 di.IComposed
func (w *WithdrawableAccount) OnImportsSatisfied() error {
	if w.Balance.Account != w.Account {
		return errors.NewError(errors.ErrCodeDependency, "balance view is bound to a different account")
	}
	return nil
}
