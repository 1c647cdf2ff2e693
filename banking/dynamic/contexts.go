package dynamic

import (
	"context"

	"dci/banking"
	"dci/domain/entity"
	"dci/domain/usecase"
	"dci/errors"
	"dci/report"
	"dci/validation"
)

// CheckBalance 余额查询上下文，只读，可重复执行
type CheckBalance struct {
	Account *BalanceAccount
	sink    report.ISink
	format  banking.Formatter
}

// NewCheckBalance 构造函数，同时作为目录部件
func NewCheckBalance(account *BalanceAccount, sink report.ISink, format banking.Formatter) *CheckBalance {
	return &CheckBalance{Account: account, sink: sink, format: format}
}

// Execute 输出 "<id>: <balance>"
func (c *CheckBalance) Execute(ctx context.Context) error {
	current, err := c.Account.Balance()
	if err != nil {
		return err
	}
	return report.Printf(ctx, c.sink, "%s: %s", c.Account.GetID(), c.format.Amount(current))
}

// TransferMoney 转账上下文，只能执行一次
type TransferMoney struct {
	usecase.Once

	Source      *SourceAccount
	Destination *DestinationAccount
	Amount      banking.Amount
}

// NewTransferMoney 直接绑定两个实体
//
// 两个参与者都是 *entity.Entity，按类型无法区分，因此不经过 Composer。
func NewTransferMoney(source, destination *entity.Entity, amount banking.Amount) *TransferMoney {
	return &TransferMoney{
		Source:      NewSourceAccount(source),
		Destination: NewDestinationAccount(destination),
		Amount:      amount,
	}
}

// Validate 实现 domain.IValidatable
func (t *TransferMoney) Validate() error {
	if t.Source == nil || t.Destination == nil {
		return errors.NewError(errors.ErrCodeValidation, "transfer requires source and destination")
	}
	return validation.ValidatePositive(int64(t.Amount), "amount")
}

// Execute 先检查全部前置条件，再依次扣减和增加
func (t *TransferMoney) Execute(ctx context.Context) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := t.Begin(); err != nil {
		return err
	}

	available, err := t.Source.Balance()
	if err != nil {
		return err
	}
	if available < t.Amount {
		return banking.ErrInsufficientFunds(t.Source.GetID(), available, t.Amount)
	}
	if _, err := t.Destination.Balance(); err != nil {
		return err
	}

	if err := t.Source.DecreaseBalanceBy(t.Amount); err != nil {
		return err
	}
	return t.Destination.IncreaseBalanceBy(t.Amount)
}
