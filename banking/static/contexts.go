package static

import (
	"context"

	"dci/banking"
	"dci/domain/usecase"
	"dci/errors"
	"dci/report"
	"dci/validation"
)

// MoneyTransfer 转账上下文
type MoneyTransfer struct {
	usecase.Once

	Source      *SourceAccount
	Destination *DestinationAccount
	Amount      banking.Amount
}

// NewMoneyTransfer 把两个账户分别绑定到转出、转入角色
func NewMoneyTransfer(source, destination *Account, amount banking.Amount) *MoneyTransfer {
	t := &MoneyTransfer{
		Source:      &SourceAccount{},
		Destination: &DestinationAccount{},
		Amount:      amount,
	}
	t.Source.SetThis(source)
	t.Destination.SetThis(destination)
	return t
}

// Validate 实现 domain.IValidatable
func (t *MoneyTransfer) Validate() error {
	if t.Source == nil || t.Source.This() == nil || t.Destination == nil || t.Destination.This() == nil {
		return errors.NewError(errors.ErrCodeValidation, "transfer requires source and destination accounts")
	}
	return validation.ValidatePositive(int64(t.Amount), "amount")
}

// Execute 实现 usecase.IContext
func (t *MoneyTransfer) Execute(ctx context.Context) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := t.Begin(); err != nil {
		return err
	}
	return t.Source.TransferTo(ctx, t.Amount, t.Destination)
}

// BalanceInquiry 余额查询上下文
type BalanceInquiry struct {
	Account *BalanceInquiryAccount
	sink    report.ISink
	format  banking.Formatter
}

// NewBalanceInquiry 绑定账户
func NewBalanceInquiry(account *Account, sink report.ISink, format banking.Formatter) *BalanceInquiry {
	inquiry := &BalanceInquiry{Account: &BalanceInquiryAccount{}, sink: sink, format: format}
	inquiry.Account.SetThis(account)
	return inquiry
}

// Execute 实现 usecase.IContext
func (b *BalanceInquiry) Execute(ctx context.Context) error {
	return b.Account.ReportBalance(ctx, b.sink, b.format)
}
