// Package dynamic 演示属性包实体上的动态角色：余额查询与转账。
package dynamic

import (
	"dci/banking"
	"dci/domain/entity"
	"dci/domain/role"
)

// BalanceField 账户实体上的余额字段
const BalanceField = "Balance"

var balance = role.NewAttr[banking.Amount](BalanceField)

// NewAccount 创建带初始余额的账户实体
func NewAccount(id string, initial banking.Amount) *entity.Entity {
	e := entity.New(id)
	e.Set(BalanceField, initial)
	return e
}

// BalanceAccount CheckBalance 中的账户角色
type BalanceAccount struct {
	role.Role
}

// NewBalanceAccount 绑定实体
func NewBalanceAccount(e *entity.Entity) *BalanceAccount {
	return &BalanceAccount{Role: role.New(e)}
}

// Balance 当前余额
func (a *BalanceAccount) Balance() (banking.Amount, error) {
	return balance.Get(a.Role)
}

// SourceAccount TransferMoney 中的转出方
type SourceAccount struct {
	role.Role
}

// NewSourceAccount 绑定实体
func NewSourceAccount(e *entity.Entity) *SourceAccount {
	return &SourceAccount{Role: role.New(e)}
}

// Balance 当前余额
func (s *SourceAccount) Balance() (banking.Amount, error) {
	return balance.Get(s.Role)
}

// DecreaseBalanceBy 扣减余额
func (s *SourceAccount) DecreaseBalanceBy(amount banking.Amount) error {
	return balance.Update(s.Role, func(current banking.Amount) banking.Amount {
		return current - amount
	})
}

// DestinationAccount TransferMoney 中的转入方
type DestinationAccount struct {
	role.Role
}

// NewDestinationAccount 绑定实体
func NewDestinationAccount(e *entity.Entity) *DestinationAccount {
	return &DestinationAccount{Role: role.New(e)}
}

// Balance 当前余额
func (d *DestinationAccount) Balance() (banking.Amount, error) {
	return balance.Get(d.Role)
}

// IncreaseBalanceBy 增加余额
func (d *DestinationAccount) IncreaseBalanceBy(amount banking.Amount) error {
	return balance.Update(d.Role, func(current banking.Amount) banking.Amount {
		return current + amount
	})
}
