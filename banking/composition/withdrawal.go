package composition

import (
	"context"

	"dci/banking"
	"dci/di"
	"dci/domain"
	"dci/domain/usecase"
	"dci/validation"
)

// CashWithdrawal 取现上下文
type CashWithdrawal struct {
	usecase.Once

	Account *WithdrawableAccount `inject:""`
	Amount  banking.Amount       `inject:""`
}

// OnImportsSatisfied 实现 di.IComposed
func (c *CashWithdrawal) OnImportsSatisfied() error {
	return c.Validate()
}

// Validate 实现 domain.IValidatable
func (c *CashWithdrawal) Validate() error {
	return validation.ValidatePositive(int64(c.Amount), "amount")
}

// Trigger 执行取现
func (c *CashWithdrawal) Trigger() error {
	if err := c.Begin(); err != nil {
		return err
	}
	return c.Account.Withdraw(c.Amount)
}

// Execute 实现 usecase.IContext
func (c *CashWithdrawal) Execute(context.Context) error {
	return c.Trigger()
}

// Module 登记取现相关部件
type Module struct{}

var _ domain.IModule = Module{}

// Name 实现 domain.IModule
func (Module) Name() string { return "banking.composition" }

// RegisterParts 实现 domain.IModule
func (Module) RegisterParts(catalog *di.Catalog) error {
	for _, prototype := range []any{
		(*AccountWithBalance)(nil),
		(*WithdrawableAccount)(nil),
		(*CashWithdrawal)(nil),
	} {
		if err := catalog.ProvideStruct(prototype); err != nil {
			return err
		}
	}
	return nil
}

// NewComposer 创建装配好本模块的 Composer
func NewComposer(opts ...di.Option) (*di.Composer, error) {
	catalog, err := domain.BuildCatalog(Module{})
	if err != nil {
		return nil, err
	}
	return di.NewComposer(catalog, opts...), nil
}
