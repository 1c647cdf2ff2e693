package dynamic

import (
	"context"
	"fmt"

	"dci/banking"
	"dci/config"
	"dci/di"
	"dci/domain"
	"dci/domain/entity"
	"dci/errors"
	"dci/report"
)

// Module 登记余额查询所需的部件
type Module struct{}

var _ domain.IModule = Module{}

// Name 实现 domain.IModule
func (Module) Name() string { return "banking.dynamic" }

// RegisterParts 实现 domain.IModule
func (Module) RegisterParts(catalog *di.Catalog) error {
	if err := catalog.Provide(NewBalanceAccount); err != nil {
		return err
	}
	return catalog.Provide(NewCheckBalance)
}

// DefaultFixture 两个各 1000 的账户，转账 350
func DefaultFixture() *config.Fixture {
	return &config.Fixture{
		Accounts: []config.AccountFixture{
			{ID: "account/1", Balance: 1000},
			{ID: "account/2", Balance: 1000},
		},
		Transfers: []config.TransferFixture{
			{From: "account/1", To: "account/2", Amount: 350},
		},
	}
}

// Run 使用默认夹具运行示例
func Run(ctx context.Context, env banking.Env) error {
	return RunFixture(ctx, env, DefaultFixture())
}

// RunFixture 按夹具创建实体，输出转账前后的余额
//
// 余额不足的转账只报告，不中断示例；其它错误直接返回。
func RunFixture(ctx context.Context, env banking.Env, fixture *config.Fixture) error {
	env = env.WithDefaults()
	catalog, err := domain.BuildCatalog(Module{})
	if err != nil {
		return err
	}
	composer := di.NewComposer(catalog, env.ComposerOptions...)

	accounts := make([]*entity.Entity, 0, len(fixture.Accounts))
	byID := make(map[string]*entity.Entity, len(fixture.Accounts))
	for _, a := range fixture.Accounts {
		e := NewAccount(a.ID, banking.Amount(a.Balance))
		accounts = append(accounts, e)
		byID[a.ID] = e
	}

	checkAll := func(title string) error {
		if err := env.Sink.WriteLine(ctx, title); err != nil {
			return err
		}
		for _, account := range accounts {
			check, err := di.Compose[*CheckBalance](composer, account, di.As[report.ISink](env.Sink), env.Formatter)
			if err != nil {
				return err
			}
			if err := env.Runner.Run(ctx, "CheckBalance", check); err != nil {
				return err
			}
		}
		return nil
	}

	if err := checkAll("Balances before transfer:"); err != nil {
		return err
	}
	for _, t := range fixture.Transfers {
		source, destination := byID[t.From], byID[t.To]
		if source == nil || destination == nil {
			return errors.NewError(errors.ErrCodeNotFound,
				fmt.Sprintf("transfer %s -> %s references unknown account", t.From, t.To))
		}
		transfer := NewTransferMoney(source, destination, banking.Amount(t.Amount))
		err := env.Runner.Run(ctx, "TransferMoney", transfer)
		if errors.IsInsufficientFunds(err) {
			err = report.Printf(ctx, env.Sink, "Transfer of %s from %s to %s failed: insufficient funds",
				env.Formatter.Amount(transfer.Amount), t.From, t.To)
		}
		if err != nil {
			return err
		}
	}
	return checkAll("Balances after transfer:")
}
