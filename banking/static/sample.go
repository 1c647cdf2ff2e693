package static

import (
	"context"

	"dci/banking"
)

// Run 账户 1001 存入 2000，向 1002 转账 1550，前后各查询一次余额
func Run(ctx context.Context, env banking.Env) error {
	env = env.WithDefaults()

	source := NewAccount("1001", env.Sink, env.Formatter)
	if err := source.AddOperation(ctx, Operation{Amount: 2000, Description: "Deposit"}); err != nil {
		return err
	}
	destination := NewAccount("1002", env.Sink, env.Formatter)

	inquire := func() error {
		for _, account := range []*Account{source, destination} {
			if err := env.Runner.Run(ctx, "BalanceInquiry", NewBalanceInquiry(account, env.Sink, env.Formatter)); err != nil {
				return err
			}
		}
		return nil
	}

	if err := inquire(); err != nil {
		return err
	}
	if err := env.Runner.Run(ctx, "MoneyTransfer", NewMoneyTransfer(source, destination, 1550)); err != nil {
		return err
	}
	return inquire()
}
