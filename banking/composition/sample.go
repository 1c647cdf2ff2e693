package composition

import (
	"context"

	"dci/banking"
	"dci/di"
	"dci/report"
)

// Run 初始存款 300，取现 120，输出全部操作记录
func Run(ctx context.Context, env banking.Env) error {
	env = env.WithDefaults()
	composer, err := NewComposer(env.ComposerOptions...)
	if err != nil {
		return err
	}

	account := NewAccount(300)
	withdrawal, err := di.Compose[*CashWithdrawal](composer, account, banking.Amount(120))
	if err != nil {
		return err
	}
	if err := env.Runner.Run(ctx, "CashWithdrawal", withdrawal); err != nil {
		return err
	}

	for _, op := range account.Operations {
		if err := report.Printf(ctx, env.Sink, "%s %s", env.Formatter.Amount(op.Amount), op.Description); err != nil {
			return err
		}
	}

	balance, err := di.CastTo[*AccountWithBalance](composer, account)
	if err != nil {
		return err
	}
	return report.Printf(ctx, env.Sink, "Balance: %s", env.Formatter.Amount(balance.Balance()))
}
