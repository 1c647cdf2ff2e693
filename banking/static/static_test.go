package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dci/banking"
	"dci/domain/usecase"
	"dci/errors"
	"dci/logging"
	"dci/report"
)

var en = banking.NewFormatter("en")

func balanceOf(a *Account) banking.Amount {
	view := &AccountWithBalance{}
	view.SetThis(a)
	return view.Balance()
}

func TestMoneyTransfer(t *testing.T) {
	ctx := context.Background()
	journal := report.NewMemorySink()
	source := NewAccount("1001", journal, en)
	require.NoError(t, source.AddOperation(ctx, Operation{Amount: 2000, Description: "Deposit"}))
	destination := NewAccount("1002", journal, en)

	require.NoError(t, NewMoneyTransfer(source, destination, 1550).Execute(ctx))
	assert.Equal(t, banking.Amount(450), balanceOf(source))
	assert.Equal(t, banking.Amount(1550), balanceOf(destination))

	assert.Equal(t, []string{
		"1001: 2,000 Deposit",
		"1001: -1,550 Transfer to 1002",
		"1002: 1,550 Transfer from 1001",
	}, journal.Lines())
	assert.Equal(t, "Transfer from 1001", destination.Operations()[0].Description)
}

func TestMoneyTransfer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	source := NewAccount("1001", nil, en)
	require.NoError(t, source.AddOperation(ctx, Operation{Amount: 100, Description: "Deposit"}))
	destination := NewAccount("1002", nil, en)

	err := NewMoneyTransfer(source, destination, 101).Execute(ctx)
	assert.True(t, errors.IsInsufficientFunds(err))
	assert.Len(t, source.Operations(), 1)
	assert.Empty(t, destination.Operations())
}

func TestMoneyTransfer_Validation(t *testing.T) {
	ctx := context.Background()
	account := NewAccount("1001", nil, en)

	err := NewMoneyTransfer(account, NewAccount("1002", nil, en), 0).Execute(ctx)
	assert.True(t, errors.IsValidation(err))

	err = NewMoneyTransfer(account, nil, 10).Execute(ctx)
	assert.True(t, errors.IsValidation(err))
}

func TestMoneyTransfer_SingleUse(t *testing.T) {
	ctx := context.Background()
	source := NewAccount("1001", nil, en)
	require.NoError(t, source.AddOperation(ctx, Operation{Amount: 100, Description: "Deposit"}))

	transfer := NewMoneyTransfer(source, NewAccount("1002", nil, en), 10)
	require.NoError(t, transfer.Execute(ctx))
	assert.True(t, errors.IsErrorCode(transfer.Execute(ctx), errors.ErrCodeAlreadyExecuted))
	assert.Equal(t, banking.Amount(90), balanceOf(source))
}

func TestBalanceInquiry(t *testing.T) {
	ctx := context.Background()
	sink := report.NewMemorySink()
	account := NewAccount("1001", nil, en)
	require.NoError(t, account.AddOperation(ctx, Operation{Amount: 2000, Description: "Deposit"}))

	inquiry := NewBalanceInquiry(account, sink, en)
	require.NoError(t, inquiry.Execute(ctx))
	require.NoError(t, inquiry.Execute(ctx))
	assert.Equal(t, []string{"Balance of 1001: 2,000", "Balance of 1001: 2,000"}, sink.Lines())
}

func TestRun(t *testing.T) {
	sink := report.NewMemorySink()
	env := banking.Env{
		Sink:      sink,
		Formatter: en,
		Runner:    usecase.NewRunner(usecase.WithLogger(logging.NewNoopLogger())),
	}

	require.NoError(t, Run(context.Background(), env))
	assert.Equal(t, []string{
		"1001: 2,000 Deposit",
		"Balance of 1001: 2,000",
		"Balance of 1002: 0",
		"1001: -1,550 Transfer to 1002",
		"1002: 1,550 Transfer from 1001",
		"Balance of 1001: 450",
		"Balance of 1002: 1,550",
	}, sink.Lines())
}
