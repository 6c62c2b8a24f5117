package accounting_test

import (
	"testing"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/glowslot/salon_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(accountID string, debit, credit int64) domain.JournalLine {
	return domain.JournalLine{
		AccountID:    accountID,
		DebitAmount:  decimal.NewFromInt(debit),
		CreditAmount: decimal.NewFromInt(credit),
	}
}

func TestValidateEntryBalance_Valid(t *testing.T) {
	lines := []domain.JournalLine{
		line("acc-1", 100, 0),
		line("acc-2", 0, 100),
	}
	assert.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_ValidSplit(t *testing.T) {
	lines := []domain.JournalLine{
		line("acc-1", 100, 0),
		line("acc-2", 0, 60),
		line("acc-3", 0, 40),
	}
	assert.NoError(t, accounting.ValidateEntryBalance(lines))
}

func TestValidateEntryBalance_TooFewLines(t *testing.T) {
	err := accounting.ValidateEntryBalance([]domain.JournalLine{line("acc-1", 100, 0)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		line("acc-1", 100, 0),
		line("acc-2", 0, 90),
	}
	err := accounting.ValidateEntryBalance(lines)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntryBalance_BothSidesSet(t *testing.T) {
	lines := []domain.JournalLine{
		line("acc-1", 100, 100),
		line("acc-2", 0, 0),
	}
	err := accounting.ValidateEntryBalance(lines)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntryBalance_NegativeAmount(t *testing.T) {
	lines := []domain.JournalLine{
		line("acc-1", -100, 0),
		line("acc-2", 0, -100),
	}
	err := accounting.ValidateEntryBalance(lines)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNetLineAmount(t *testing.T) {
	debitLine := line("acc-1", 50, 0)
	creditLine := line("acc-2", 0, 50)

	got, err := accounting.NetLineAmount(debitLine, domain.Asset)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(50)))

	got, err = accounting.NetLineAmount(creditLine, domain.Asset)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(-50)))

	got, err = accounting.NetLineAmount(creditLine, domain.Revenue)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(50)))

	_, err = accounting.NetLineAmount(debitLine, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestBuildTransferMovements_PayerAndPayee(t *testing.T) {
	payer := domain.Wallet{WalletID: "w-payer", Balance: decimal.NewFromInt(500)}
	payee := domain.Wallet{WalletID: "w-payee", Balance: decimal.NewFromInt(20)}

	movements, err := accounting.BuildTransferMovements(&payer, payee, decimal.NewFromInt(150),
		domain.RefCommission, "comm-1", "commission payout")
	require.NoError(t, err)
	require.Len(t, movements, 2)

	debit := movements[0]
	assert.Equal(t, "w-payer", debit.WalletID)
	assert.True(t, debit.NewBalance.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, domain.WalletTxnDebit, debit.Transaction.TransactionType)
	assert.True(t, debit.Transaction.BalanceBefore.Equal(decimal.NewFromInt(500)))
	assert.True(t, debit.Transaction.BalanceAfter.Equal(decimal.NewFromInt(350)))

	credit := movements[1]
	assert.Equal(t, "w-payee", credit.WalletID)
	assert.True(t, credit.NewBalance.Equal(decimal.NewFromInt(170)))
	assert.Equal(t, domain.WalletTxnCredit, credit.Transaction.TransactionType)
	assert.True(t, credit.Transaction.BalanceBefore.Equal(decimal.NewFromInt(20)))
	assert.True(t, credit.Transaction.BalanceAfter.Equal(decimal.NewFromInt(170)))
	assert.Equal(t, domain.RefCommission, credit.Transaction.ReferenceType)
	assert.Equal(t, "comm-1", credit.Transaction.ReferenceID)
}

func TestBuildTransferMovements_NilPayer(t *testing.T) {
	payee := domain.Wallet{WalletID: "w-payee", Balance: decimal.NewFromInt(10)}

	movements, err := accounting.BuildTransferMovements(nil, payee, decimal.NewFromInt(30),
		domain.RefCommission, "comm-2", "mobile money payout")
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "w-payee", movements[0].WalletID)
	assert.True(t, movements[0].NewBalance.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, domain.WalletTxnCredit, movements[0].Transaction.TransactionType)
}

func TestBuildTransferMovements_InsufficientFunds(t *testing.T) {
	payer := domain.Wallet{WalletID: "w-payer", Balance: decimal.NewFromInt(10)}
	payee := domain.Wallet{WalletID: "w-payee", Balance: decimal.Zero}

	_, err := accounting.BuildTransferMovements(&payer, payee, decimal.NewFromInt(11),
		domain.RefCommission, "comm-3", "")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
}

func TestBuildTransferMovements_NonPositiveAmount(t *testing.T) {
	payee := domain.Wallet{WalletID: "w-payee", Balance: decimal.Zero}

	_, err := accounting.BuildTransferMovements(nil, payee, decimal.Zero, domain.RefCommission, "comm-4", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = accounting.BuildTransferMovements(nil, payee, decimal.NewFromInt(-5), domain.RefCommission, "comm-5", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
