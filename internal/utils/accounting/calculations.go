package accounting

import (
	"fmt"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateEntryBalance checks that a journal entry's lines form a valid
// double-entry movement: at least two lines, every amount non-negative, exactly
// one side of each line set, and total debits equal to total credits.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero

	for _, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line amounts must not be negative for account %s", apperrors.ErrValidation, line.AccountID)
		}
		if line.DebitAmount.IsPositive() && line.CreditAmount.IsPositive() {
			return fmt.Errorf("%w: line for account %s sets both debit and credit", apperrors.ErrValidation, line.AccountID)
		}
		if line.DebitAmount.IsZero() && line.CreditAmount.IsZero() {
			return fmt.Errorf("%w: line for account %s has no amount", apperrors.ErrValidation, line.AccountID)
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: journal entry does not balance, debits %s vs credits %s",
			apperrors.ErrValidation, debits.String(), credits.String())
	}
	return nil
}

// NetLineAmount returns the signed balance contribution of a line for the given
// account type.
// Debit to ASSET/EXPENSE -> positive; credit -> negative.
// Credit to LIABILITY/EQUITY/REVENUE -> positive; debit -> negative.
func NetLineAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.DebitAmount.Sub(line.CreditAmount), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.CreditAmount.Sub(line.DebitAmount), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' for account %s", accountType, line.AccountID)
	}
}

// WalletMovement is one computed balance mutation plus its audit transaction,
// ready to be applied inside a locked database transaction.
type WalletMovement struct {
	WalletID    string
	NewBalance  decimal.Decimal
	Transaction domain.WalletTransaction
}

// BuildTransferMovements computes the debit/credit movements for a wallet
// transfer. A nil payer models an externally funded settlement: only the payee
// side is produced. Balances must have been read under row locks; the caller
// applies the movements in the same transaction that holds the locks.
func BuildTransferMovements(payer *domain.Wallet, payee domain.Wallet, amount decimal.Decimal, refType domain.ReferenceType, refID, description string) ([]WalletMovement, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	movements := make([]WalletMovement, 0, 2)

	if payer != nil {
		if payer.Balance.LessThan(amount) {
			return nil, fmt.Errorf("%w: wallet %s has %s, needs %s",
				apperrors.ErrInsufficientFunds, payer.WalletID, payer.Balance.String(), amount.String())
		}
		newBalance := payer.Balance.Sub(amount)
		movements = append(movements, WalletMovement{
			WalletID:   payer.WalletID,
			NewBalance: newBalance,
			Transaction: domain.WalletTransaction{
				WalletID:        payer.WalletID,
				TransactionType: domain.WalletTxnDebit,
				Amount:          amount,
				BalanceBefore:   payer.Balance,
				BalanceAfter:    newBalance,
				Status:          domain.WalletTxnCompleted,
				ReferenceType:   refType,
				ReferenceID:     refID,
				Description:     description,
			},
		})
	}

	payeeBalance := payee.Balance.Add(amount)
	movements = append(movements, WalletMovement{
		WalletID:   payee.WalletID,
		NewBalance: payeeBalance,
		Transaction: domain.WalletTransaction{
			WalletID:        payee.WalletID,
			TransactionType: domain.WalletTxnCredit,
			Amount:          amount,
			BalanceBefore:   payee.Balance,
			BalanceAfter:    payeeBalance,
			Status:          domain.WalletTxnCompleted,
			ReferenceType:   refType,
			ReferenceID:     refID,
			Description:     description,
		},
	})

	return movements, nil
}
