package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletTransactionType classifies a single wallet movement.
type WalletTransactionType string

const (
	WalletTxnCredit WalletTransactionType = "CREDIT"
	WalletTxnDebit  WalletTransactionType = "DEBIT"
	WalletTxnFee    WalletTransactionType = "FEE"
)

// WalletTransactionStatus is the lifecycle state of a wallet transaction row.
type WalletTransactionStatus string

const (
	WalletTxnCompleted WalletTransactionStatus = "COMPLETED"
	WalletTxnReversed  WalletTransactionStatus = "REVERSED"
)

// Wallet holds a user's stored balance. One wallet per user, created lazily.
// Balance mutation happens exclusively through locked, transactional transfers.
type Wallet struct {
	WalletID     string          `json:"walletID"`
	UserID       string          `json:"userID"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	AuditFields
}

// WalletTransaction is one append-only movement against a wallet.
// BalanceAfter must always equal BalanceBefore plus or minus Amount, so history
// is auditable without replaying all prior transactions.
type WalletTransaction struct {
	TransactionID   string                  `json:"transactionID"`
	WalletID        string                  `json:"walletID"`
	TransactionType WalletTransactionType   `json:"transactionType"`
	Amount          decimal.Decimal         `json:"amount"` // always positive
	BalanceBefore   decimal.Decimal         `json:"balanceBefore"`
	BalanceAfter    decimal.Decimal         `json:"balanceAfter"`
	Status          WalletTransactionStatus `json:"status"`
	ReferenceType   ReferenceType           `json:"referenceType"`
	ReferenceID     string                  `json:"referenceID"`
	Description     string                  `json:"description"`
	CreatedAt       time.Time               `json:"createdAt"`
}
