package domain

import "time"

// SettlementItem pairs a commission with the wallet that receives its payout.
type SettlementItem struct {
	Commission    Commission
	PayeeWalletID string
}

// CommissionSettlement describes one atomic settlement: the payer wallet to
// debit (nil when the payout was funded outside the system), the commissions to
// flip to paid, and the payment metadata to stamp on them. All wallet movements
// and commission updates commit together or not at all.
type CommissionSettlement struct {
	PayerWalletID *string
	Items         []SettlementItem
	Details       CommissionPaymentDetails
	SettledByID   string
	SettledAt     time.Time
}
