package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Well-known chart-of-accounts codes provisioned lazily on first use.
const (
	AccountCodeCash           = "1010"
	AccountCodeServiceRevenue = "4010"
	AccountCodeCommissions    = "5010"
	AccountCodePayroll        = "5020"
	AccountCodeOperatingExp   = "5100"
)

// Account is a single entry in a salon's chart of accounts.
// Code is unique per salon; accounts are provisioned lazily by get-or-create
// and are never deleted while journal lines reference them.
type Account struct {
	AccountID       string      `json:"accountID"`
	SalonID         string      `json:"salonID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Nullable self-reference
	IsActive        bool        `json:"isActive"`
	AuditFields
}
