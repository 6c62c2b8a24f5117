package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one bucket of the expense summary.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// PaymentMethodTotal aggregates expense amounts by funding method.
type PaymentMethodTotal struct {
	PaymentMethod string          `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
}

// ExpenseSummary unions manual expenses, commission payouts, journal expense
// lines, paid payroll runs, and wallet fee transactions into one view.
type ExpenseSummary struct {
	TotalExpenses   decimal.Decimal      `json:"totalExpenses"`
	ExpenseCount    int                  `json:"expenseCount"`
	ByCategory      []CategoryTotal      `json:"byCategory"`
	ByPaymentMethod []PaymentMethodTotal `json:"byPaymentMethod"`
}

// FinancialSummary is the revenue/expense net-income view.
type FinancialSummary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	Expenses      *ExpenseSummary `json:"expenses,omitempty"`
}

// DailyFinancial is one calendar-day bucket of revenue and expenses.
// Date is a YYYY-MM-DD key; days with no activity are absent, not zero-filled.
type DailyFinancial struct {
	Date      string          `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"netIncome"`
}

// LedgerRow is one chronological line of the accounting ledger export.
type LedgerRow struct {
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"` // sale, expense, commission, payroll, fee
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IsOutflow   bool            `json:"isOutflow"`
}

// BalanceSheetLine is one account's position on the balance sheet.
type BalanceSheetLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Synthetic   bool            `json:"synthetic"` // derived line, not backed by an account
}

// BalanceSheetReport always balances: when posted assets fall short of
// liabilities + equity, a synthetic cash line covers the gap and Discrepancy
// records how much reconciliation was needed.
type BalanceSheetReport struct {
	AsOf             time.Time          `json:"asOf"`
	Assets           []BalanceSheetLine `json:"assets"`
	Liabilities      []BalanceSheetLine `json:"liabilities"`
	Equity           []BalanceSheetLine `json:"equity"`
	TotalAssets      decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal    `json:"totalEquity"`
	Discrepancy      decimal.Decimal    `json:"discrepancy"`
}

// PAndLReport is the profit-and-loss view over a period.
type PAndLReport struct {
	From          time.Time          `json:"from"`
	To            time.Time          `json:"to"`
	Revenue       []BalanceSheetLine `json:"revenue"`
	Expenses      []BalanceSheetLine `json:"expenses"`
	TotalRevenue  decimal.Decimal    `json:"totalRevenue"`
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	NetProfit     decimal.Decimal    `json:"netProfit"`
}

// DatedAmount is a timestamped amount from one of the aggregator's sources.
type DatedAmount struct {
	Date   time.Time
	Amount decimal.Decimal
}

// ExpenseRecord is a normalized expense row from any of the five expense
// sources, carrying enough to bucket by category and payment method.
type ExpenseRecord struct {
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod string
}

// AccountBalanceRow is one account's summed postings as of a date.
type AccountBalanceRow struct {
	AccountID   string
	AccountCode string
	Name        string
	AccountType AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}
