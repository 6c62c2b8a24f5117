package dto

import (
	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseSummaryResponse is the expense breakdown report payload.
type ExpenseSummaryResponse struct {
	TotalExpenses   decimal.Decimal             `json:"totalExpenses"`
	ExpenseCount    int                         `json:"expenseCount"`
	ByCategory      []domain.CategoryTotal      `json:"byCategory"`
	ByPaymentMethod []domain.PaymentMethodTotal `json:"byPaymentMethod"`
}

// FinancialSummaryResponse is the revenue/expense net-income payload.
type FinancialSummaryResponse struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetLineResponse is one line of the balance sheet payload.
type BalanceSheetLineResponse struct {
	AccountID   string          `json:"accountID,omitempty"`
	AccountCode string          `json:"accountCode,omitempty"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Synthetic   bool            `json:"synthetic,omitempty"`
}

// BalanceSheetResponse is the balance sheet payload.
type BalanceSheetResponse struct {
	AsOf        string                     `json:"asOf"`
	Assets      []BalanceSheetLineResponse `json:"assets"`
	Liabilities []BalanceSheetLineResponse `json:"liabilities"`
	Equity      []BalanceSheetLineResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		Discrepancy      decimal.Decimal `json:"discrepancy"`
	} `json:"summary"`
}

// ProfitAndLossResponse is the P&L payload.
type ProfitAndLossResponse struct {
	FromDate string                     `json:"fromDate"`
	ToDate   string                     `json:"toDate"`
	Revenue  []BalanceSheetLineResponse `json:"revenue"`
	Expenses []BalanceSheetLineResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

func toLineResponses(lines []domain.BalanceSheetLine) []BalanceSheetLineResponse {
	res := make([]BalanceSheetLineResponse, len(lines))
	for i, line := range lines {
		res[i] = BalanceSheetLineResponse{
			AccountID:   line.AccountID,
			AccountCode: line.AccountCode,
			Name:        line.Name,
			Amount:      line.Amount,
			Synthetic:   line.Synthetic,
		}
	}
	return res
}

// ToBalanceSheetResponse converts a domain balance sheet report to its payload.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      toLineResponses(report.Assets),
		Liabilities: toLineResponses(report.Liabilities),
		Equity:      toLineResponses(report.Equity),
	}
	resp.Summary.TotalAssets = report.TotalAssets
	resp.Summary.TotalLiabilities = report.TotalLiabilities
	resp.Summary.TotalEquity = report.TotalEquity
	resp.Summary.Discrepancy = report.Discrepancy
	return resp
}

// ToProfitAndLossResponse converts a domain P&L report to its payload.
func ToProfitAndLossResponse(report *domain.PAndLReport) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: report.From.Format("2006-01-02"),
		ToDate:   report.To.Format("2006-01-02"),
		Revenue:  toLineResponses(report.Revenue),
		Expenses: toLineResponses(report.Expenses),
	}
	resp.Summary.TotalRevenue = report.TotalRevenue
	resp.Summary.TotalExpenses = report.TotalExpenses
	resp.Summary.NetProfit = report.NetProfit
	return resp
}
