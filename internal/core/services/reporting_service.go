package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const dayKeyFormat = "2006-01-02"

// reportingService provides the financial aggregator. Every report derives
// from the same source queries so revenue and expense figures stay consistent
// across views.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// expenseSource pairs normalized expense rows with the ledger row type they
// surface as.
type expenseSource struct {
	rowType string
	records []domain.ExpenseRecord
}

// collectExpenseSources loads the five expense feeds. A category filter
// narrows to the manual and journal sources, the only two that carry
// categories; the other feeds are excluded entirely in that case.
func (s *reportingService) collectExpenseSources(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) ([]expenseSource, error) {
	manual, err := s.reportingRepo.GetManualExpenseRecords(ctx, salonID, start, end, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load manual expenses: %w", err)
	}
	journal, err := s.reportingRepo.GetJournalExpenseRecords(ctx, salonID, start, end, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal expenses: %w", err)
	}

	sources := []expenseSource{
		{rowType: "expense", records: manual},
		{rowType: "expense", records: journal},
	}
	if categoryID != nil {
		return sources, nil
	}

	commissions, err := s.reportingRepo.GetCommissionPayoutRecords(ctx, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load commission payouts: %w", err)
	}
	payroll, err := s.reportingRepo.GetPaidPayrollRecords(ctx, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll records: %w", err)
	}
	fees, err := s.reportingRepo.GetWalletFeeRecords(ctx, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet fees: %w", err)
	}

	sources = append(sources,
		expenseSource{rowType: "commission", records: commissions},
		expenseSource{rowType: "payroll", records: payroll},
		expenseSource{rowType: "fee", records: fees},
	)
	return sources, nil
}

// GetExpenseSummary unions all expense feeds into total, per-category, and
// per-payment-method views.
func (s *reportingService) GetExpenseSummary(ctx context.Context, salonID string, start, end *time.Time, categoryID *string) (*domain.ExpenseSummary, error) {
	sources, err := s.collectExpenseSources(ctx, salonID, start, end, categoryID)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExpenseSummary{TotalExpenses: decimal.Zero}
	categoryTotals := make(map[string]*domain.CategoryTotal)
	methodTotals := make(map[string]decimal.Decimal)

	for _, source := range sources {
		for _, record := range source.records {
			summary.TotalExpenses = summary.TotalExpenses.Add(record.Amount)
			summary.ExpenseCount++

			category := record.Category
			if category == "" {
				category = "Uncategorized"
			}
			bucket, found := categoryTotals[category]
			if !found {
				bucket = &domain.CategoryTotal{Category: category, Total: decimal.Zero}
				categoryTotals[category] = bucket
			}
			bucket.Total = bucket.Total.Add(record.Amount)
			bucket.Count++

			method := record.PaymentMethod
			if method == "" {
				method = "other"
			}
			methodTotals[method] = methodTotals[method].Add(record.Amount)
		}
	}

	summary.ByCategory = make([]domain.CategoryTotal, 0, len(categoryTotals))
	for _, bucket := range categoryTotals {
		summary.ByCategory = append(summary.ByCategory, *bucket)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
	})

	summary.ByPaymentMethod = make([]domain.PaymentMethodTotal, 0, len(methodTotals))
	for method, total := range methodTotals {
		summary.ByPaymentMethod = append(summary.ByPaymentMethod, domain.PaymentMethodTotal{
			PaymentMethod: method,
			Total:         total,
		})
	}
	sort.Slice(summary.ByPaymentMethod, func(i, j int) bool {
		return summary.ByPaymentMethod[i].Total.GreaterThan(summary.ByPaymentMethod[j].Total)
	})

	return summary, nil
}

// collectRevenue loads completed-sale totals plus revenue journal lines that
// do not reference sales, so a sale never counts twice.
func (s *reportingService) collectRevenue(ctx context.Context, salonID string, start, end *time.Time) ([]domain.DatedAmount, error) {
	sales, err := s.reportingRepo.GetSalesTotals(ctx, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales totals: %w", err)
	}
	journal, err := s.reportingRepo.GetRevenueJournalAmounts(ctx, salonID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue journal amounts: %w", err)
	}
	return append(sales, journal...), nil
}

// GetFinancialSummary derives net income from total revenue and the expense
// summary. typeFilter "income" suppresses expenses, "expense" suppresses
// revenue; the identity netIncome = totalRevenue - totalExpenses always holds
// for whatever the filter left in.
func (s *reportingService) GetFinancialSummary(ctx context.Context, salonID string, start, end *time.Time, typeFilter, categoryID *string) (*domain.FinancialSummary, error) {
	summary := &domain.FinancialSummary{
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	includeIncome := typeFilter == nil || *typeFilter == "income"
	includeExpense := typeFilter == nil || *typeFilter == "expense"

	if includeIncome {
		revenue, err := s.collectRevenue(ctx, salonID, start, end)
		if err != nil {
			return nil, err
		}
		for _, amount := range revenue {
			summary.TotalRevenue = summary.TotalRevenue.Add(amount.Amount)
		}
	}

	if includeExpense {
		expenses, err := s.GetExpenseSummary(ctx, salonID, start, end, categoryID)
		if err != nil {
			return nil, err
		}
		summary.TotalExpenses = expenses.TotalExpenses
		summary.Expenses = expenses
	}

	summary.NetIncome = summary.TotalRevenue.Sub(summary.TotalExpenses)
	return summary, nil
}

// GetDailyFinancials buckets revenue and expenses into calendar days.
// Only days with activity appear; callers zero-fill if they need a dense
// series.
func (s *reportingService) GetDailyFinancials(ctx context.Context, salonID string, start, end time.Time) ([]domain.DailyFinancial, error) {
	revenue, err := s.collectRevenue(ctx, salonID, &start, &end)
	if err != nil {
		return nil, err
	}
	sources, err := s.collectExpenseSources(ctx, salonID, &start, &end, nil)
	if err != nil {
		return nil, err
	}

	days := make(map[string]*domain.DailyFinancial)
	bucket := func(date time.Time) *domain.DailyFinancial {
		key := date.Format(dayKeyFormat)
		day, found := days[key]
		if !found {
			day = &domain.DailyFinancial{
				Date:     key,
				Revenue:  decimal.Zero,
				Expenses: decimal.Zero,
			}
			days[key] = day
		}
		return day
	}

	for _, amount := range revenue {
		day := bucket(amount.Date)
		day.Revenue = day.Revenue.Add(amount.Amount)
	}
	for _, source := range sources {
		for _, record := range source.records {
			day := bucket(record.Date)
			day.Expenses = day.Expenses.Add(record.Amount)
		}
	}

	result := make([]domain.DailyFinancial, 0, len(days))
	for _, day := range days {
		day.NetIncome = day.Revenue.Sub(day.Expenses)
		result = append(result, *day)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

// GetAccountingLedger flattens every source into one row list for export,
// newest first.
func (s *reportingService) GetAccountingLedger(ctx context.Context, salonID string, start, end time.Time, typeFilter, categoryID *string) ([]domain.LedgerRow, error) {
	includeIncome := typeFilter == nil || *typeFilter == "income"
	includeExpense := typeFilter == nil || *typeFilter == "expense"

	var rows []domain.LedgerRow

	if includeIncome {
		revenue, err := s.collectRevenue(ctx, salonID, &start, &end)
		if err != nil {
			return nil, err
		}
		for _, amount := range revenue {
			rows = append(rows, domain.LedgerRow{
				Date:        amount.Date,
				Type:        "sale",
				Category:    "Revenue",
				Description: "Sale revenue",
				Amount:      amount.Amount,
				IsOutflow:   false,
			})
		}
	}

	if includeExpense {
		sources, err := s.collectExpenseSources(ctx, salonID, &start, &end, categoryID)
		if err != nil {
			return nil, err
		}
		for _, source := range sources {
			for _, record := range source.records {
				category := record.Category
				if category == "" {
					category = "Uncategorized"
				}
				rows = append(rows, domain.LedgerRow{
					Date:        record.Date,
					Type:        source.rowType,
					Category:    category,
					Description: record.Description,
					Amount:      record.Amount,
					IsOutflow:   true,
				})
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows, nil
}

// netBalance returns an account's balance with the normal sign for its type.
func netBalance(row domain.AccountBalanceRow) decimal.Decimal {
	switch row.AccountType {
	case domain.Asset, domain.Expense:
		return row.TotalDebit.Sub(row.TotalCredit)
	default:
		return row.TotalCredit.Sub(row.TotalDebit)
	}
}

// GetBalanceSheet builds the statement as of a date. Net income to date comes
// from the financial summary over the salon's full history through asOf, not
// from revenue and expense account balances, so flows that never produced a
// journal entry still show up in equity. It is injected as a synthetic equity
// line. When posted assets fall short of liabilities plus equity, a synthetic
// calculated-cash line plugs the gap so the statement balances; the gap itself
// is reported as Discrepancy rather than hidden inside the plug.
func (s *reportingService) GetBalanceSheet(ctx context.Context, salonID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	balances, err := s.reportingRepo.GetAccountBalances(ctx, salonID, asOf,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity})
	if err != nil {
		return nil, fmt.Errorf("failed to load account balances: %w", err)
	}

	summary, err := s.GetFinancialSummary(ctx, salonID, nil, &asOf, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to derive net income: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		Discrepancy:      decimal.Zero,
	}

	for _, row := range balances {
		amount := netBalance(row)
		line := domain.BalanceSheetLine{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.Name,
			Amount:      amount,
		}
		switch row.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(amount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(amount)
		}
	}

	netIncome := summary.NetIncome
	if !netIncome.IsZero() {
		report.Equity = append(report.Equity, domain.BalanceSheetLine{
			Name:      "Net Income",
			Amount:    netIncome,
			Synthetic: true,
		})
		report.TotalEquity = report.TotalEquity.Add(netIncome)
	}

	gap := report.TotalLiabilities.Add(report.TotalEquity).Sub(report.TotalAssets)
	if !gap.IsZero() {
		report.Discrepancy = gap
		if gap.IsPositive() {
			report.Assets = append(report.Assets, domain.BalanceSheetLine{
				Name:      "Cash (calculated)",
				Amount:    gap,
				Synthetic: true,
			})
			report.TotalAssets = report.TotalAssets.Add(gap)
		} else {
			report.Equity = append(report.Equity, domain.BalanceSheetLine{
				Name:      "Unreconciled Difference",
				Amount:    gap.Neg(),
				Synthetic: true,
			})
			report.TotalEquity = report.TotalEquity.Add(gap.Neg())
		}
	}

	return report, nil
}

// GetProfitAndLoss builds the P&L over [from, to] by diffing account balances
// at the period bounds, so only postings inside the period contribute.
func (s *reportingService) GetProfitAndLoss(ctx context.Context, salonID string, from, to time.Time) (*domain.PAndLReport, error) {
	types := []domain.AccountType{domain.Revenue, domain.Expense}

	endBalances, err := s.reportingRepo.GetAccountBalances(ctx, salonID, to, types)
	if err != nil {
		return nil, fmt.Errorf("failed to load period-end balances: %w", err)
	}
	startBalances, err := s.reportingRepo.GetAccountBalances(ctx, salonID, from.Add(-time.Nanosecond), types)
	if err != nil {
		return nil, fmt.Errorf("failed to load period-start balances: %w", err)
	}

	priorByAccount := make(map[string]decimal.Decimal, len(startBalances))
	for _, row := range startBalances {
		priorByAccount[row.AccountID] = netBalance(row)
	}

	report := &domain.PAndLReport{
		From:          from,
		To:            to,
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, row := range endBalances {
		amount := netBalance(row).Sub(priorByAccount[row.AccountID])
		if amount.IsZero() {
			continue
		}
		line := domain.BalanceSheetLine{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			Name:        row.Name,
			Amount:      amount,
		}
		if row.AccountType == domain.Revenue {
			report.Revenue = append(report.Revenue, line)
			report.TotalRevenue = report.TotalRevenue.Add(amount)
		} else {
			report.Expenses = append(report.Expenses, line)
			report.TotalExpenses = report.TotalExpenses.Add(amount)
		}
	}

	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}
