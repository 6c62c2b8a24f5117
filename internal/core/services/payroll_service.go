package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portsrepo "github.com/glowslot/salon_ledger/internal/core/ports/repositories"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pay-frequency divisors used to derive a daily rate from the base salary.
var payFrequencyDays = map[domain.PayFrequency]int64{
	domain.PayDaily:    1,
	domain.PayWeekly:   7,
	domain.PayBiweekly: 14,
	domain.PayMonthly:  30,
}

// payrollService provides payroll computation and payout.
type payrollService struct {
	BaseService
	payrollRepo    portsrepo.PayrollRepositoryFacade
	salonRepo      portsrepo.SalonRepositoryFacade
	commissionRepo portsrepo.CommissionReader
	commissionSvc  portssvc.CommissionSvcFacade
	accountSvc     portssvc.AccountSvcFacade
	journalPoster  portssvc.JournalPoster
}

// NewPayrollService creates a new payroll service. Unpaid commissions are read
// through the commission reader when computing a run and settled through the
// commission service when the run is paid out.
func NewPayrollService(
	payrollRepo portsrepo.PayrollRepositoryFacade,
	salonRepo portsrepo.SalonRepositoryFacade,
	commissionRepo portsrepo.CommissionReader,
	commissionSvc portssvc.CommissionSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalPoster portssvc.JournalPoster,
) portssvc.PayrollSvcFacade {
	return &payrollService{
		payrollRepo:    payrollRepo,
		salonRepo:      salonRepo,
		commissionRepo: commissionRepo,
		commissionSvc:  commissionSvc,
		accountSvc:     accountSvc,
		journalPoster:  journalPoster,
	}
}

var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// ProcessPayroll computes a run for every active employee over the period.
// The base salary is pro-rated by a daily rate: base divided by the pay
// frequency's divisor (7 weekly, 14 biweekly, 30 monthly), times the days in
// the period. Unpaid commissions created in the period are folded into the
// item and referenced by ID so the payout can settle them.
func (s *payrollService) ProcessPayroll(ctx context.Context, salonID string, periodStart, periodEnd time.Time, processedByID string) (*domain.PayrollRun, error) {
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("%w: period end before period start", apperrors.ErrValidation)
	}

	employees, err := s.salonRepo.ListActiveEmployees(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees for salon %s: %w", salonID, err)
	}

	// Inclusive day count: a single-day period pays one day.
	daysInPeriod := int64(periodEnd.Sub(periodStart).Hours()/24) + 1

	now := time.Now()
	run := domain.PayrollRun{
		PayrollRunID:  uuid.NewString(),
		SalonID:       salonID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Status:        domain.PayrollProcessed,
		TotalAmount:   decimal.Zero,
		ProcessedByID: processedByID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     processedByID,
			LastUpdatedAt: now,
			LastUpdatedBy: processedByID,
		},
	}

	for _, employee := range employees {
		item, err := s.buildItem(ctx, run.PayrollRunID, employee, periodStart, periodEnd, daysInPeriod)
		if err != nil {
			return nil, err
		}
		if item.GrossPay.IsZero() {
			s.LogDebug(ctx, "skipping employee with zero gross pay",
				slog.String("salon_employee_id", employee.SalonEmployeeID))
			continue
		}
		run.Items = append(run.Items, *item)
		run.TotalAmount = run.TotalAmount.Add(item.NetPay)
	}

	if err := s.payrollRepo.SavePayrollRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to save payroll run: %w", err)
	}

	s.LogInfo(ctx, "payroll run processed",
		slog.String("salon_id", salonID),
		slog.String("payroll_run_id", run.PayrollRunID),
		slog.Int("items", len(run.Items)),
		slog.String("total", run.TotalAmount.String()))
	return &run, nil
}

func (s *payrollService) buildItem(ctx context.Context, runID string, employee domain.SalonEmployee, periodStart, periodEnd time.Time, daysInPeriod int64) (*domain.PayrollItem, error) {
	item := domain.PayrollItem{
		PayrollItemID:    uuid.NewString(),
		PayrollRunID:     runID,
		SalonEmployeeID:  employee.SalonEmployeeID,
		BaseSalary:       decimal.Zero,
		CommissionAmount: decimal.Zero,
		OvertimeAmount:   decimal.Zero,
		Deductions:       decimal.Zero,
	}

	if employee.SalaryType != domain.CommissionOnly {
		divisor, found := payFrequencyDays[employee.PayFrequency]
		if !found {
			// Unrecognized or unset frequencies fall back to the monthly divisor.
			divisor = payFrequencyDays[domain.PayMonthly]
			s.LogWarn(ctx, "unknown pay frequency, defaulting to monthly",
				slog.String("salon_employee_id", employee.SalonEmployeeID),
				slog.String("pay_frequency", string(employee.PayFrequency)))
		}
		dailyRate := employee.BaseSalary.Div(decimal.NewFromInt(divisor))
		item.BaseSalary = dailyRate.Mul(decimal.NewFromInt(daysInPeriod))
	}

	if employee.SalaryType != domain.SalaryOnly {
		commissions, err := s.commissionRepo.FindUnpaidByEmployeeInPeriod(ctx, employee.SalonEmployeeID, periodStart, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to load unpaid commissions for employee %s: %w",
				employee.SalonEmployeeID, err)
		}
		for _, commission := range commissions {
			item.CommissionAmount = item.CommissionAmount.Add(commission.Amount)
			item.CommissionIDs = append(item.CommissionIDs, commission.CommissionID)
		}
	}

	item.GrossPay = item.BaseSalary.Add(item.CommissionAmount).Add(item.OvertimeAmount)
	item.NetPay = item.GrossPay.Sub(item.Deductions)
	return &item, nil
}

// MarkPayrollAsPaid marks the run paid and settles every folded commission
// through the commission ledger with paymentMethod "payroll". A commission
// that fails to settle is logged and skipped so one bad row never blocks the
// rest of the payout. Already-paid runs are returned unchanged.
func (s *payrollService) MarkPayrollAsPaid(ctx context.Context, payrollRunID string, actorID string) (*domain.PayrollRun, error) {
	run, err := s.payrollRepo.FindPayrollRunByID(ctx, payrollRunID)
	if err != nil {
		return nil, err
	}
	if run.Status == domain.PayrollPaid {
		s.LogInfo(ctx, "payroll run already paid, skipping",
			slog.String("payroll_run_id", payrollRunID))
		return run, nil
	}

	now := time.Now()
	for _, item := range run.Items {
		details := domain.CommissionPaymentDetails{
			PaymentMethod: domain.PaymentPayroll,
			PaymentRef:    run.PayrollRunID,
			PayrollItemID: &item.PayrollItemID,
		}
		for _, commissionID := range item.CommissionIDs {
			if _, err := s.commissionSvc.MarkAsPaid(ctx, commissionID, details, actorID); err != nil {
				s.LogError(ctx, err, "failed to settle commission during payroll payout",
					slog.String("payroll_run_id", payrollRunID),
					slog.String("commission_id", commissionID))
			}
		}
	}

	if err := s.payrollRepo.MarkRunPaid(ctx, payrollRunID, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to mark payroll run paid: %w", err)
	}

	s.postPayrollJournal(ctx, run, actorID)

	return s.payrollRepo.FindPayrollRunByID(ctx, payrollRunID)
}

// postPayrollJournal records the salary portion of the run: debit payroll
// expense, credit cash. Commission portions are journaled by their own
// settlements, so only base salary and overtime post here. Best effort.
func (s *payrollService) postPayrollJournal(ctx context.Context, run *domain.PayrollRun, actorID string) {
	salaryTotal := decimal.Zero
	for _, item := range run.Items {
		salaryTotal = salaryTotal.Add(item.BaseSalary).Add(item.OvertimeAmount)
	}
	if salaryTotal.IsZero() {
		return
	}

	payrollAccount, err := s.accountSvc.GetOrCreateAccount(ctx, run.SalonID,
		domain.AccountCodePayroll, "Payroll Expense", domain.Expense, actorID)
	if err != nil {
		s.LogError(ctx, err, "payroll journal skipped, payroll account unavailable",
			slog.String("payroll_run_id", run.PayrollRunID))
		return
	}
	cashAccount, err := s.accountSvc.GetOrCreateAccount(ctx, run.SalonID,
		domain.AccountCodeCash, "Cash", domain.Asset, actorID)
	if err != nil {
		s.LogError(ctx, err, "payroll journal skipped, cash account unavailable",
			slog.String("payroll_run_id", run.PayrollRunID))
		return
	}

	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: fmt.Sprintf("Payroll for %s to %s", run.PeriodStart.Format("2006-01-02"), run.PeriodEnd.Format("2006-01-02")),
		Lines: []dto.JournalLineRequest{
			{
				AccountID:     payrollAccount.AccountID,
				DebitAmount:   salaryTotal,
				ReferenceType: string(domain.RefPayrollRun),
				ReferenceID:   run.PayrollRunID,
			},
			{
				AccountID:     cashAccount.AccountID,
				CreditAmount:  salaryTotal,
				ReferenceType: string(domain.RefPayrollRun),
				ReferenceID:   run.PayrollRunID,
			},
		},
	}

	if _, err := s.journalPoster.CreateJournalEntry(ctx, run.SalonID, req, actorID); err != nil {
		s.LogError(ctx, err, "failed to post payroll journal entry",
			slog.String("payroll_run_id", run.PayrollRunID),
			slog.String("amount", salaryTotal.String()))
	}
}

// GetPayrollRun retrieves a run with its items.
func (s *payrollService) GetPayrollRun(ctx context.Context, payrollRunID string) (*domain.PayrollRun, error) {
	return s.payrollRepo.FindPayrollRunByID(ctx, payrollRunID)
}

// ListPayrollRuns retrieves a salon's runs, most recent period first.
func (s *payrollService) ListPayrollRuns(ctx context.Context, salonID string, limit, offset int) ([]domain.PayrollRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.payrollRepo.ListPayrollRuns(ctx, salonID, limit, offset)
}
