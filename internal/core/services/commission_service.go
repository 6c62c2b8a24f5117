package services

import (
	"context"
	"errors"
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

var oneHundred = decimal.NewFromInt(100)

// commissionService provides the commission ledger: creation with
// deduplication, idempotent settlement through the wallet engine, and
// post-payment verification.
type commissionService struct {
	BaseService
	commissionRepo portsrepo.CommissionRepositoryFacade
	salonRepo      portsrepo.SalonRepositoryFacade
	walletSvc      portssvc.WalletSvcFacade
	accountSvc     portssvc.AccountSvcFacade
	journalPoster  portssvc.JournalPoster
}

// NewCommissionService creates a new commission service. The journal poster is
// a narrow dependency: settlement records its accounting impact through it but
// never reads journals back.
func NewCommissionService(
	commissionRepo portsrepo.CommissionRepositoryFacade,
	salonRepo portsrepo.SalonRepositoryFacade,
	walletSvc portssvc.WalletSvcFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalPoster portssvc.JournalPoster,
) portssvc.CommissionSvcFacade {
	return &commissionService{
		commissionRepo: commissionRepo,
		salonRepo:      salonRepo,
		walletSvc:      walletSvc,
		accountSvc:     accountSvc,
		journalPoster:  journalPoster,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

// CreateCommission records an unpaid commission for an employee, computed from
// the employee's configured rate. Retried creation for the same sale item or
// appointment returns the existing commission unchanged, so event consumers
// can redeliver safely.
func (s *commissionService) CreateCommission(ctx context.Context, req dto.CreateCommissionRequest, actorID string) (*domain.Commission, error) {
	if (req.SaleItemID == nil) == (req.AppointmentID == nil) {
		return nil, fmt.Errorf("%w: exactly one of saleItemID or appointmentID is required", apperrors.ErrValidation)
	}
	if req.SaleAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: sale amount must be positive", apperrors.ErrValidation)
	}

	existing, err := s.findExisting(ctx, req)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing commission: %w", err)
	}
	if existing != nil {
		s.LogDebug(ctx, "commission already exists, returning existing row",
			slog.String("commission_id", existing.CommissionID))
		return existing, nil
	}

	employee, err := s.salonRepo.FindEmployeeByID(ctx, req.SalonEmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee %s: %w", req.SalonEmployeeID, err)
	}

	rate := employee.CommissionRate
	if rate.IsZero() {
		s.LogWarn(ctx, "employee has no commission rate configured, recording zero commission",
			slog.String("salon_employee_id", employee.SalonEmployeeID))
	}
	amount := req.SaleAmount.Mul(rate).Div(oneHundred)

	now := time.Now()
	commission := domain.Commission{
		CommissionID:    uuid.NewString(),
		SalonEmployeeID: req.SalonEmployeeID,
		SaleItemID:      req.SaleItemID,
		AppointmentID:   req.AppointmentID,
		Amount:          amount,
		CommissionRate:  rate,
		SaleAmount:      req.SaleAmount,
		Paid:            false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	err = s.commissionRepo.SaveCommission(ctx, commission)
	if err == nil {
		s.LogInfo(ctx, "commission created",
			slog.String("commission_id", commission.CommissionID),
			slog.String("salon_employee_id", commission.SalonEmployeeID),
			slog.String("amount", amount.String()))
		return &commission, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost a concurrent creation race for the same dedup key.
		return s.findExisting(ctx, req)
	}
	return nil, fmt.Errorf("failed to save commission: %w", err)
}

func (s *commissionService) findExisting(ctx context.Context, req dto.CreateCommissionRequest) (*domain.Commission, error) {
	if req.SaleItemID != nil {
		return s.commissionRepo.FindCommissionBySaleItem(ctx, *req.SaleItemID, req.SalonEmployeeID)
	}
	return s.commissionRepo.FindCommissionByAppointment(ctx, *req.AppointmentID, req.SalonEmployeeID)
}

// MarkAsPaid settles one commission. The payee's wallet is credited and, for
// wallet-funded methods, the salon owner's wallet is debited, all inside one
// locked repository transaction with the paid flag. mobile_money settlements
// are funded outside the platform so no payer debit happens. Re-settling an
// already-paid commission is a no-op.
func (s *commissionService) MarkAsPaid(ctx context.Context, commissionID string, details domain.CommissionPaymentDetails, actorID string) (*domain.Commission, error) {
	commission, err := s.commissionRepo.FindCommissionByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	if commission.Paid {
		s.LogInfo(ctx, "commission already paid, skipping settlement",
			slog.String("commission_id", commissionID))
		return commission, nil
	}

	employee, err := s.salonRepo.FindEmployeeByID(ctx, commission.SalonEmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee for commission %s: %w", commissionID, err)
	}

	payeeWallet, err := s.walletSvc.GetOrCreateWallet(ctx, employee.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve payee wallet: %w", err)
	}

	payerWalletID, err := s.resolvePayerWallet(ctx, employee.SalonID, details.PaymentMethod)
	if err != nil {
		return nil, err
	}

	settlement := domain.CommissionSettlement{
		PayerWalletID: payerWalletID,
		Items: []domain.SettlementItem{
			{Commission: *commission, PayeeWalletID: payeeWallet.WalletID},
		},
		Details:     details,
		SettledByID: actorID,
		SettledAt:   time.Now(),
	}

	if err := s.commissionRepo.SettleCommissions(ctx, settlement); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogWarn(ctx, "commission settlement rejected, payer balance too low",
				slog.String("commission_id", commissionID),
				slog.String("amount", commission.Amount.String()))
		}
		return nil, err
	}

	s.postSettlementJournal(ctx, employee.SalonID, []domain.Commission{*commission}, details, actorID)

	return s.commissionRepo.FindCommissionByID(ctx, commissionID)
}

// MarkMultipleAsPaid settles a batch of commissions in one transaction. Every
// commission must belong to the same salon so a single owner wallet funds the
// batch; the whole batch is rejected up front when the payer cannot cover the
// unpaid total. Already-paid commissions in the batch are skipped.
func (s *commissionService) MarkMultipleAsPaid(ctx context.Context, commissionIDs []string, details domain.CommissionPaymentDetails, actorID string) ([]domain.Commission, error) {
	if len(commissionIDs) == 0 {
		return nil, fmt.Errorf("%w: no commission ids given", apperrors.ErrValidation)
	}

	commissions, err := s.commissionRepo.FindCommissionsByIDs(ctx, commissionIDs)
	if err != nil {
		return nil, err
	}
	if len(commissions) != len(commissionIDs) {
		return nil, fmt.Errorf("%w: %d of %d commissions found", apperrors.ErrNotFound, len(commissions), len(commissionIDs))
	}

	var salonID string
	items := make([]domain.SettlementItem, 0, len(commissions))
	unpaid := make([]domain.Commission, 0, len(commissions))
	for _, commission := range commissions {
		if commission.Paid {
			s.LogDebug(ctx, "skipping already-paid commission in batch",
				slog.String("commission_id", commission.CommissionID))
			continue
		}

		employee, err := s.salonRepo.FindEmployeeByID(ctx, commission.SalonEmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve employee for commission %s: %w", commission.CommissionID, err)
		}
		if salonID == "" {
			salonID = employee.SalonID
		} else if employee.SalonID != salonID {
			return nil, fmt.Errorf("%w: batch spans multiple salons", apperrors.ErrValidation)
		}

		payeeWallet, err := s.walletSvc.GetOrCreateWallet(ctx, employee.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve payee wallet: %w", err)
		}

		items = append(items, domain.SettlementItem{
			Commission:    commission,
			PayeeWalletID: payeeWallet.WalletID,
		})
		unpaid = append(unpaid, commission)
	}

	if len(items) == 0 {
		// Whole batch was already settled, nothing to do.
		return commissions, nil
	}

	payerWalletID, err := s.resolvePayerWallet(ctx, salonID, details.PaymentMethod)
	if err != nil {
		return nil, err
	}

	settlement := domain.CommissionSettlement{
		PayerWalletID: payerWalletID,
		Items:         items,
		Details:       details,
		SettledByID:   actorID,
		SettledAt:     time.Now(),
	}

	if err := s.commissionRepo.SettleCommissions(ctx, settlement); err != nil {
		return nil, err
	}

	s.postSettlementJournal(ctx, salonID, unpaid, details, actorID)

	return s.commissionRepo.FindCommissionsByIDs(ctx, commissionIDs)
}

// resolvePayerWallet returns the salon owner's wallet ID, or nil for
// externally funded payment methods.
func (s *commissionService) resolvePayerWallet(ctx context.Context, salonID string, method domain.PaymentMethod) (*string, error) {
	if method == domain.PaymentMobileMoney {
		return nil, nil
	}
	salon, err := s.salonRepo.FindSalonByID(ctx, salonID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve salon %s: %w", salonID, err)
	}
	ownerWallet, err := s.walletSvc.GetOrCreateWallet(ctx, salon.OwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner wallet: %w", err)
	}
	return &ownerWallet.WalletID, nil
}

// postSettlementJournal records the accounting impact of a settlement: debit
// commission expense, credit cash. The wallet movement already committed, so
// a journal failure is logged and swallowed; operators reconcile from the
// commission record.
func (s *commissionService) postSettlementJournal(ctx context.Context, salonID string, commissions []domain.Commission, details domain.CommissionPaymentDetails, actorID string) {
	total := decimal.Zero
	for _, commission := range commissions {
		total = total.Add(commission.Amount)
	}
	if total.IsZero() {
		return
	}

	expenseAccount, err := s.accountSvc.GetOrCreateAccount(ctx, salonID,
		domain.AccountCodeCommissions, "Commission Expense", domain.Expense, actorID)
	if err != nil {
		s.LogError(ctx, err, "settlement journal skipped, expense account unavailable",
			slog.String("salon_id", salonID))
		return
	}
	cashAccount, err := s.accountSvc.GetOrCreateAccount(ctx, salonID,
		domain.AccountCodeCash, "Cash", domain.Asset, actorID)
	if err != nil {
		s.LogError(ctx, err, "settlement journal skipped, cash account unavailable",
			slog.String("salon_id", salonID))
		return
	}

	refID := commissions[0].CommissionID
	description := fmt.Sprintf("Commission payout (%s)", details.PaymentMethod)
	if len(commissions) > 1 {
		description = fmt.Sprintf("Commission payout of %d commissions (%s)", len(commissions), details.PaymentMethod)
	}

	req := dto.CreateJournalEntryRequest{
		EntryDate:   time.Now(),
		Description: description,
		Lines: []dto.JournalLineRequest{
			{
				AccountID:     expenseAccount.AccountID,
				DebitAmount:   total,
				ReferenceType: string(domain.RefCommission),
				ReferenceID:   refID,
			},
			{
				AccountID:     cashAccount.AccountID,
				CreditAmount:  total,
				ReferenceType: string(domain.RefCommission),
				ReferenceID:   refID,
			},
		},
	}

	if _, err := s.journalPoster.CreateJournalEntry(ctx, salonID, req, actorID); err != nil {
		s.LogError(ctx, err, "failed to post settlement journal entry",
			slog.String("salon_id", salonID),
			slog.String("reference_id", refID),
			slog.String("amount", total.String()))
	}
}

// VerifyPayment stamps verification metadata on a settled commission.
func (s *commissionService) VerifyPayment(ctx context.Context, commissionID string, verifiedByID string) (*domain.Commission, error) {
	commission, err := s.commissionRepo.FindCommissionByID(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	if !commission.Paid {
		return nil, fmt.Errorf("%w: commission %s is not paid yet", apperrors.ErrConflict, commissionID)
	}
	if commission.VerifiedBy != nil {
		return commission, nil
	}

	if err := s.commissionRepo.UpdateVerification(ctx, commissionID, verifiedByID, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to verify commission %s: %w", commissionID, err)
	}
	return s.commissionRepo.FindCommissionByID(ctx, commissionID)
}

// GetCommission retrieves one commission.
func (s *commissionService) GetCommission(ctx context.Context, commissionID string) (*domain.Commission, error) {
	return s.commissionRepo.FindCommissionByID(ctx, commissionID)
}

// ListByEmployee retrieves an employee's commissions, most recent first.
func (s *commissionService) ListByEmployee(ctx context.Context, salonEmployeeID string, limit, offset int) ([]domain.Commission, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.commissionRepo.ListCommissionsByEmployee(ctx, salonEmployeeID, limit, offset)
}
