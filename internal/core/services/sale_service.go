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
)

// saleService ingests POS events into the ledger: the sale record itself, its
// revenue journal entry, and commissions for staffed lines.
type saleService struct {
	BaseService
	saleRepo      portsrepo.SaleRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	journalPoster portssvc.JournalPoster
	commissionSvc portssvc.CommissionSvcFacade
}

// NewSaleService creates a new sale service.
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryFacade,
	accountSvc portssvc.AccountSvcFacade,
	journalPoster portssvc.JournalPoster,
	commissionSvc portssvc.CommissionSvcFacade,
) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:      saleRepo,
		accountSvc:    accountSvc,
		journalPoster: journalPoster,
		commissionSvc: commissionSvc,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// RecordSale persists the sale, posts its revenue journal entry (debit cash,
// credit service revenue), and creates one commission per staffed line. The
// sale record is authoritative; journal posting and commission creation are
// best effort after it commits, with failures logged for reconciliation.
func (s *saleService) RecordSale(ctx context.Context, salonID string, req dto.RecordSaleRequest, actorID string) (*dto.RecordSaleResponse, error) {
	now := time.Now()
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		SalonID:       salonID,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		SaleDate:      req.SaleDate,
		Status:        domain.SaleCompleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	for _, itemReq := range req.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			SaleItemID:      uuid.NewString(),
			SaleID:          sale.SaleID,
			SalonEmployeeID: itemReq.SalonEmployeeID,
			Description:     itemReq.Description,
			LineTotal:       itemReq.LineTotal,
		})
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	response := &dto.RecordSaleResponse{SaleID: sale.SaleID}

	if entry := s.postSaleJournal(ctx, &sale, actorID); entry != nil {
		response.JournalEntry = dto.ToJournalEntryResponse(entry)
	}

	for _, item := range sale.Items {
		if item.SalonEmployeeID == nil {
			response.SkippedLines++
			continue
		}
		saleItemID := item.SaleItemID
		commission, err := s.commissionSvc.CreateCommission(ctx, dto.CreateCommissionRequest{
			SalonEmployeeID: *item.SalonEmployeeID,
			SaleItemID:      &saleItemID,
			SaleAmount:      item.LineTotal,
		}, actorID)
		if err != nil {
			s.LogError(ctx, err, "failed to create commission for sale item",
				slog.String("sale_id", sale.SaleID),
				slog.String("sale_item_id", item.SaleItemID))
			continue
		}
		response.Commissions = append(response.Commissions, dto.ToCommissionResponse(commission))
	}

	s.LogInfo(ctx, "sale recorded",
		slog.String("salon_id", salonID),
		slog.String("sale_id", sale.SaleID),
		slog.Int("commissions", len(response.Commissions)),
		slog.Int("skipped_lines", response.SkippedLines))
	return response, nil
}

// postSaleJournal records the sale's revenue movement. Returns nil when the
// posting failed; the failure is logged, not propagated, since the sale
// already committed.
func (s *saleService) postSaleJournal(ctx context.Context, sale *domain.Sale, actorID string) *domain.JournalEntry {
	cashAccount, err := s.accountSvc.GetOrCreateAccount(ctx, sale.SalonID,
		domain.AccountCodeCash, "Cash", domain.Asset, actorID)
	if err != nil {
		s.LogError(ctx, err, "sale journal skipped, cash account unavailable",
			slog.String("sale_id", sale.SaleID))
		return nil
	}
	revenueAccount, err := s.accountSvc.GetOrCreateAccount(ctx, sale.SalonID,
		domain.AccountCodeServiceRevenue, "Service Revenue", domain.Revenue, actorID)
	if err != nil {
		s.LogError(ctx, err, "sale journal skipped, revenue account unavailable",
			slog.String("sale_id", sale.SaleID))
		return nil
	}

	req := dto.CreateJournalEntryRequest{
		EntryDate:   sale.SaleDate,
		Description: fmt.Sprintf("Sale revenue (%s)", sale.PaymentMethod),
		Lines: []dto.JournalLineRequest{
			{
				AccountID:     cashAccount.AccountID,
				DebitAmount:   sale.TotalAmount,
				ReferenceType: string(domain.RefSale),
				ReferenceID:   sale.SaleID,
			},
			{
				AccountID:     revenueAccount.AccountID,
				CreditAmount:  sale.TotalAmount,
				ReferenceType: string(domain.RefSale),
				ReferenceID:   sale.SaleID,
			},
		},
	}

	entry, err := s.journalPoster.CreateJournalEntry(ctx, sale.SalonID, req, actorID)
	if err != nil {
		s.LogError(ctx, err, "failed to post sale journal entry",
			slog.String("sale_id", sale.SaleID),
			slog.String("amount", sale.TotalAmount.String()))
		return nil
	}
	return entry
}

// CompleteAppointment creates the performing employee's commission for a
// finished appointment. Redelivered completion events return the same
// commission thanks to the (appointmentID, employee) dedup key.
func (s *saleService) CompleteAppointment(ctx context.Context, salonID string, req dto.CompleteAppointmentRequest, actorID string) (*domain.Commission, error) {
	appointmentID := req.AppointmentID
	commission, err := s.commissionSvc.CreateCommission(ctx, dto.CreateCommissionRequest{
		SalonEmployeeID: req.SalonEmployeeID,
		AppointmentID:   &appointmentID,
		SaleAmount:      req.ServiceAmount,
	}, actorID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "appointment completion recorded",
		slog.String("salon_id", salonID),
		slog.String("appointment_id", req.AppointmentID),
		slog.String("commission_id", commission.CommissionID))
	return commission, nil
}

// GetSale retrieves a sale with its items, enforcing salon scoping.
func (s *saleService) GetSale(ctx context.Context, salonID, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.SalonID != salonID {
		return nil, apperrors.ErrNotFound
	}
	return sale, nil
}
