package dto

import (
	"time"

	"github.com/glowslot/salon_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit leg in a create request.
// Exactly one of debitAmount/creditAmount must be positive.
type JournalLineRequest struct {
	AccountID     string          `json:"accountID" binding:"required"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	EntryNumber string               `json:"entryNumber"`
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID        string          `json:"lineID"`
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"referenceType,omitempty"`
	ReferenceID   string          `json:"referenceID,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	SalonID     string                `json:"salonID"`
	EntryNumber string                `json:"entryNumber"`
	EntryDate   time.Time             `json:"entryDate"`
	Description string                `json:"description"`
	Status      domain.JournalStatus  `json:"status"`
	Lines       []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     entry.EntryID,
		SalonID:     entry.SalonID,
		EntryNumber: entry.EntryNumber,
		EntryDate:   entry.EntryDate,
		Description: entry.Description,
		Status:      entry.Status,
		CreatedAt:   entry.CreatedAt,
		CreatedBy:   entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i, line := range entry.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:        line.LineID,
				AccountID:     line.AccountID,
				AccountCode:   line.AccountCode,
				AccountName:   line.AccountName,
				DebitAmount:   line.DebitAmount,
				CreditAmount:  line.CreditAmount,
				Description:   line.Description,
				ReferenceType: string(line.ReferenceType),
				ReferenceID:   line.ReferenceID,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries to response DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
