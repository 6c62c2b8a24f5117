package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// ReferenceType names the business record a journal entry or wallet transaction points back to.
type ReferenceType string

const (
	RefSale          ReferenceType = "SALE"
	RefCommission    ReferenceType = "COMMISSION"
	RefPayrollRun    ReferenceType = "PAYROLL_RUN"
	RefManualExpense ReferenceType = "MANUAL_EXPENSE"
	RefPlatformFee   ReferenceType = "PLATFORM_FEE"
)

// JournalEntry is a single, balanced financial event composed of multiple lines.
// Entries are immutable once created; creation persists the header and all lines
// atomically or not at all.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	SalonID     string        `json:"salonID"`
	EntryNumber string        `json:"entryNumber"`
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Status      JournalStatus `json:"status"`
	Lines       []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit or credit leg of a journal entry.
// Exactly one of DebitAmount/CreditAmount is positive; the other is zero.
type JournalLine struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode,omitempty"` // populated on joined reads
	AccountName   string          `json:"accountName,omitempty"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	ReferenceType ReferenceType   `json:"referenceType"`
	ReferenceID   string          `json:"referenceID"`
}
