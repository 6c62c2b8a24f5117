package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journal-entries")
	{
		journals.POST("", h.createJournalEntry)
		journals.GET("", h.listJournalEntries)
		journals.GET("/:entry_id", h.getJournalEntry)
	}
}

// createJournalEntry posts a balanced journal entry.
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), salonID, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected journal entry", slog.String("error", err.Error()), slog.String("salon_id", salonID))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create journal entry", slog.String("error", err.Error()), slog.String("salon_id", salonID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create journal entry"})
		}
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("salon_id", salonID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry retrieves one journal entry with its lines.
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), salonID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get journal entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries lists a salon's entries, or the entries for one business
// reference when reference_type/reference_id are supplied.
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	refType := c.Query("reference_type")
	refID := c.Query("reference_id")
	if refType != "" || refID != "" {
		if refType == "" || refID == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reference_type and reference_id must be supplied together"})
			return
		}
		entries, err := h.journalService.FindByReference(c.Request.Context(), salonID, domain.ReferenceType(refType), refID)
		if err != nil {
			logger.Error("Failed to find journal entries by reference", slog.String("error", err.Error()),
				slog.String("reference_type", refType), slog.String("reference_id", refID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to find journal entries"})
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
		return
	}

	limit, offset := parsePagination(c)
	entries, err := h.journalService.ListEntries(c.Request.Context(), salonID, limit, offset)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponses(entries))
}
