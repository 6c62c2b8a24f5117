package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/middleware"
)

// saleHandler handles HTTP requests related to sales and appointments.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales and appointments.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.recordSale)
		sales.GET("/:sale_id", h.getSale)
	}
	rg.POST("/appointments/complete", h.completeAppointment)
}

// recordSale ingests a completed sale: the sale record, its revenue journal
// entry, and commissions for staffed lines.
func (h *saleHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.saleService.RecordSale(c.Request.Context(), salonID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to record sale", slog.String("error", err.Error()), slog.String("salon_id", salonID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getSale retrieves a sale with its items.
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")
	saleID := c.Param("sale_id")

	sale, err := h.saleService.GetSale(c.Request.Context(), salonID, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
			return
		}
		logger.Error("Failed to get sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get sale"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// completeAppointment records a finished appointment's commission. Redelivered
// completion events return the same commission.
func (h *saleHandler) completeAppointment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req dto.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	commission, err := h.saleService.CompleteAppointment(c.Request.Context(), salonID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Employee not found"})
		} else {
			logger.Error("Failed to complete appointment", slog.String("error", err.Error()),
				slog.String("appointment_id", req.AppointmentID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete appointment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommissionResponse(commission))
}
