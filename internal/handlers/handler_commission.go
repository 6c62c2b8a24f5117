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

// commissionHandler handles HTTP requests related to commissions.
type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

// newCommissionHandler creates a new commissionHandler.
func newCommissionHandler(cs portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{commissionService: cs}
}

// registerCommissionRoutes registers routes related to commissions.
func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(commissionService)

	commissions := rg.Group("/commissions")
	{
		commissions.POST("", h.createCommission)
		commissions.GET("/:commission_id", h.getCommission)
		commissions.POST("/:commission_id/pay", h.markAsPaid)
		commissions.POST("/:commission_id/verify", h.verifyPayment)
		commissions.POST("/pay-batch", h.markMultipleAsPaid)
	}
	rg.GET("/employees/:salon_employee_id/commissions", h.listByEmployee)
}

// createCommission records a commission for a sale item or appointment.
// Retried creations for the same trigger return the existing commission.
func (h *commissionHandler) createCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	commission, err := h.commissionService.CreateCommission(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Employee not found"})
		} else {
			logger.Error("Failed to create commission", slog.String("error", err.Error()),
				slog.String("salon_employee_id", req.SalonEmployeeID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create commission"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommissionResponse(commission))
}

// getCommission retrieves one commission.
func (h *commissionHandler) getCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commissionID := c.Param("commission_id")

	commission, err := h.commissionService.GetCommission(c.Request.Context(), commissionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Commission not found"})
			return
		}
		logger.Error("Failed to get commission", slog.String("error", err.Error()), slog.String("commission_id", commissionID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get commission"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// markAsPaid settles one commission through the payer's wallet.
func (h *commissionHandler) markAsPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commissionID := c.Param("commission_id")

	var req dto.MarkCommissionPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	details := domain.CommissionPaymentDetails{
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		PaymentRef:    req.PaymentReference,
	}

	commission, err := h.commissionService.MarkAsPaid(c.Request.Context(), commissionID, details, actorID)
	if err != nil {
		h.respondSettlementError(c, logger, err, commissionID)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// markMultipleAsPaid settles a batch of commissions in one transaction.
func (h *commissionHandler) markMultipleAsPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MarkMultiplePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	details := domain.CommissionPaymentDetails{
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		PaymentRef:    req.PaymentReference,
	}

	commissions, err := h.commissionService.MarkMultipleAsPaid(c.Request.Context(), req.CommissionIDs, details, actorID)
	if err != nil {
		h.respondSettlementError(c, logger, err, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponses(commissions))
}

// verifyPayment stamps verification metadata on a paid commission.
func (h *commissionHandler) verifyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commissionID := c.Param("commission_id")

	verifierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	commission, err := h.commissionService.VerifyPayment(c.Request.Context(), commissionID, verifierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Commission not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Commission is not paid yet"})
		} else {
			logger.Error("Failed to verify commission payment", slog.String("error", err.Error()),
				slog.String("commission_id", commissionID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to verify commission payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// listByEmployee retrieves an employee's commissions, most recent first.
func (h *commissionHandler) listByEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonEmployeeID := c.Param("salon_employee_id")
	limit, offset := parsePagination(c)

	commissions, err := h.commissionService.ListByEmployee(c.Request.Context(), salonEmployeeID, limit, offset)
	if err != nil {
		logger.Error("Failed to list commissions", slog.String("error", err.Error()),
			slog.String("salon_employee_id", salonEmployeeID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list commissions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponses(commissions))
}

// respondSettlementError maps settlement failures onto HTTP codes. The
// insufficient-funds case surfaces as 422 so clients can distinguish it from
// malformed input.
func (h *commissionHandler) respondSettlementError(c *gin.Context, logger *slog.Logger, err error, commissionID string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Commission not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Insufficient funds to settle commissions"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to settle commissions", slog.String("error", err.Error()),
			slog.String("commission_id", commissionID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to settle commissions"})
	}
}
