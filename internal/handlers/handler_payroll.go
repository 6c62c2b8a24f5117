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

// payrollHandler handles HTTP requests related to payroll runs.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// newPayrollHandler creates a new payrollHandler.
func newPayrollHandler(ps portssvc.PayrollSvcFacade) *payrollHandler {
	return &payrollHandler{payrollService: ps}
}

// registerPayrollRoutes registers routes related to payroll runs.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := newPayrollHandler(payrollService)

	payroll := rg.Group("/payroll-runs")
	{
		payroll.POST("", h.processPayroll)
		payroll.GET("", h.listPayrollRuns)
		payroll.GET("/:payroll_run_id", h.getPayrollRun)
		payroll.POST("/:payroll_run_id/pay", h.markPayrollAsPaid)
	}
}

// processPayroll computes a payroll run for the salon's active employees over
// the requested period.
func (h *payrollHandler) processPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req dto.ProcessPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	processedByID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	run, err := h.payrollService.ProcessPayroll(c.Request.Context(), salonID, req.PeriodStart, req.PeriodEnd, processedByID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Salon not found"})
		} else {
			logger.Error("Failed to process payroll", slog.String("error", err.Error()), slog.String("salon_id", salonID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process payroll"})
		}
		return
	}

	logger.Info("Payroll run processed", slog.String("payroll_run_id", run.PayrollRunID),
		slog.String("salon_id", salonID), slog.Int("items", len(run.Items)))
	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(run))
}

// getPayrollRun retrieves a run with its items.
func (h *payrollHandler) getPayrollRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payrollRunID := c.Param("payroll_run_id")

	run, err := h.payrollService.GetPayrollRun(c.Request.Context(), payrollRunID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payroll run not found"})
			return
		}
		logger.Error("Failed to get payroll run", slog.String("error", err.Error()), slog.String("payroll_run_id", payrollRunID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get payroll run"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

// listPayrollRuns retrieves a salon's runs, most recent period first.
func (h *payrollHandler) listPayrollRuns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")
	limit, offset := parsePagination(c)

	runs, err := h.payrollService.ListPayrollRuns(c.Request.Context(), salonID, limit, offset)
	if err != nil {
		logger.Error("Failed to list payroll runs", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list payroll runs"})
		return
	}

	responses := make([]dto.PayrollRunResponse, len(runs))
	for i := range runs {
		responses[i] = dto.ToPayrollRunResponse(&runs[i])
	}
	c.JSON(http.StatusOK, responses)
}

// markPayrollAsPaid marks the run paid and settles its folded-in commissions.
func (h *payrollHandler) markPayrollAsPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payrollRunID := c.Param("payroll_run_id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	run, err := h.payrollService.MarkPayrollAsPaid(c.Request.Context(), payrollRunID, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Payroll run not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to mark payroll as paid", slog.String("error", err.Error()),
				slog.String("payroll_run_id", payrollRunID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to mark payroll as paid"})
		}
		return
	}

	logger.Info("Payroll run paid", slog.String("payroll_run_id", payrollRunID))
	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}
