package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/dto"
	"github.com/glowslot/salon_ledger/internal/middleware"
)

// reportingHandler handles HTTP requests for the financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the report routes. All of them are
// read-only derivations over the ledgers.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/expense-summary", h.getExpenseSummary)
		reports.GET("/financial-summary", h.getFinancialSummary)
		reports.GET("/daily-financials", h.getDailyFinancials)
		reports.GET("/ledger", h.getAccountingLedger)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-loss", h.getProfitAndLoss)
	}
}

// getExpenseSummary returns the categorized expense breakdown.
func (h *reportingHandler) getExpenseSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	start, err := parseDateParam(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	end, err := parseDateParam(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	categoryID := optionalQuery(c, "category_id")

	summary, err := h.reportingService.GetExpenseSummary(c.Request.Context(), salonID, start, end, categoryID)
	if err != nil {
		logger.Error("Failed to build expense summary", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build expense summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ExpenseSummaryResponse{
		TotalExpenses:   summary.TotalExpenses,
		ExpenseCount:    summary.ExpenseCount,
		ByCategory:      summary.ByCategory,
		ByPaymentMethod: summary.ByPaymentMethod,
	})
}

// getFinancialSummary returns totals with netIncome = revenue - expenses.
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	start, err := parseDateParam(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	end, err := parseDateParam(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	typeFilter := optionalQuery(c, "type")
	categoryID := optionalQuery(c, "category_id")

	summary, err := h.reportingService.GetFinancialSummary(c.Request.Context(), salonID, start, end, typeFilter, categoryID)
	if err != nil {
		logger.Error("Failed to build financial summary", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build financial summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getDailyFinancials returns per-day revenue/expense buckets over a period.
func (h *reportingHandler) getDailyFinancials(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	start, end, ok := h.requirePeriod(c)
	if !ok {
		return
	}

	daily, err := h.reportingService.GetDailyFinancials(c.Request.Context(), salonID, start, end)
	if err != nil {
		logger.Error("Failed to build daily financials", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build daily financials"})
		return
	}

	c.JSON(http.StatusOK, daily)
}

// getAccountingLedger returns the flattened chronological ledger export.
func (h *reportingHandler) getAccountingLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	start, end, ok := h.requirePeriod(c)
	if !ok {
		return
	}
	typeFilter := optionalQuery(c, "type")
	categoryID := optionalQuery(c, "category_id")

	rows, err := h.reportingService.GetAccountingLedger(c.Request.Context(), salonID, start, end, typeFilter, categoryID)
	if err != nil {
		logger.Error("Failed to build accounting ledger", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build accounting ledger"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// getBalanceSheet returns the balance sheet as of a date, defaulting to now.
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	asOf := time.Now()
	if parsed, err := parseDateParam(c, "as_of"); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	} else if parsed != nil {
		asOf = *parsed
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), salonID, asOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getProfitAndLoss returns the P&L over a period.
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	from, to, ok := h.requirePeriod(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetProfitAndLoss(c.Request.Context(), salonID, from, to)
	if err != nil {
		logger.Error("Failed to build profit and loss", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build profit and loss"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// requirePeriod reads mandatory start_date/end_date query params.
func (h *reportingHandler) requirePeriod(c *gin.Context) (start, end time.Time, ok bool) {
	startPtr, err := parseDateParam(c, "start_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return start, end, false
	}
	endPtr, err := parseDateParam(c, "end_date")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return start, end, false
	}
	if startPtr == nil || endPtr == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date and end_date are required"})
		return start, end, false
	}
	if endPtr.Before(*startPtr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must not be before start_date"})
		return start, end, false
	}
	return *startPtr, *endPtr, true
}
