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

// expenseHandler handles HTTP requests related to manual expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to manual expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
	}
}

// createExpense records a manual operating expense.
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), salonID, req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create expense", slog.String("error", err.Error()), slog.String("salon_id", salonID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// listExpenses retrieves a salon's manual expenses, most recent first.
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")
	limit, offset := parsePagination(c)

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), salonID, limit, offset)
	if err != nil {
		logger.Error("Failed to list expenses", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list expenses"})
		return
	}

	c.JSON(http.StatusOK, expenses)
}
