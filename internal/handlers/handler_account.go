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

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.getOrCreateAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccountByCode)
	}
}

// getOrCreateAccountRequest resolves an account by code, provisioning it when
// absent. Repeated calls with the same code return the same account.
type getOrCreateAccountRequest struct {
	Code        string             `json:"code" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// getOrCreateAccount resolves or provisions an account by (salon, code).
func (h *accountHandler) getOrCreateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var req getOrCreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetOrCreateAccount(c.Request.Context(), salonID, req.Code, req.Name, req.AccountType, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to resolve account", slog.String("error", err.Error()),
				slog.String("salon_id", salonID), slog.String("code", req.Code))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts lists a salon's accounts, optionally filtered by type.
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")

	var accountType *domain.AccountType
	if raw := c.Query("type"); raw != "" {
		t := domain.AccountType(raw)
		accountType = &t
	}

	accounts, err := h.accountService.GetAccounts(c.Request.Context(), salonID, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("salon_id", salonID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccountByCode retrieves one account by its code within the salon.
func (h *accountHandler) getAccountByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salonID := c.Param("salon_id")
	code := c.Param("code")

	account, err := h.accountService.FindAccountByCode(c.Request.Context(), salonID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
			return
		}
		logger.Error("Failed to get account", slog.String("error", err.Error()),
			slog.String("salon_id", salonID), slog.String("code", code))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
