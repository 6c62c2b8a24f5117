package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/glowslot/salon_ledger/internal/apperrors"
	"github.com/glowslot/salon_ledger/internal/core/domain"
	portssvc "github.com/glowslot/salon_ledger/internal/core/ports/services"
	"github.com/glowslot/salon_ledger/internal/middleware"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.GET("/me", h.getMyWallet)
		wallets.GET("/:wallet_id", h.getWallet)
		wallets.GET("/:wallet_id/transactions", h.listTransactions)
		wallets.POST("/transfers", h.transfer)
	}
}

// transferRequest moves funds between two wallets. A missing payer wallet
// models externally funded credits.
type transferRequest struct {
	PayerWalletID *string         `json:"payerWalletID"`
	PayeeWalletID string          `json:"payeeWalletID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	ReferenceType string          `json:"referenceType" binding:"required"`
	ReferenceID   string          `json:"referenceID" binding:"required"`
	Description   string          `json:"description"`
}

// getMyWallet resolves the authenticated user's wallet, provisioning it
// lazily on first access.
func (h *walletHandler) getMyWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetOrCreateWallet(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to resolve wallet", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve wallet"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// getWallet retrieves a wallet by ID.
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("wallet_id")

	wallet, err := h.walletService.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Wallet not found"})
			return
		}
		logger.Error("Failed to get wallet", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get wallet"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// listTransactions retrieves a wallet's movement history, most recent first.
func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("wallet_id")
	limit, offset := parsePagination(c)

	transactions, err := h.walletService.ListTransactions(c.Request.Context(), walletID, limit, offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Wallet not found"})
			return
		}
		logger.Error("Failed to list wallet transactions", slog.String("error", err.Error()), slog.String("wallet_id", walletID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list wallet transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// transfer moves funds between two wallets atomically.
func (h *walletHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	err := h.walletService.Transfer(c.Request.Context(), req.PayerWalletID, req.PayeeWalletID,
		req.Amount, domain.ReferenceType(req.ReferenceType), req.ReferenceID, req.Description)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "Insufficient funds"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Wallet not found"})
		} else {
			logger.Error("Failed to transfer", slog.String("error", err.Error()),
				slog.String("payee_wallet_id", req.PayeeWalletID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
