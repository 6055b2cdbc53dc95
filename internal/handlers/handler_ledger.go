package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukkan-app/dukkan_backend/internal/apperrors"
	portssvc "github.com/dukkan-app/dukkan_backend/internal/core/ports/services"
	"github.com/dukkan-app/dukkan_backend/internal/dto"
	"github.com/dukkan-app/dukkan_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for reconciliation statements and
// balances.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers statement and balance routes under a
// specific customer.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/:customerID/statement", h.getStatement)
	rg.GET("/:customerID/balance", h.getBalance)
	rg.POST("/:customerID/ledger/refresh", h.refreshLedger)
}

// getStatement returns the customer's full chronological account statement
// with running balances. Degraded sources and reconciliation warnings ride
// along on the response; only an unknown customer fails the call.
func (h *ledgerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	customerID := c.Param("customerID")

	statement, err := h.ledgerService.GetAccountStatement(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to build account statement", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build account statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// getBalance returns only the current balance, computed on the cheap
// aggregation path.
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	customerID := c.Param("customerID")

	balance, err := h.ledgerService.GetCurrentBalance(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to compute current balance", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute current balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{CustomerID: customerID, Balance: balance})
}

// refreshLedger is the change-notification hook: a write to any ledger
// source calls this to drop the customer's cached statement snapshot.
func (h *ledgerHandler) refreshLedger(c *gin.Context) {
	customerID := c.Param("customerID")
	h.ledgerService.InvalidateCustomer(customerID)
	middleware.GetLoggerFromContext(c).Info("Ledger snapshot invalidated", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}
