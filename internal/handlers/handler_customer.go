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
	"github.com/go-playground/validator/v10"
)

// customerHandler handles HTTP requests for customer accounts.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
	ledgerService   portssvc.LedgerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, ls portssvc.LedgerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs, ledgerService: ls}
}

// registerCustomerRoutes registers customer account routes, including the
// nested ledger routes.
func registerCustomerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newCustomerHandler(services.Customer, services.Ledger)

	customers := rg.Group("/customers")
	{
		customers.GET("", h.listCustomers)
		customers.GET("/:customerID", h.getCustomer)
		registerLedgerRoutes(customers, services.Ledger)
	}
}

// listCustomers returns a cursor-paginated page of customer accounts.
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, len(validationErrs))
			for i, fe := range validationErrs {
				fields[i] = fe.Field()
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "fields": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	var nextToken *string
	if req.NextToken != "" {
		nextToken = &req.NextToken
	}

	customers, token, err := h.customerService.ListCustomers(c.Request.Context(), req.Limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list customers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers, token))
}

// getCustomer returns one customer account with its current balance
// attached.
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		logger.Error("Failed to get customer", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer"})
		return
	}

	response := dto.ToCustomerResponse(*customer)
	if balance, err := h.ledgerService.GetCurrentBalance(c.Request.Context(), customerID); err != nil {
		// Balance is decoration on this endpoint; the account itself is
		// still returned.
		logger.Warn("Current balance unavailable for customer response", slog.String("customer_id", customerID), slog.String("error", err.Error()))
	} else {
		response.CurrentBalance = &balance
	}

	c.JSON(http.StatusOK, response)
}
