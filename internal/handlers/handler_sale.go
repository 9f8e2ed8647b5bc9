package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/middleware"
)

// saleHandler handles HTTP requests related to sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// newSaleHandler creates a new saleHandler.
func newSaleHandler(saleService portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: saleService}
}

// registerSaleRoutes sets up the routes for sales. Any staff member may ring
// up a sale; listing everything and voiding require admin or manager.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade, userService portssvc.UserSvcFacade) {
	h := newSaleHandler(saleService)
	staff := middleware.RequireRoles(userService, domain.RoleAdmin, domain.RoleManager, domain.RoleCashier)
	manage := middleware.RequireRoles(userService, domain.RoleAdmin, domain.RoleManager)

	sales := rg.Group("/sales", staff)
	{
		sales.POST("", h.createSale)
		sales.GET("/mine", h.listMySales)
		sales.GET("", manage, h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.DELETE("/:saleID", manage, h.voidSale)
	}
}

// createSale godoc
// @Summary Create a sale
// @Description Commits a checkout atomically: stock reservation, receipt number allocation and the sale record succeed or fail together.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Sale lines and payment method"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, cashierID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrProductInactive):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Checkout is busy, please retry"})
		default:
			logger.Error("Failed to create sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// voidSale godoc
// @Summary Void a sale
// @Description Reverses a committed sale: restores stock for every line and marks the sale inactive. A sale can only be voided once.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sales/{saleID} [delete]
func (h *saleHandler) voidSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	saleID := c.Param("saleID")
	voidedBy, _ := middleware.GetUserIDFromContext(c)

	sale, err := h.saleService.VoidSale(c.Request.Context(), saleID, voidedBy)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
		case errors.Is(err, apperrors.ErrAlreadyVoided):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Sale is already voided"})
		default:
			logger.Error("Failed to void sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to void sale"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// getSale godoc
// @Summary Get a sale
// @Description Retrieves a sale with its line items. Cashiers may only read their own sales.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	saleID := c.Param("saleID")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get sale"})
		return
	}

	requesterID, _ := middleware.GetUserIDFromContext(c)
	requesterRole, _ := middleware.GetUserRoleFromContext(c)
	if requesterRole == domain.RoleCashier && sale.CashierID != requesterID {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listMySales godoc
// @Summary List own sales
// @Description Lists the authenticated cashier's sales, newest first.
// @Tags sales
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListSalesResponse
// @Router /sales/mine [get]
func (h *saleHandler) listMySales(c *gin.Context) {
	cashierID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	filter := portsrepo.SaleFilter{CashierID: cashierID}

	sales, err := h.saleService.ListSales(c.Request.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(sales))
}

// listSales godoc
// @Summary List sales
// @Description Lists all sales matching the filter, newest first.
// @Tags sales
// @Produce json
// @Param cashierId query string false "Filter by cashier"
// @Param active query string false "Filter by active flag (true/false)"
// @Param startDate query string false "Period start (YYYY-MM-DD)"
// @Param endDate query string false "Period end, exclusive (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	filter := portsrepo.SaleFilter{CashierID: params.CashierID}
	switch params.Active {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}
	if params.StartDate != "" {
		from, err := time.Parse("2006-01-02", params.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "startDate must be formatted YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	if params.EndDate != "" {
		to, err := time.Parse("2006-01-02", params.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "endDate must be formatted YYYY-MM-DD"})
			return
		}
		filter.To = &to
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(sales))
}
