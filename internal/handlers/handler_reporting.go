package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/middleware"
)

// reportingHandler handles HTTP requests for revenue reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes sets up the reporting routes, admin/manager only.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, userService portssvc.UserSvcFacade) {
	h := newReportingHandler(reportingService)
	manage := middleware.RequireRoles(userService, domain.RoleAdmin, domain.RoleManager)

	reports := rg.Group("/reports", manage)
	{
		reports.GET("/daily", h.dailyRevenue)
		reports.GET("/monthly/summary", h.monthlySummary)
		reports.GET("/monthly/breakdown", h.monthlyBreakdown)
		reports.GET("/monthly/profit", h.profitReport)
		reports.GET("/monthly/top-products", h.topProducts)
		reports.GET("/monthly/payment-methods", h.paymentMethodBreakdown)
		reports.GET("/yearly/summary", h.yearlySummary)
	}
}

// dailyRevenue godoc
// @Summary Daily revenue report
// @Description Total revenue and sale count for one calendar day. Voided sales are excluded.
// @Tags reports
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyRevenueResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/daily [get]
func (h *reportingHandler) dailyRevenue(c *gin.Context) {
	date := c.Query("date")

	report, err := h.reportingService.DailyRevenue(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be formatted YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// monthlySummary godoc
// @Summary Monthly revenue summary
// @Description Revenue, sale count and items sold for one calendar month. Voided sales are excluded.
// @Tags reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/monthly/summary [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	month := c.Query("month")

	report, err := h.reportingService.MonthlySummary(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted YYYY-MM"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// monthlyBreakdown godoc
// @Summary Monthly per-day revenue breakdown
// @Description Per-day revenue within one calendar month. Days without active sales are omitted.
// @Tags reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.MonthlyBreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/monthly/breakdown [get]
func (h *reportingHandler) monthlyBreakdown(c *gin.Context) {
	month := c.Query("month")

	report, err := h.reportingService.MonthlyBreakdown(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted YYYY-MM"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// profitReport godoc
// @Summary Monthly profit report
// @Description Revenue, cost and profit for one calendar month, computed from the price and cost snapshots frozen on each sale line.
// @Tags reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.ProfitReportResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/monthly/profit [get]
func (h *reportingHandler) profitReport(c *gin.Context) {
	month := c.Query("month")

	report, err := h.reportingService.ProfitReport(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted YYYY-MM"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// topProducts godoc
// @Summary Monthly top-selling products
// @Description The month's best sellers ranked by quantity sold. Voided sales are excluded.
// @Tags reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.TopProductsResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/monthly/top-products [get]
func (h *reportingHandler) topProducts(c *gin.Context) {
	month := c.Query("month")

	report, err := h.reportingService.TopProducts(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted YYYY-MM"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// paymentMethodBreakdown godoc
// @Summary Monthly revenue by payment method
// @Description Revenue and sale count per payment method for one calendar month.
// @Tags reports
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} dto.PaymentMethodBreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/monthly/payment-methods [get]
func (h *reportingHandler) paymentMethodBreakdown(c *gin.Context) {
	month := c.Query("month")

	report, err := h.reportingService.PaymentMethodBreakdown(c.Request.Context(), month)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be formatted YYYY-MM"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// yearlySummary godoc
// @Summary Yearly revenue summary
// @Description Total revenue and sale count for one calendar year. Voided sales are excluded.
// @Tags reports
// @Produce json
// @Param year query string true "Year (YYYY)"
// @Success 200 {object} dto.YearlySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Router /reports/yearly/summary [get]
func (h *reportingHandler) yearlySummary(c *gin.Context) {
	year := c.Query("year")

	report, err := h.reportingService.YearlySummary(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year must be formatted YYYY"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
