package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cynthiamunja/saleSync/internal/apperrors"
	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portsrepo "github.com/cynthiamunja/saleSync/internal/core/ports/repositories"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
	"github.com/cynthiamunja/saleSync/internal/dto"
	"github.com/cynthiamunja/saleSync/internal/middleware"
)

// productHandler handles HTTP requests related to the product catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

// newProductHandler creates a new productHandler.
func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: productService}
}

// registerProductRoutes sets up the routes for the product catalog. Reads are
// open to all staff; catalog writes and stock corrections require admin or
// manager.
func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade, userService portssvc.UserSvcFacade) {
	h := newProductHandler(productService)
	manage := middleware.RequireRoles(userService, domain.RoleAdmin, domain.RoleManager)

	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.GET("/search", h.searchProducts)
		products.GET("/:productID", h.getProduct)
		products.POST("", manage, h.createProduct)
		products.PUT("/:productID", manage, h.updateProduct)
		products.PATCH("/:productID/stock", manage, h.adjustStock)
		products.PATCH("/:productID/activate", manage, h.activateProduct)
		products.PATCH("/:productID/deactivate", manage, h.deactivateProduct)
	}
}

// listProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Filter by category ID"
// @Param active query bool false "Only active products"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ListProductsResponse
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	filter := portsrepo.ListProductsFilter{
		CategoryID: params.CategoryID,
		OnlyActive: params.Active,
	}

	products, err := h.productService.ListProducts(c.Request.Context(), filter, params.Limit, params.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductsResponse(products))
}

// searchProducts godoc
// @Summary Search products by name
// @Tags products
// @Produce json
// @Param q query string true "Search text"
// @Param limit query int false "Maximum results"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} ErrorResponse
// @Router /products/search [get]
func (h *productHandler) searchProducts(c *gin.Context) {
	query := c.Query("q")
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	products, err := h.productService.SearchProducts(c.Request.Context(), query, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Search query is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to search products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductsResponse(products))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	productID := c.Param("productID")

	product, err := h.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	creatorID, _ := middleware.GetUserIDFromContext(c)

	product, err := h.productService.CreateProduct(c.Request.Context(), req, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Product already exists"})
		default:
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create product"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update a product
// @Description Updates catalog fields. Past sales keep their frozen prices.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Product fields"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID := c.Param("productID")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	updaterID, _ := middleware.GetUserIDFromContext(c)

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, req, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
		default:
			logger.Error("Failed to update product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// adjustStock godoc
// @Summary Adjust product stock
// @Description Applies a manual stock correction; the delta may be negative but stock can never go below zero.
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param adjustment body dto.AdjustStockRequest true "Stock delta"
// @Success 200 {object} map[string]int64 "New stock quantity"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /products/{productID}/stock [patch]
func (h *productHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID := c.Param("productID")

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adjustStock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	updaterID, _ := middleware.GetUserIDFromContext(c)

	newQuantity, err := h.productService.AdjustStock(c.Request.Context(), productID, req.Delta, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
		case errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Adjustment would take stock below zero"})
		default:
			logger.Error("Failed to adjust stock", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to adjust stock"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"stockQuantity": newQuantity})
}

// activateProduct godoc
// @Summary Activate a product
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /products/{productID}/activate [patch]
func (h *productHandler) activateProduct(c *gin.Context) {
	h.setActive(c, true)
}

// deactivateProduct godoc
// @Summary Deactivate a product
// @Description Deactivated products are rejected at checkout but keep their history.
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Router /products/{productID}/deactivate [patch]
func (h *productHandler) deactivateProduct(c *gin.Context) {
	h.setActive(c, false)
}

func (h *productHandler) setActive(c *gin.Context, active bool) {
	productID := c.Param("productID")
	updaterID, _ := middleware.GetUserIDFromContext(c)

	var err error
	if active {
		err = h.productService.ActivateProduct(c.Request.Context(), productID, updaterID)
	} else {
		err = h.productService.DeactivateProduct(c.Request.Context(), productID, updaterID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update product"})
		return
	}

	c.Status(http.StatusNoContent)
}
