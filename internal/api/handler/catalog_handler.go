package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/portal/internal/api/metrics"
	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type addProductRequest struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type productListResponse struct {
	Products []*domain.Product `json:"products"`
}

// AddProduct appends a new catalog entry. Admin only; the RBAC middleware on
// this route is what enforces that.
//
// @Summary      Add a product to the catalog
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addProductRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /products [post]
func (h *CatalogHandler) AddProduct(c echo.Context) error {
	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.AddProduct(c.Request().Context(), req.Name, req.Price)
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, product)
}

// ListProducts returns the full catalog. Available to both roles.
//
// @Summary      List catalog products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  productListResponse
// @Failure      401   {object}  map[string]string
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, productListResponse{Products: products})
}
