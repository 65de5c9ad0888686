package handler

import (
	"net/http"

	"giftly-be/internal/catalog"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalogService catalog.CatalogService
}

func NewCatalogHandler(catalogService catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// -------- public browse --------

func (h *CatalogHandler) BrowseProducts(c echo.Context) error {
	ctx := c.Request().Context()
	limit, page := pageParams(c)

	products, total, err := h.catalogService.BrowseProducts(ctx, searchParam(c), limit, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: products, Total: total, Page: page, Limit: limit})
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	p, err := h.catalogService.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) BrowseServices(c echo.Context) error {
	ctx := c.Request().Context()
	limit, page := pageParams(c)

	services, total, err := h.catalogService.BrowseServices(ctx, searchParam(c), limit, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: services, Total: total, Page: page, Limit: limit})
}

func (h *CatalogHandler) GetService(c echo.Context) error {
	s, err := h.catalogService.GetService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

// -------- vendor products --------

type productRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    *string         `json:"image_url"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"image_url"`
	Active      *bool            `json:"active"`
}

func (h *CatalogHandler) ListVendorProducts(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}
	limit, page := pageParams(c)

	products, total, err := h.catalogService.StoreProducts(c.Request().Context(), storeID, limit, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: products, Total: total, Page: page, Limit: limit})
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	p, err := h.catalogService.CreateProduct(c.Request().Context(), storeID, catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := h.catalogService.UpdateProduct(c.Request().Context(), c.Param("id"), storeID, catalog.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteProduct(c.Request().Context(), c.Param("id"), storeID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -------- vendor services --------

type serviceRequest struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"image_url"`
}

type updateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Active      *bool            `json:"active"`
}

func (h *CatalogHandler) ListVendorServices(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}
	limit, page := pageParams(c)

	services, total, err := h.catalogService.StoreServices(c.Request().Context(), storeID, limit, page)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, paginated{Data: services, Total: total, Page: page, Limit: limit})
}

func (h *CatalogHandler) CreateService(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	s, err := h.catalogService.CreateService(c.Request().Context(), storeID, catalog.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) UpdateService(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}

	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	s, err := h.catalogService.UpdateService(c.Request().Context(), c.Param("id"), storeID, catalog.UpdateServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *CatalogHandler) DeleteService(c echo.Context) error {
	storeID, err := currentStoreID(c)
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteService(c.Request().Context(), c.Param("id"), storeID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
