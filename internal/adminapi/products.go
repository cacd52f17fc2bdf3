package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/inventory/internal/inventory"
	"github.com/talkincode/inventory/internal/webserver"
)

const msgProductNotFound = "Product not found"

type productListQuery struct {
	Query    string `query:"q" validate:"max=200"`
	Category string `query:"category" validate:"max=128"`
}

type quantityPayload struct {
	Quantity interface{} `json:"quantity"`
}

type productHandlers struct {
	store inventory.ProductStore
}

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes(srv *webserver.AdminServer, store inventory.ProductStore) {
	h := &productHandlers{store: store}
	srv.ApiGET("/products", h.listProducts)
	srv.ApiGET("/products/:id", h.getProduct)
	srv.ApiPOST("/products", h.createProduct)
	srv.ApiPUT("/products/:id", h.updateProduct)
	srv.ApiPATCH("/products/:id/quantity", h.adjustQuantity)
	srv.ApiDELETE("/products/:id", h.deleteProduct)
}

func (h *productHandlers) listProducts(c echo.Context) error {
	var q productListQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return handleValidationError(c, err)
	}

	products, err := h.store.List(c.Request().Context(), inventory.ListFilter{Query: q.Query, Category: q.Category})
	if err != nil {
		return storeFailure(c, err)
	}
	return ok(c, products)
}

func (h *productHandlers) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgProductNotFound)
	}
	p, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		return storeFailure(c, err)
	}
	return ok(c, p)
}

func (h *productHandlers) createProduct(c echo.Context) error {
	var payload inventory.ProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, bindMessage(err))
	}
	p, err := h.store.Create(c.Request().Context(), payload)
	if err != nil {
		return storeFailure(c, err)
	}
	zap.L().Info("product created", zap.Int64("id", p.ID), zap.String("name", p.Name))
	return c.JSON(http.StatusCreated, p)
}

func (h *productHandlers) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgProductNotFound)
	}
	var payload inventory.ProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, bindMessage(err))
	}
	p, err := h.store.Update(c.Request().Context(), id, payload)
	if err != nil {
		return storeFailure(c, err)
	}
	zap.L().Info("product updated", zap.Int64("id", p.ID))
	return ok(c, p)
}

func (h *productHandlers) adjustQuantity(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgProductNotFound)
	}
	var payload quantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, bindMessage(err))
	}
	p, err := h.store.AdjustQuantity(c.Request().Context(), id, payload.Quantity)
	if err != nil {
		return storeFailure(c, err)
	}
	zap.L().Info("product quantity adjusted", zap.Int64("id", p.ID), zap.Int("quantity", p.Quantity))
	return ok(c, p)
}

func (h *productHandlers) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusNotFound, msgProductNotFound)
	}
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		return storeFailure(c, err)
	}
	zap.L().Info("product deleted", zap.Int64("id", id))
	return ok(c, map[string]string{"message": "Product deleted successfully"})
}

// storeFailure maps store errors onto status codes.
func storeFailure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return fail(c, http.StatusNotFound, msgProductNotFound)
	case inventory.IsValidation(err):
		zap.L().Debug("product rejected", zap.String("reason", err.Error()))
		return fail(c, http.StatusBadRequest, err.Error())
	default:
		return fail(c, http.StatusInternalServerError, err.Error())
	}
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return "Unable to parse product"
}
