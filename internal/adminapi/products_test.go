package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/inventory/config"
	"github.com/talkincode/inventory/internal/app"
	"github.com/talkincode/inventory/internal/domain"
	"github.com/talkincode/inventory/internal/webserver"
)

type testEnv struct {
	app *app.Application
	srv *webserver.AdminServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Database.Name = ":memory:"
	cfg.Web.StaticDir = ""
	cfg.Web.MetricsEnable = false
	cfg.Web.RateLimit = 0

	db, err := app.OpenDatabase(cfg.Database, t.TempDir())
	require.NoError(t, err)
	a := app.NewApplication(&cfg)
	a.OverrideDB(db)
	t.Cleanup(a.Release)
	require.NoError(t, a.MigrateDB(false))

	srv := webserver.NewAdminServer(&cfg)
	Init(srv, a)
	return &testEnv{app: a, srv: srv}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.srv.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeProduct(t *testing.T, rec *httptest.ResponseRecorder) domain.Product {
	t.Helper()
	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p), rec.Body.String())
	return p
}

func (e *testEnv) create(t *testing.T, body string) domain.Product {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeProduct(t, rec)
}

func TestCreateProductAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/products", `{"name":"Widget","price":9.99,"quantity":5}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotZero(t, body["id"])
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, "", body["description"])
	assert.Equal(t, "Uncategorized", body["category"])
	assert.Equal(t, domain.DefaultImageURL, body["imageUrl"])
	assert.Equal(t, 9.99, body["price"])
	assert.Equal(t, float64(5), body["quantity"])
	assert.NotEmpty(t, body["createdAt"])
}

func TestCreateProductValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty name", `{"name":"","price":9.99,"quantity":5}`, "name is required"},
		{"missing price", `{"name":"Widget","quantity":5}`, "price is required"},
		{"negative price", `{"name":"Widget","price":-1,"quantity":5}`, "price must not be negative"},
		{"text price", `{"name":"Widget","price":"abc","quantity":5}`, "price must be a valid number"},
		{"fractional quantity", `{"name":"Widget","price":1,"quantity":1.5}`, "quantity must be a whole number"},
		{"null quantity", `{"name":"Widget","price":1,"quantity":null}`, "quantity is required"},
		{"bool quantity", `{"name":"Widget","price":1,"quantity":true}`, "quantity must be a valid number"},
		{"object name", `{"name":{"en":"Widget"},"price":1,"quantity":5}`, "name must be a string"},
		{"bool description", `{"name":"Widget","description":true,"price":1,"quantity":5}`, "description must be a string"},
		{"empty body", ``, "name is required; price is required; quantity is required"},
		{"broken json", `{"name":`, "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.body == "" {
				req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				rec = httptest.NewRecorder()
				env.srv.Echo().ServeHTTP(rec, req)
			} else {
				rec = env.do(t, http.MethodPost, "/api/products", tt.body)
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.want), rec.Body.String())
		})
	}

	list := env.do(t, http.MethodGet, "/api/products", "")
	assert.JSONEq(t, `[]`, list.Body.String())
}

func TestCreateProductAcceptsNumericStrings(t *testing.T) {
	env := newTestEnv(t)

	p := env.create(t, `{"name":"Hub","price":"49.99","quantity":"30","category":"Electronics"}`)

	assert.Equal(t, 49.99, p.Price)
	assert.Equal(t, 30, p.Quantity)
	assert.Equal(t, "Electronics", p.Category)
}

func TestCreateProductCoercesNumericText(t *testing.T) {
	env := newTestEnv(t)

	p := env.create(t, `{"name":5,"description":42,"price":1,"quantity":1}`)

	assert.Equal(t, "5", p.Name)
	assert.Equal(t, "42", p.Description)
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	first := env.create(t, `{"name":"Mouse","price":29.99,"quantity":50,"category":"Electronics"}`)
	second := env.create(t, `{"name":"Chair","price":249.99,"quantity":10,"category":"Furniture"}`)

	rec = env.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, first.ID, products[1].ID)

	rec = env.do(t, http.MethodGet, "/api/products?q=mou", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, first.ID, products[0].ID)

	rec = env.do(t, http.MethodGet, "/api/products?category=Furniture", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, second.ID, products[0].ID)

	rec = env.do(t, http.MethodGet, "/api/products?q="+strings.Repeat("x", 201), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"q must be at most 200 characters"}`, rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, `{"name":"Lamp","description":"LED","price":39.99,"quantity":35}`)

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeProduct(t, rec)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "LED", got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	for _, path := range []string{"/api/products/999", "/api/products/abc"} {
		rec = env.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
	}
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, `{"name":"Desk","price":499.99,"quantity":8,"category":"Furniture","imageUrl":"https://example.com/d.png"}`)
	path := fmt.Sprintf("/api/products/%d", created.ID)

	rec := env.do(t, http.MethodPut, path, `{"name":"Standing Desk","description":"Adjustable","price":450,"quantity":6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeProduct(t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Standing Desk", updated.Name)
	assert.Equal(t, "Adjustable", updated.Description)
	assert.Equal(t, 450.0, updated.Price)
	assert.Equal(t, 6, updated.Quantity)
	assert.Equal(t, "Uncategorized", updated.Category)
	assert.Equal(t, domain.DefaultImageURL, updated.ImageURL)

	rec = env.do(t, http.MethodPut, path, `{"name":"Standing Desk","price":-450,"quantity":6}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/products/424242", `{"name":"Ghost","price":1,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())

	count, err := env.app.Store().Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAdjustQuantity(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, `{"name":"Notes","description":"Sticky","price":9.99,"quantity":100,"category":"Stationery"}`)
	path := fmt.Sprintf("/api/products/%d/quantity", created.ID)

	rec := env.do(t, http.MethodPatch, path, `{"quantity":42}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeProduct(t, rec)
	assert.Equal(t, 42, got.Quantity)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Description, got.Description)
	assert.Equal(t, created.Price, got.Price)
	assert.Equal(t, created.Category, got.Category)
	assert.Equal(t, created.ImageURL, got.ImageURL)

	rec = env.do(t, http.MethodPatch, path, `{"quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"quantity must not be negative"}`, rec.Body.String())

	rec = env.do(t, http.MethodPatch, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"quantity is required"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.ID), "")
	assert.Equal(t, 42, decodeProduct(t, rec).Quantity)

	rec = env.do(t, http.MethodPatch, "/api/products/31337/quantity", `{"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, `{"name":"Bottle","price":24.99,"quantity":55}`)
	path := fmt.Sprintf("/api/products/%d", created.ID)

	rec := env.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product deleted successfully"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
}

func TestStorageFaultIsInternalError(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.app.DB().Migrator().DropTable(&domain.Product{}))

	rec := env.do(t, http.MethodGet, "/api/products", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "no such table")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	sqlDB, err := env.app.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec = env.do(t, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
