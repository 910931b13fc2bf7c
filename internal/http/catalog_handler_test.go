package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishiply/storefront/internal/catalog"
)

func TestGetProduct_Found(t *testing.T) {
	cat := newFakeCatalog()
	cat.products["prod-1"] = catalog.Product{ID: "prod-1", Name: "Widget", Price: 10.00}
	handler := NewCatalogHandler(cat)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil), "productId", "prod-1")
	rr := httptest.NewRecorder()

	handler.GetProduct(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp catalog.Product
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Widget", resp.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	handler := NewCatalogHandler(newFakeCatalog())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/prod-gone", nil), "productId", "prod-gone")
	rr := httptest.NewRecorder()

	handler.GetProduct(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListShopProducts_EmptyIsArray(t *testing.T) {
	handler := NewCatalogHandler(newFakeCatalog())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/shops/shop-1/products", nil), "shopId", "shop-1")
	rr := httptest.NewRecorder()

	handler.ListShopProducts(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]\n", rr.Body.String())
}

func TestCreateProduct_Success(t *testing.T) {
	cat := newFakeCatalog()
	cat.byOwner["user-1"] = catalog.Shop{ID: "shop-1", OwnerID: "user-1"}
	handler := NewCatalogHandler(cat)

	body := `{"name":"Widget","description":"a widget","price":10.00,"quantity":5}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)), "sess-1", "user-1")
	rr := httptest.NewRecorder()

	handler.CreateProduct(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, cat.created, 1)
	assert.Equal(t, "shop-1", cat.created[0].ShopID)
	assert.Equal(t, "Widget", cat.created[0].Name)
}

func TestCreateProduct_NoShop(t *testing.T) {
	handler := NewCatalogHandler(newFakeCatalog())

	body := `{"name":"Widget","price":10.00,"quantity":5}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)), "sess-1", "user-1")
	rr := httptest.NewRecorder()

	handler.CreateProduct(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "create a shop first")
}

func TestCreateProduct_Invalid(t *testing.T) {
	cat := newFakeCatalog()
	cat.byOwner["user-1"] = catalog.Shop{ID: "shop-1", OwnerID: "user-1"}
	handler := NewCatalogHandler(cat)

	body := `{"name":"","price":10.00,"quantity":5}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body)), "sess-1", "user-1")
	rr := httptest.NewRecorder()

	handler.CreateProduct(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, cat.created)
}
