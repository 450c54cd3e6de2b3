package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/openretail/pos-api-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/openretail/pos-api-server/internal/domains/catalog/application"
	salesmemory "github.com/openretail/pos-api-server/internal/domains/sales/adapters/memory"
	salesapp "github.com/openretail/pos-api-server/internal/domains/sales/application"
	settingsmemory "github.com/openretail/pos-api-server/internal/domains/settings/adapters/memory"
	settingsapp "github.com/openretail/pos-api-server/internal/domains/settings/application"
	usermemory "github.com/openretail/pos-api-server/internal/domains/users/adapters/memory"
	userapp "github.com/openretail/pos-api-server/internal/domains/users/application"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orderRepo := salesmemory.NewRepository()
	salesService := salesapp.NewService(orderRepo, nil, "100")
	userService := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore())

	return NewRouter("pos-api-test", Handlers{
		Orders:   NewOrdersAPI(salesService, orderRepo),
		Products: NewProductsAPI(catalogapp.NewService(catalogmemory.NewRepository())),
		Users:    NewUsersAPI(userService),
		Settings: NewSettingsAPI(settingsapp.NewService(settingsmemory.NewRepository(), "")),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestCartCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	item := `{"product":{"id":"p-espresso","name":"Espresso","price":3.5,"isAvailable":true},"quantity":2,"total":7}`
	recorder := doJSON(t, router, http.MethodPost, "/api/cart/items", item)
	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	require.Equal(t, true, envelope["success"])
	cart := envelope["data"].(map[string]any)
	require.Equal(t, 7.0, cart["subtotal"])

	recorder = doJSON(t, router, http.MethodPost, "/api/cart/complete", "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	order := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.Equal(t, "100", order["orderId"])
	require.Equal(t, "completed", order["orderStatus"])

	// The working cart is cleared after checkout.
	recorder = doJSON(t, router, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Nil(t, decodeEnvelope(t, recorder)["data"])
}

func TestCompleteEmptyCartFails(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/cart/complete", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDraftSaveAndRestore(t *testing.T) {
	router := newTestRouter(t)

	item := `{"product":{"id":"p-espresso","name":"Espresso","price":3.5,"isAvailable":true},"quantity":1,"total":3.5}`
	recorder := doJSON(t, router, http.MethodPost, "/api/cart/items", item)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/cart/draft", "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	draft := decodeEnvelope(t, recorder)["data"].(map[string]any)
	draftID := draft["id"].(string)
	require.NotEmpty(t, draftID)
	require.Equal(t, true, draft["isDraft"])

	recorder = doJSON(t, router, http.MethodPost, "/api/orders/"+draftID+"/restore", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	restored := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.Equal(t, draftID, restored["id"])

	recorder = doJSON(t, router, http.MethodPost, "/api/orders/missing/restore", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestOrderHistoryFilter(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 2; i++ {
		item := `{"product":{"id":"p-espresso","name":"Espresso","price":3.5,"isAvailable":true},"quantity":1,"total":3.5}`
		recorder := doJSON(t, router, http.MethodPost, "/api/cart/items", item)
		require.Equal(t, http.StatusOK, recorder.Code)
		recorder = doJSON(t, router, http.MethodPost, "/api/cart/complete", "")
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder := doJSON(t, router, http.MethodGet, "/api/orders?orderStatus=completed", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	require.Equal(t, 2.0, envelope["totalCount"])

	recorder = doJSON(t, router, http.MethodGet, "/api/orders?orderStatus=draft", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	// No totalCount key when zero; the data list is empty.
	require.Empty(t, decodeEnvelope(t, recorder)["data"])
}

func TestProductEndpoints(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/products", `{"name":"Espresso","price":3.5,"category":"drinks","isAvailable":true}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	product := decodeEnvelope(t, recorder)["data"].(map[string]any)
	productID := product["id"].(string)
	require.Equal(t, "espresso", product["lowerCaseName"])

	recorder = doJSON(t, router, http.MethodGet, "/api/products/"+productID, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/products?name=esp", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1.0, decodeEnvelope(t, recorder)["totalCount"])

	recorder = doJSON(t, router, http.MethodPost, "/api/products", `{"price":1}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/products/missing", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUserLoginEndpoints(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/users", `{"username":"anna","password":"s3cret99","role":"admin","active":true}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.Equal(t, "anna", created["username"])
	_, exposed := created["password"]
	require.False(t, exposed)

	recorder = doJSON(t, router, http.MethodPost, "/api/users/login", `{"username":"anna","password":"s3cret99"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	login := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.NotEmpty(t, login["token"])

	recorder = doJSON(t, router, http.MethodPost, "/api/users/login", `{"username":"anna","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/settings/theme", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	theme := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.Equal(t, "#001e3d", theme["primaryColor"])

	recorder = doJSON(t, router, http.MethodPut, "/api/settings/theme", `{"primaryColor":"#112233","secondaryColor":"#445566","backgroundColor":"#ffffff","fontStyle":"serif"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/settings/currency", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	currency := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.Equal(t, "$", currency["currency"])
}

func TestSequenceEndpoints(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/orders/sequence", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, router, http.MethodPut, "/api/orders/sequence", `{"value":"104"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/orders/sequence", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	seq := decodeEnvelope(t, recorder)["data"].(map[string]any)
	require.Equal(t, "104", seq["value"])
}
