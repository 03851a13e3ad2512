package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hingmart/internal/domain/auth"
	"hingmart/internal/domain/company"
	"hingmart/internal/domain/invoice"
	"hingmart/internal/domain/orders"
	"hingmart/internal/infrastructure/document"
	"hingmart/internal/infrastructure/storage/memory"
	"hingmart/pkg/logger"
	"hingmart/pkg/numerator"
)

type testAPI struct {
	router http.Handler
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logger.Default()
	userStore := memory.NewUserStore()
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	authService := auth.NewService(userStore, userStore, nil, jwtService, auth.DefaultServiceConfig())

	orderStore := memory.NewOrderStore()
	ordersService := orders.NewService(orderStore, nil, nil)
	companyService := company.NewService(memory.NewCompanyStore(), log)
	invoiceService := invoice.NewService(ordersService, companyService,
		numerator.New(memory.NewSequenceStore()))

	renderer, err := document.NewHTMLRenderer()
	require.NoError(t, err)

	api := &testAPI{router: NewRouter(RouterConfig{
		Logger:         log,
		JWTValidator:   jwtService,
		AuthService:    authService,
		OrdersService:  ordersService,
		CompanyService: companyService,
		InvoiceService: invoiceService,
		Renderer:       renderer,
		Version:        "test",
	})}

	resp := api.request(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":    "seller@example.com",
		"password": "secret-password",
		"name":     "Seller",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = api.request(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "seller@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var login struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &login))
	require.NotEmpty(t, login.Tokens.AccessToken)
	api.token = login.Tokens.AccessToken
	return api
}

func (a *testAPI) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) createOrder(t *testing.T, name string) *orders.Order {
	t.Helper()
	resp := a.request(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"customerName": name,
		"items": []map[string]any{
			{"name": "Hing 10g", "quantity": 2, "rate": 105, "tax": 5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var o orders.Order
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &o))
	return &o
}

func TestRouter_RequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	saved := api.token
	api.token = ""

	resp := api.request(t, http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"error"`)

	api.token = saved
	resp = api.request(t, http.MethodGet, "/api/v1/orders", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""
	resp := api.request(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRouter_OrderLifecycle(t *testing.T) {
	api := newTestAPI(t)

	o := api.createOrder(t, "Asha Traders")
	assert.InDelta(t, 220.5, o.TotalAmount, 1e-9)

	resp := api.request(t, http.MethodGet, "/api/v1/orders/"+o.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	// Skipping a step in the chain is rejected with the transition code.
	resp = api.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/status/paid", o.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "INVALID_TRANSITION")

	for _, key := range []string{"couriered", "delivered", "paid"} {
		resp = api.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/status/%s", o.ID, key), nil)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	var toggled orders.Order
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &toggled))
	assert.True(t, toggled.Status.Paid)
	assert.Len(t, toggled.Timeline, 3)

	resp = api.request(t, http.MethodDelete, "/api/v1/orders/"+o.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.request(t, http.MethodGet, "/api/v1/orders/"+o.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouter_ListFilter(t *testing.T) {
	api := newTestAPI(t)
	o := api.createOrder(t, "Delivered Co")
	api.createOrder(t, "Pending Co")

	for _, key := range []string{"couriered", "delivered"} {
		resp := api.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%s/status/%s", o.ID, key), nil)
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := api.request(t, http.MethodGet, "/api/v1/orders?filter=pending", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var pending []*orders.Order
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "Pending Co", pending[0].CustomerName)
}

func TestRouter_ParseText(t *testing.T) {
	api := newTestAPI(t)

	resp := api.request(t, http.MethodPost, "/api/v1/orders/parse", map[string]any{
		"text": "Customer: John Doe\nItems:\nHing 10g x2 @105",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var draft orders.Draft
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &draft))
	assert.Equal(t, "John Doe", draft.CustomerName)
	require.Len(t, draft.Items, 1)
}

func TestRouter_ValidationError(t *testing.T) {
	api := newTestAPI(t)
	resp := api.request(t, http.MethodPost, "/api/v1/orders", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
}

func TestRouter_CompanySeedsDefault(t *testing.T) {
	api := newTestAPI(t)

	resp := api.request(t, http.MethodGet, "/api/v1/company", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var c company.Company
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &c))
	assert.Equal(t, "Rs Hing", c.CompanyName)

	c.CompanyName = "Sharma Spices"
	c.GstNo = "27AAAAA0000A1Z5"
	resp = api.request(t, http.MethodPut, "/api/v1/company", c)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.request(t, http.MethodGet, "/api/v1/company", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &c))
	assert.Equal(t, "Sharma Spices", c.CompanyName)
}

func TestRouter_InvoiceEndpoints(t *testing.T) {
	api := newTestAPI(t)
	o := api.createOrder(t, "Asha Traders")

	resp := api.request(t, http.MethodGet, "/api/v1/orders/"+o.ID+"/invoice", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var summary invoice.Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.Equal(t, "Asha Traders", summary.CustomerName)
	assert.Contains(t, summary.InvoiceNumber, "INV-")
	assert.Contains(t, summary.AmountInWords, "Rupees Only")

	resp = api.request(t, http.MethodGet, "/api/v1/orders/"+o.ID+"/invoice/document", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, resp.Body.String(), "Asha Traders")
}
