package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/orders"
	"hingmart/internal/infrastructure/storage/memory"
	"hingmart/pkg/logger"
)

// fakeBackend simulates the remote API: a credential login hands out a
// token, and order routes reject requests without it.
type fakeBackend struct {
	orders []*orders.Order
	logins int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.logins++
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"tokens": map[string]any{
					"accessToken":  "access-1",
					"refreshToken": "refresh-1",
					"tokenType":    "Bearer",
				},
			},
		})
	})
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, apperror.CodeUnauthorized, "invalid refresh token")
	})
	mux.HandleFunc("/api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			writeError(w, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing token")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": b.orders})
	})
	mux.HandleFunc("/api/v1/orders/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			writeError(w, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing token")
			return
		}
		switch {
		case r.URL.Path == "/api/v1/orders/missing":
			writeError(w, http.StatusNotFound, apperror.CodeNotFound, "order not found")
		case r.Method == http.MethodPatch:
			writeError(w, http.StatusUnprocessableEntity, apperror.CodeTransition, "mark previous status first")
		default:
			writeJSON(w, http.StatusOK, map[string]any{"data": b.orders[0]})
		}
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
}

func newTestClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:  srv.URL,
		Email:    "seller@example.com",
		Password: "secret-password",
	}, logger.Default())
}

func sampleOrder(id, name string) *orders.Order {
	return &orders.Order{
		ID:           id,
		CustomerName: name,
		Items:        []orders.OrderItem{{ID: "i1", Name: "Hing 10g", Quantity: 1, Rate: 100}},
		Status:       orders.NewOrderStatus(),
		CreatedAt:    "2026-03-01T10:00:00Z",
	}
}

func TestClient_AuthenticatesOnFirstRejection(t *testing.T) {
	backend := &fakeBackend{orders: []*orders.Order{sampleOrder("o1", "Asha Traders")}}
	client := newTestClient(t, backend)

	list, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o1", list[0].ID)
	assert.Equal(t, 1, backend.logins, "credential login after the initial 401")

	// Token is cached; the next call does not log in again.
	_, err = client.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, backend.logins)
}

func TestClient_ErrorMapping(t *testing.T) {
	backend := &fakeBackend{orders: []*orders.Order{sampleOrder("o1", "Asha Traders")}}
	client := newTestClient(t, backend)
	ctx := context.Background()

	_, err := client.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestClient_NetworkFailure(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"}, logger.Default())

	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsNetwork(err))
}

func TestClient_Sync(t *testing.T) {
	backend := &fakeBackend{orders: []*orders.Order{
		sampleOrder("o1", "Asha Traders"),
		sampleOrder("o2", "Mehta Stores"),
	}}
	client := newTestClient(t, backend)
	local := memory.NewOrderStore()

	count, err := client.Sync(context.Background(), local)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := local.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o1", list[0].ID)
}

func TestClient_SyncRecomputesLegacyTotals(t *testing.T) {
	legacy := &orders.Order{
		ID:           "o1",
		CustomerName: "Asha Traders",
		Items: []orders.OrderItem{
			{ID: "i1", Name: "Hing 10g", Quantity: 0, Unit: "3", Rate: 100, Total: 1},
		},
		TotalAmount: 1,
		Status:      orders.NewOrderStatus(),
		CreatedAt:   "2026-03-01T10:00:00Z",
	}
	backend := &fakeBackend{orders: []*orders.Order{legacy}}
	client := newTestClient(t, backend)
	local := memory.NewOrderStore()

	_, err := client.Sync(context.Background(), local)
	require.NoError(t, err)

	got, err := local.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.InDelta(t, 300, got.Items[0].Total, 0.001, "unit-based line amount recomputed")
	assert.InDelta(t, 300, got.TotalAmount, 0.001)
}

func TestToError_TransitionCode(t *testing.T) {
	client := &Client{}
	raw := []byte(`{"error":{"code":"INVALID_TRANSITION","message":"mark previous status first"}}`)
	err := client.toError(http.StatusUnprocessableEntity, raw)
	assert.True(t, apperror.IsTransition(err))

	err = client.toError(http.StatusUnprocessableEntity, []byte(`{"error":{"code":"VALIDATION_ERROR","message":"bad"}}`))
	assert.True(t, apperror.IsValidation(err))

	err = client.toError(http.StatusInternalServerError, nil)
	assert.True(t, apperror.IsNetwork(err))
}
