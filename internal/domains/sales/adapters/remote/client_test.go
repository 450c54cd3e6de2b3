package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

func respond(t *testing.T, w http.ResponseWriter, data any, totalCount int64) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"data":       data,
		"message":    "",
		"success":    true,
		"totalCount": totalCount,
	}))
}

func TestClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "draft", body["orderStatus"])

		body["id"] = "order-1"
		respond(t, w, body, 0)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	created, err := client.CreateOrder(context.Background(), &domain.Cart{
		Status: domain.StatusDraft,
		Items:  []domain.LineItem{{ProductID: "p1", Quantity: 2, Total: 7}},
	})
	require.NoError(t, err)
	require.Equal(t, "order-1", created.ID)
	require.Equal(t, domain.StatusDraft, created.Status)
	require.Len(t, created.Items, 1)
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.GetOrder(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestClient_ListOrders_ForwardsFilterAndTotal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "completed", query.Get("orderStatus"))
		require.Equal(t, "2", query.Get("pageNumber"))
		require.Equal(t, "till-2", query.Get("terminal"))

		respond(t, w, []map[string]any{
			{"id": "order-1", "orderStatus": "completed"},
			{"id": "order-2", "orderStatus": "completed"},
		}, 7)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	page, err := client.ListOrders(context.Background(), domain.Filter{
		domain.FilterStatus: "completed",
		domain.FilterPage:   "2",
		"terminal":          "till-2",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), page.TotalCount)
	require.Len(t, page.Items, 2)
	require.Equal(t, "order-1", page.Items[0].ID)
}

func TestClient_SequenceRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/sequence", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			respond(t, w, map[string]any{"id": "seq", "value": "104"}, 0)
		case http.MethodPut:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			respond(t, w, body, 0)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	seq, err := client.LoadSequence(context.Background())
	require.NoError(t, err)
	require.Equal(t, "104", seq.Value)

	saved, err := client.SaveSequence(context.Background(), &domain.OrderSequence{ID: "seq", Value: "105"})
	require.NoError(t, err)
	require.Equal(t, "105", saved.Value)
}

func TestClient_RejectedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":null,"message":"sequence locked","success":false}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.LoadSequence(context.Background())
	require.ErrorContains(t, err, "sequence locked")
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ", nil)
	require.Error(t, err)

	client, err := NewClient("http://localhost:3000/", nil)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", client.baseURL)
}
