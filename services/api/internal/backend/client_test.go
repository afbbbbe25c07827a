package backend

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	hc := srv.Client()
	hc.Timeout = time.Second
	return New(srv.URL, time.Second, WithHTTPClient(hc), WithLogger(log.New(io.Discard, "", 0)))
}

func writeEnvelope(w http.ResponseWriter, status int, data any, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data":       data,
		"message":    msg,
		"statusCode": status,
		"timestamp":  "2025-01-02T10:00:00Z",
	})
}

var session = domain.Session{Token: "tok-1", UserID: 7, Role: domain.RoleClient}

func TestGetQuote_DecodesWireShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/quotes/42", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{
			"data": {
				"id_cotacao": 42,
				"id_cliente": 7,
				"data_solicitacao": "2025-01-02T10:00:00Z",
				"status": "RESPONDIDA",
				"observacoes": "urgente",
				"itens": [{"id_produto": 7, "quantidade": 10}],
				"respostas": [
					{"id_cotacao": 42, "id_fornecedor": 1, "valor_unitario": 2.50, "prazo_entrega": "5 dias"},
					{"id_cotacao": 42, "id_fornecedor": 2, "valor_unitario": "2.20", "prazo_entrega": "7 dias"}
				]
			},
			"message": "ok",
			"statusCode": 200
		}`)
	})

	quote, err := client.GetQuote(context.Background(), session, 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), quote.ID)
	require.Equal(t, domain.QuoteStatusResponded, quote.Status)
	require.Equal(t, []domain.QuoteItem{{ProductID: 7, Quantity: 10}}, quote.Items)
	require.Len(t, quote.Responses, 2)
	require.Equal(t, int64(1), quote.Responses[0].SupplierID)
	require.True(t, decimal.RequireFromString("2.2").Equal(quote.Responses[1].UnitPrice))
	require.Equal(t, "urgente", quote.Notes)
}

func TestCreateOrder_SendsRoundedTotal(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 10.01, body["valor_total"])
		assert.Equal(t, float64(42), body["id_cotacao"])
		items := body["items"].([]any)
		assert.Len(t, items, 1)
		assert.Equal(t, 3.3375, items[0].(map[string]any)["valor_unitario"])

		writeEnvelope(w, http.StatusCreated, map[string]any{
			"id_pedido":   99,
			"valor_total": 10.01,
			"id_cliente":  7,
			"itens":       []any{map[string]any{"id_produto": 1, "quantidade": 3, "valor_unitario": 3.3375}},
		}, "created")
	})

	order := domain.Order{
		QuoteID: 42,
		Items: []domain.OrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("3.3375")},
		},
		Total: decimal.RequireFromString("10.0125"),
	}
	created, err := client.CreateOrder(context.Background(), session, order)
	require.NoError(t, err)
	require.Equal(t, int64(99), created.ID)
	require.Len(t, created.Items, 1)
}

func TestDo_ReturnsAPIErrorWithBackendMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, nil, "Produto sem estoque")
	})

	_, err := client.GetProduct(context.Background(), session, 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Produto sem estoque", apiErr.Message)
}

func TestDo_APIErrorFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetOrder(context.Background(), session, 5)
	require.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Not Found", apiErr.Message)
}

func TestSignIn_BuildsSession(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		writeEnvelope(w, http.StatusOK, map[string]any{
			"token": "jwt-token",
			"user":  map[string]any{"id_usuario": 3, "nome": "Ana", "email": "ana@example.com", "tipo_usuario": "supplier"},
		}, "")
	})

	sess, user, err := client.SignIn(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "jwt-token", sess.Token)
	require.Equal(t, int64(3), sess.UserID)
	require.Equal(t, domain.RoleSupplier, sess.Role)
	require.Equal(t, "Ana", user.Name)
}

func TestListProducts_PassesPagination(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"products": []any{
				map[string]any{"id_produto": 1, "nome_produto": "Parafuso", "descricao": "M6", "estoque": 3, "preco": 0.15},
			},
		}, "")
	})

	products, err := client.ListProducts(context.Background(), session, domain.Page{Page: 2, Limit: 50})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Parafuso", products[0].Name)
	require.Equal(t, 3, products[0].Stock)
}

func TestUpdateStock_SendsOperation(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/stock/products/8", r.URL.Path)
		var body stockPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, stockPayload{Quantity: 4, Operation: "subtract"}, body)
		writeEnvelope(w, http.StatusOK, map[string]any{"id_produto": 8, "estoque": 6}, "")
	})

	p, err := client.UpdateStock(context.Background(), session, 8, domain.StockUpdate{Quantity: 4, Operation: domain.StockSubtract})
	require.NoError(t, err)
	require.Equal(t, 6, p.Stock)
}

type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return c.next.RoundTrip(req)
}

func TestWithHTTPClient_UsesGivenTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]any{"id_pedido": 9}, "ok")
	}))
	t.Cleanup(srv.Close)

	transport := &countingTransport{next: srv.Client().Transport}
	client := New(srv.URL, time.Second,
		WithHTTPClient(&http.Client{Transport: transport, Timeout: time.Second}),
		WithLogger(log.New(io.Discard, "", 0)),
	)

	order, err := client.GetOrder(context.Background(), session, 9)
	require.NoError(t, err)
	require.Equal(t, int64(9), order.ID)
	require.Equal(t, int32(1), transport.calls.Load())

	// A nil client keeps the default one.
	require.NotNil(t, New(srv.URL, time.Second, WithHTTPClient(nil)).http)
}

func TestAPIError_Rejected(t *testing.T) {
	t.Parallel()

	cases := map[int]bool{
		http.StatusBadRequest:          true,
		http.StatusUnprocessableEntity: true,
		http.StatusTooManyRequests:     true,
		http.StatusRequestTimeout:      false,
		http.StatusConflict:            false,
		http.StatusBadGateway:          false,
		http.StatusInternalServerError: false,
	}
	for status, want := range cases {
		assert.Equal(t, want, newAPIError(status, "").Rejected(), status)
	}
}
