package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/app"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/backend"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

var clientSession = domain.Session{Token: "tok", UserID: 7, Role: domain.RoleClient}

func withSession(req *http.Request, sess domain.Session) *http.Request {
	return req.WithContext(WithSession(req.Context(), sess))
}

func TestHandleCreateQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"itens":[{"id_produto":1,"quantidade":3}],"observacoes":"urgente"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"id_cotacao":31`,
		},
		{
			name:           "invalid json",
			body:           `{"itens":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			body:           `{"items":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no items",
			body:           `{"itens":[]}`,
			serviceErr:     domain.ErrQuoteHasNoItems,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeQuoteHasNoItems,
		},
		{
			name:           "backend error passes through",
			body:           `{"itens":[{"id_produto":1,"quantidade":3}]}`,
			serviceErr:     &backend.APIError{StatusCode: http.StatusUnprocessableEntity, Message: "Produto inexistente"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedSubstr: "Produto inexistente",
		},
		{
			name:           "internal error",
			body:           `{"itens":[{"id_produto":1,"quantidade":3}]}`,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubQuoteService{err: tt.serviceErr}
			req := withSession(httptest.NewRequest(http.MethodPost, "/quotes", bytes.NewBufferString(tt.body)), clientSession)
			rec := httptest.NewRecorder()

			HandleCreateQuote(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleQuoteRanking(t *testing.T) {
	t.Parallel()

	ranking := app.Ranking{
		Quote: domain.Quote{ID: 5, Status: domain.QuoteStatusResponded},
		Best: app.RankedResponse{
			Response:       domain.SupplierResponse{SupplierID: 12, UnitPrice: decimal.RequireFromString("5")},
			EstimatedTotal: decimal.RequireFromString("25.005"),
		},
	}
	ranking.Responses = []app.RankedResponse{ranking.Best}

	tests := []struct {
		name           string
		path           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			path:           "/quotes/5/ranking",
			expectedStatus: http.StatusOK,
			expectedSubstr: `"melhor_resposta":{"id_fornecedor":12,"valor_unitario":5.00,"valor_total":25.01}`,
		},
		{
			name:           "invalid id",
			path:           "/quotes/abc/ranking",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not respondable",
			path:           "/quotes/5/ranking",
			serviceErr:     domain.ErrQuoteNotRespondable,
			expectedStatus: http.StatusConflict,
			expectedSubstr: codeQuoteNotRespondable,
		},
		{
			name:           "no responses",
			path:           "/quotes/5/ranking",
			serviceErr:     domain.ErrNoResponses,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubQuoteService{ranking: ranking, err: tt.serviceErr}
			req := withSession(httptest.NewRequest(http.MethodGet, tt.path, nil), clientSession)
			rec := httptest.NewRecorder()

			HandleQuoteRanking(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleRespondQuote(t *testing.T) {
	t.Parallel()

	supplier := domain.Session{Token: "tok", UserID: 21, Role: domain.RoleSupplier}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", body: `{"unitPrice":4.75,"deliveryTime":"5 dias"}`, expectedStatus: http.StatusCreated},
		{name: "price as string", body: `{"unitPrice":"4.75"}`, expectedStatus: http.StatusCreated},
		{name: "invalid price", body: `{"unitPrice":0}`, serviceErr: domain.ErrInvalidPrice, expectedStatus: http.StatusBadRequest},
		{name: "already responded", body: `{"unitPrice":4.75}`, serviceErr: domain.ErrAlreadyResponded, expectedStatus: http.StatusConflict},
		{name: "terminal", body: `{"unitPrice":4.75}`, serviceErr: domain.ErrQuoteTerminal, expectedStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubQuoteService{err: tt.serviceErr}
			req := withSession(httptest.NewRequest(http.MethodPost, "/quotes/8/responses", bytes.NewBufferString(tt.body)), supplier)
			rec := httptest.NewRecorder()

			HandleRespondQuote(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.serviceErr == nil && svc.respondedQuote != 8 {
				t.Fatalf("expected quote 8, got %d", svc.respondedQuote)
			}
		})
	}
}

func TestQuoteActions(t *testing.T) {
	t.Parallel()

	handler := QuoteActions(map[string]http.Handler{
		"ranking": http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	})

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{path: "/quotes/1/ranking", expectedStatus: http.StatusTeapot},
		{path: "/quotes/1/unknown", expectedStatus: http.StatusNotFound},
		{path: "/quotes/1", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.expectedStatus {
			t.Fatalf("%s: expected status %d, got %d", tt.path, tt.expectedStatus, rec.Code)
		}
	}
}

func TestHandleListQuotes(t *testing.T) {
	t.Parallel()

	svc := &stubQuoteService{}
	rec := httptest.NewRecorder()
	HandleListQuotes(svc).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/quotes?status=pendente&page=1&limit=20", nil), clientSession))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if svc.listedStatus != "pendente" || svc.listedPage != (domain.Page{Page: 1, Limit: 20}) {
		t.Fatalf("unexpected list call: status=%q page=%+v", svc.listedStatus, svc.listedPage)
	}
	if !strings.Contains(rec.Body.String(), `"id_cotacao":31`) {
		t.Fatalf("expected quote in body, got %q", rec.Body.String())
	}

	svc.err = domain.ErrInvalidStatus
	rec = httptest.NewRecorder()
	HandleListQuotes(svc).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/quotes?status=archived", nil), clientSession))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleUpdateQuoteStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", method: http.MethodPut, path: "/quotes/4/status", body: `{"status":"CANCELADA"}`, expectedStatus: http.StatusOK},
		{name: "terminal", method: http.MethodPut, path: "/quotes/4/status", body: `{"status":"PENDING"}`, serviceErr: domain.ErrQuoteTerminal, expectedStatus: http.StatusConflict},
		{name: "not owner", method: http.MethodPut, path: "/quotes/4/status", body: `{"status":"CANCELLED"}`, serviceErr: domain.ErrForbidden, expectedStatus: http.StatusForbidden},
		{name: "bad body", method: http.MethodPut, path: "/quotes/4/status", body: `{"state":"x"}`, expectedStatus: http.StatusBadRequest},
		{name: "bad id", method: http.MethodPut, path: "/quotes/x/status", body: `{"status":"CANCELLED"}`, expectedStatus: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodPost, path: "/quotes/4/status", body: `{"status":"CANCELLED"}`, expectedStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubQuoteService{err: tt.serviceErr}
			req := withSession(httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body)), clientSession)
			rec := httptest.NewRecorder()

			HandleUpdateQuoteStatus(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus == http.StatusOK && !strings.Contains(rec.Body.String(), `"status":"CANCELLED"`) {
				t.Fatalf("expected new status in body, got %q", rec.Body.String())
			}
		})
	}
}

func TestHandleListSuppliers(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	HandleListSuppliers(&stubQuoteService{}).ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodGet, "/quotes/suppliers", nil), clientSession))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"tipo_usuario":"SUPPLIER"`) {
		t.Fatalf("expected supplier in body, got %q", rec.Body.String())
	}
}

type stubQuoteService struct {
	ranking        app.Ranking
	err            error
	respondedQuote int64
	listedStatus   string
	listedPage     domain.Page
}

func (s *stubQuoteService) ListQuotes(_ context.Context, sess domain.Session, page domain.Page, status string) ([]domain.Quote, error) {
	s.listedStatus = status
	s.listedPage = page
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Quote{{ID: 31, RequesterID: sess.UserID, Status: domain.QuoteStatusPending}}, nil
}

func (s *stubQuoteService) UpdateStatus(_ context.Context, sess domain.Session, quoteID int64, status string) (domain.Quote, error) {
	if s.err != nil {
		return domain.Quote{}, s.err
	}
	return domain.Quote{ID: quoteID, RequesterID: sess.UserID, Status: domain.ParseQuoteStatus(status)}, nil
}

func (s *stubQuoteService) Suppliers(_ context.Context, _ domain.Session) ([]domain.User, error) {
	return []domain.User{{ID: 21, Name: "Ferragens", Role: domain.RoleSupplier}}, s.err
}

func (s *stubQuoteService) RequestQuote(_ context.Context, sess domain.Session, in app.RequestQuoteInput) (domain.Quote, error) {
	if s.err != nil {
		return domain.Quote{}, s.err
	}
	return domain.Quote{ID: 31, RequesterID: sess.UserID, Status: domain.QuoteStatusPending, Items: in.Items, Notes: in.Notes}, nil
}

func (s *stubQuoteService) Ranking(_ context.Context, _ domain.Session, _ int64) (app.Ranking, error) {
	return s.ranking, s.err
}

func (s *stubQuoteService) Respond(_ context.Context, sess domain.Session, quoteID int64, in app.RespondInput) (domain.SupplierResponse, error) {
	if s.err != nil {
		return domain.SupplierResponse{}, s.err
	}
	s.respondedQuote = quoteID
	return domain.SupplierResponse{QuoteID: quoteID, SupplierID: sess.UserID, UnitPrice: in.UnitPrice, DeliveryTime: in.DeliveryTime}, nil
}
