package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/app"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

// QuoteRequester is the minimal interface needed to request a quote.
type QuoteRequester interface {
	RequestQuote(ctx context.Context, sess domain.Session, in app.RequestQuoteInput) (domain.Quote, error)
}

// QuoteRanker is the minimal interface needed to rank supplier responses.
type QuoteRanker interface {
	Ranking(ctx context.Context, sess domain.Session, quoteID int64) (app.Ranking, error)
}

// QuoteResponder is the minimal interface needed to answer a quote.
type QuoteResponder interface {
	Respond(ctx context.Context, sess domain.Session, quoteID int64, in app.RespondInput) (domain.SupplierResponse, error)
}

// QuoteLister is the minimal interface needed to list quotes.
type QuoteLister interface {
	ListQuotes(ctx context.Context, sess domain.Session, page domain.Page, status string) ([]domain.Quote, error)
}

// QuoteStatusUpdater is the minimal interface needed to change a quote's
// status.
type QuoteStatusUpdater interface {
	UpdateStatus(ctx context.Context, sess domain.Session, quoteID int64, status string) (domain.Quote, error)
}

// SupplierLister is the minimal interface needed to list suppliers.
type SupplierLister interface {
	Suppliers(ctx context.Context, sess domain.Session) ([]domain.User, error)
}

// HandleCreateQuote returns an HTTP handler for requesting quotes.
func HandleCreateQuote(svc QuoteRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createQuoteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		items := make([]domain.QuoteItem, 0, len(req.Items))
		for _, it := range req.Items {
			items = append(items, domain.QuoteItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}

		quote, err := svc.RequestQuote(r.Context(), SessionFromContext(r.Context()), app.RequestQuoteInput{
			Items: items,
			Notes: strings.TrimSpace(req.Notes),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newQuoteView(quote))
	}
}

// HandleQuoteRanking returns an HTTP handler listing a quote's supplier
// responses from cheapest to most expensive.
func HandleQuoteRanking(svc QuoteRanker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		quoteID, ok := parseQuoteActionPath(r.URL.Path, "ranking")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		ranking, err := svc.Ranking(r.Context(), SessionFromContext(r.Context()), quoteID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newRankingView(ranking))
	}
}

// HandleRespondQuote returns an HTTP handler for supplier responses.
func HandleRespondQuote(svc QuoteResponder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		quoteID, ok := parseQuoteActionPath(r.URL.Path, "responses")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		var req respondQuoteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		resp, err := svc.Respond(r.Context(), SessionFromContext(r.Context()), quoteID, app.RespondInput{
			UnitPrice:    req.UnitPrice,
			DeliveryTime: strings.TrimSpace(req.DeliveryTime),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newSupplierResponseView(resp))
	}
}

// HandleListQuotes returns an HTTP handler listing quotes, filtered by the
// optional status query parameter.
func HandleListQuotes(svc QuoteLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		page, ok := parsePage(r)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid page or limit")
			return
		}

		quotes, err := svc.ListQuotes(r.Context(), SessionFromContext(r.Context()), page, r.URL.Query().Get("status"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newQuoteViews(quotes))
	}
}

// HandleUpdateQuoteStatus returns an HTTP handler for PUT
// /quotes/{id}/status.
func HandleUpdateQuoteStatus(svc QuoteStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		quoteID, ok := parseQuoteActionPath(r.URL.Path, "status")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		var req quoteStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		quote, err := svc.UpdateStatus(r.Context(), SessionFromContext(r.Context()), quoteID, req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newQuoteView(quote))
	}
}

// HandleListSuppliers returns an HTTP handler listing supplier accounts.
func HandleListSuppliers(svc SupplierLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		users, err := svc.Suppliers(r.Context(), SessionFromContext(r.Context()))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newUserViews(users))
	}
}

// QuoteActions routes /quotes/{id}/{action} to the handler registered for
// action.
func QuoteActions(actions map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "quotes" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		h, ok := actions[parts[2]]
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		h.ServeHTTP(w, r)
	})
}

type createQuoteRequest struct {
	Items []quoteItemView `json:"itens"`
	Notes string          `json:"observacoes"`
}

type quoteStatusRequest struct {
	Status string `json:"status"`
}

type respondQuoteRequest struct {
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	DeliveryTime string          `json:"deliveryTime"`
}

func parseQuoteActionPath(path, action string) (int64, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 {
		return 0, false
	}
	if parts[0] != "quotes" || parts[2] != action {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
