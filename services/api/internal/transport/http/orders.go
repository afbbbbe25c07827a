package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/app"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	idempotencyHeader = "Idempotency-Key"
	// replayedHeader tells the caller whether the order was created by this
	// request or returned from an earlier one.
	replayedHeader = "Idempotent-Replayed"
)

// QuoteConverter is the minimal interface needed to turn a quote into an
// order.
type QuoteConverter interface {
	ConvertQuote(ctx context.Context, sess domain.Session, in app.ConvertQuoteInput) (app.ConvertQuoteResult, error)
	Conversion(ctx context.Context, sess domain.Session, quoteID int64) (domain.Conversion, error)
}

// OrderLister is the minimal interface needed to list the caller's orders.
type OrderLister interface {
	ListOrders(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Order, error)
}

// OrderPlacer is the minimal interface needed to preview and place orders.
type OrderPlacer interface {
	Preview(items []domain.OrderItem) (domain.Order, error)
	PlaceOrder(ctx context.Context, sess domain.Session, items []domain.OrderItem) (domain.Order, error)
}

// HandleConvertQuote returns an HTTP handler that derives an order from a
// responded quote. Replays with the same Idempotency-Key answer 200 with the
// original order.
func HandleConvertQuote(svc QuoteConverter, metrics *Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		quoteID, ok := parseQuoteActionPath(r.URL.Path, "orders")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		key := r.Header.Get(idempotencyHeader)
		if key == "" {
			writeError(w, http.StatusBadRequest, codeIdempotencyRequired, domain.ErrIdempotencyKeyRequired.Error())
			return
		}

		// The body is optional; without it the cheapest response is used.
		var req convertQuoteRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := svc.ConvertQuote(r.Context(), SessionFromContext(r.Context()), app.ConvertQuoteInput{
			QuoteID:        quoteID,
			SupplierID:     req.SupplierID,
			IdempotencyKey: key,
		})
		if err != nil {
			if errors.Is(err, domain.ErrQuoteTerminal) {
				metrics.ObserveConversion("rejected")
			}
			writeServiceError(w, err)
			return
		}

		resp := convertQuoteResponse{
			Order:      newOrderView(res.Order),
			Conversion: newConversionView(res.Conversion),
		}
		if res.Created {
			metrics.ObserveConversion("created")
			w.Header().Set(replayedHeader, "false")
			writeJSON(w, http.StatusCreated, resp)
			return
		}
		metrics.ObserveConversion("replayed")
		w.Header().Set(replayedHeader, "true")
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetConversion returns an HTTP handler reporting which order a quote
// was converted into.
func HandleGetConversion(svc QuoteConverter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		quoteID, ok := parseQuoteActionPath(r.URL.Path, "conversion")
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		conv, err := svc.Conversion(r.Context(), SessionFromContext(r.Context()), quoteID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newConversionView(conv))
	}
}

// HandlePreviewOrder returns an HTTP handler that totals order lines without
// submitting them.
func HandlePreviewOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		items, ok := decodeOrderItems(w, r)
		if !ok {
			return
		}

		order, err := svc.Preview(items)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newOrderView(order))
	}
}

// HandlePlaceOrder returns an HTTP handler submitting an order built directly
// from priced lines.
func HandlePlaceOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		items, ok := decodeOrderItems(w, r)
		if !ok {
			return
		}

		order, err := svc.PlaceOrder(r.Context(), SessionFromContext(r.Context()), items)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newOrderView(order))
	}
}

// HandleListOrders returns an HTTP handler listing the caller's orders.
func HandleListOrders(svc OrderLister) http.HandlerFunc {
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

		orders, err := svc.ListOrders(r.Context(), SessionFromContext(r.Context()), page)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, newOrderView(o))
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func decodeOrderItems(w http.ResponseWriter, r *http.Request) ([]domain.OrderItem, bool) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return nil, false
	}
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return items, true
}

type convertQuoteRequest struct {
	SupplierID int64 `json:"id_fornecedor"`
}

type convertQuoteResponse struct {
	Order      orderView      `json:"pedido"`
	Conversion conversionView `json:"conversao"`
}

type orderItemRequest struct {
	ProductID int64           `json:"id_produto"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"valor_unitario"`
}

type orderRequest struct {
	Items []orderItemRequest `json:"itens"`
}
