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

// CatalogService is the minimal interface needed for admin product endpoints.
type CatalogService interface {
	ListProducts(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Product, error)
	GetProduct(ctx context.Context, sess domain.Session, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, sess domain.Session, in app.CreateProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, sess domain.Session, id int64, in app.CreateProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, sess domain.Session, id int64) error
	AdjustStock(ctx context.Context, sess domain.Session, productID int64, u domain.StockUpdate) (domain.Product, error)
	LowStock(ctx context.Context, sess domain.Session, limit int) ([]domain.Product, error)
}

// HandleAdminProducts returns an HTTP handler for product creation/listing.
func HandleAdminProducts(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		switch r.Method {
		case http.MethodGet:
			page, ok := parsePage(r)
			if !ok {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid page or limit")
				return
			}
			products, err := svc.ListProducts(r.Context(), sess, page)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, newProductViews(products))
			return
		case http.MethodPost:
			var req createProductRequest
			if err := decodeJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			product, err := svc.CreateProduct(r.Context(), sess, req.input())
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, newProductView(product))
			return
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
	}
}

// HandleAdminProductActions serves /admin/products/low-stock,
// /admin/products/{id} and /admin/products/{id}/stock.
func HandleAdminProductActions(svc CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 3 && parts[2] == "low-stock":
			handleLowStock(svc, w, r)
		case len(parts) == 3:
			id, err := strconv.ParseInt(parts[2], 10, 64)
			if err != nil || id <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
				return
			}
			handleProduct(svc, id, w, r)
		case len(parts) == 4 && parts[3] == "stock":
			id, err := strconv.ParseInt(parts[2], 10, 64)
			if err != nil || id <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
				return
			}
			handleAdjustStock(svc, id, w, r)
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

func handleLowStock(svc CatalogService, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidQuantity, "invalid limit")
			return
		}
		limit = n
	}

	products, err := svc.LowStock(r.Context(), SessionFromContext(r.Context()), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductViews(products))
}

func handleProduct(svc CatalogService, productID int64, w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	switch r.Method {
	case http.MethodGet:
		product, err := svc.GetProduct(r.Context(), sess, productID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newProductView(product))
	case http.MethodPut:
		var req createProductRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		product, err := svc.UpdateProduct(r.Context(), sess, productID, req.input())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newProductView(product))
	case http.MethodDelete:
		if err := svc.DeleteProduct(r.Context(), sess, productID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

func handleAdjustStock(svc CatalogService, productID int64, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}
	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	product, err := svc.AdjustStock(r.Context(), SessionFromContext(r.Context()), productID, domain.StockUpdate{
		Quantity:  req.Quantity,
		Operation: domain.StockOperation(strings.ToLower(strings.TrimSpace(req.Operation))),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(product))
}

func parsePage(r *http.Request) (domain.Page, bool) {
	var page domain.Page
	q := r.URL.Query()
	for _, f := range []struct {
		key string
		dst *int
	}{{"page", &page.Page}, {"limit", &page.Limit}} {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return domain.Page{}, false
		}
		*f.dst = n
	}
	return page, true
}

type createProductRequest struct {
	Name        string          `json:"nome_produto"`
	Description string          `json:"descricao"`
	Stock       int             `json:"estoque"`
	UnitPrice   decimal.Decimal `json:"preco"`
}

func (req createProductRequest) input() app.CreateProductInput {
	return app.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		UnitPrice:   req.UnitPrice,
	}
}

type stockRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}
