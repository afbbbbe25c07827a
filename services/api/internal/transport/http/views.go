package http

import (
	"encoding/json"
	"time"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/app"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/pricing"
	"github.com/shopspring/decimal"
)

// JSON bodies use the same Portuguese field names as the quotation backend.

// money renders an amount rounded for display.
func money(d decimal.Decimal) json.Number {
	return json.Number(pricing.Round(d).StringFixed(pricing.DisplayPlaces))
}

type quoteItemView struct {
	ProductID int64 `json:"id_produto"`
	Quantity  int   `json:"quantidade"`
}

type supplierResponseView struct {
	SupplierID   int64       `json:"id_fornecedor"`
	UnitPrice    json.Number `json:"valor_unitario"`
	DeliveryTime string      `json:"prazo_entrega,omitempty"`
	RespondedAt  *time.Time  `json:"data_resposta,omitempty"`
}

func newSupplierResponseView(r domain.SupplierResponse) supplierResponseView {
	v := supplierResponseView{
		SupplierID:   r.SupplierID,
		UnitPrice:    money(r.UnitPrice),
		DeliveryTime: r.DeliveryTime,
	}
	if !r.RespondedAt.IsZero() {
		at := r.RespondedAt
		v.RespondedAt = &at
	}
	return v
}

type quoteView struct {
	ID          int64                  `json:"id_cotacao"`
	RequesterID int64                  `json:"id_cliente"`
	CreatedAt   *time.Time             `json:"data_solicitacao,omitempty"`
	Status      string                 `json:"status"`
	Notes       string                 `json:"observacoes,omitempty"`
	Items       []quoteItemView        `json:"itens"`
	Responses   []supplierResponseView `json:"respostas"`
}

func newQuoteView(q domain.Quote) quoteView {
	v := quoteView{
		ID:          q.ID,
		RequesterID: q.RequesterID,
		Status:      string(q.Status),
		Notes:       q.Notes,
		Items:       make([]quoteItemView, 0, len(q.Items)),
		Responses:   make([]supplierResponseView, 0, len(q.Responses)),
	}
	if !q.CreatedAt.IsZero() {
		at := q.CreatedAt
		v.CreatedAt = &at
	}
	for _, it := range q.Items {
		v.Items = append(v.Items, quoteItemView{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	for _, r := range q.Responses {
		v.Responses = append(v.Responses, newSupplierResponseView(r))
	}
	return v
}

func newQuoteViews(quotes []domain.Quote) []quoteView {
	out := make([]quoteView, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, newQuoteView(q))
	}
	return out
}

type rankedResponseView struct {
	supplierResponseView
	EstimatedTotal json.Number `json:"valor_total"`
}

func newRankedResponseView(r app.RankedResponse) rankedResponseView {
	return rankedResponseView{
		supplierResponseView: newSupplierResponseView(r.Response),
		EstimatedTotal:       money(r.EstimatedTotal),
	}
}

type rankingView struct {
	QuoteID   int64                `json:"id_cotacao"`
	Status    string               `json:"status"`
	Best      rankedResponseView   `json:"melhor_resposta"`
	Responses []rankedResponseView `json:"respostas"`
}

func newRankingView(r app.Ranking) rankingView {
	v := rankingView{
		QuoteID:   r.Quote.ID,
		Status:    string(r.Quote.Status),
		Best:      newRankedResponseView(r.Best),
		Responses: make([]rankedResponseView, 0, len(r.Responses)),
	}
	for _, rr := range r.Responses {
		v.Responses = append(v.Responses, newRankedResponseView(rr))
	}
	return v
}

type orderItemView struct {
	ProductID int64       `json:"id_produto"`
	Quantity  int         `json:"quantidade"`
	UnitPrice json.Number `json:"valor_unitario"`
	Subtotal  json.Number `json:"subtotal"`
}

type orderView struct {
	ID        int64           `json:"id_pedido,omitempty"`
	BuyerID   int64           `json:"id_cliente,omitempty"`
	QuoteID   int64           `json:"id_cotacao,omitempty"`
	CreatedAt *time.Time      `json:"data_pedido,omitempty"`
	Items     []orderItemView `json:"itens"`
	Total     json.Number     `json:"valor_total"`
}

func newOrderView(o domain.Order) orderView {
	v := orderView{
		ID:      o.ID,
		BuyerID: o.BuyerID,
		QuoteID: o.QuoteID,
		Items:   make([]orderItemView, 0, len(o.Items)),
		Total:   money(o.Total),
	}
	if !o.CreatedAt.IsZero() {
		at := o.CreatedAt
		v.CreatedAt = &at
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: money(it.UnitPrice),
			Subtotal:  money(pricing.Subtotal(it)),
		})
	}
	return v
}

type conversionView struct {
	ID         string      `json:"id"`
	QuoteID    int64       `json:"id_cotacao"`
	SupplierID int64       `json:"id_fornecedor"`
	OrderID    int64       `json:"id_pedido"`
	Total      json.Number `json:"valor_total"`
	CreatedAt  time.Time   `json:"criado_em"`
}

func newConversionView(c domain.Conversion) conversionView {
	return conversionView{
		ID:         c.ID,
		QuoteID:    c.QuoteID,
		SupplierID: c.SupplierID,
		OrderID:    c.OrderID,
		Total:      money(c.Total),
		CreatedAt:  c.CreatedAt,
	}
}

type productView struct {
	ID          int64       `json:"id_produto"`
	Name        string      `json:"nome_produto"`
	Description string      `json:"descricao"`
	Stock       int         `json:"estoque"`
	UnitPrice   json.Number `json:"preco"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		UnitPrice:   money(p.UnitPrice),
	}
}

func newProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	return out
}

type userView struct {
	ID    int64  `json:"id_usuario"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"tipo_usuario"`
}

func newUserView(u domain.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func newUserViews(users []domain.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	return out
}
