package backend

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/pricing"
	"github.com/shopspring/decimal"
)

// Wire shapes use the backend's Portuguese snake_case field names.

type userDTO struct {
	ID    int64  `json:"id_usuario"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Role  string `json:"tipo_usuario"`
}

func (u userDTO) toDomain() domain.User {
	return domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  domain.Role(strings.ToUpper(u.Role)),
	}
}

type productDTO struct {
	ID          int64           `json:"id_produto,omitempty"`
	Name        string          `json:"nome_produto"`
	Description string          `json:"descricao"`
	Stock       int             `json:"estoque"`
	UnitPrice   decimal.Decimal `json:"preco"`
}

func (p productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		UnitPrice:   p.UnitPrice,
	}
}

type productPayload struct {
	Name        string      `json:"nome_produto"`
	Description string      `json:"descricao"`
	Stock       int         `json:"estoque"`
	UnitPrice   json.Number `json:"preco"`
}

func newProductPayload(p domain.Product) productPayload {
	return productPayload{
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		UnitPrice:   number(p.UnitPrice),
	}
}

type quoteItemDTO struct {
	ProductID int64 `json:"id_produto"`
	Quantity  int   `json:"quantidade"`
}

type responseDTO struct {
	QuoteID      int64           `json:"id_cotacao"`
	SupplierID   int64           `json:"id_fornecedor"`
	UnitPrice    decimal.Decimal `json:"valor_unitario"`
	DeliveryTime string          `json:"prazo_entrega"`
	RespondedAt  time.Time       `json:"data_resposta"`
}

type quoteDTO struct {
	ID          int64          `json:"id_cotacao"`
	RequesterID int64          `json:"id_cliente"`
	CreatedAt   time.Time      `json:"data_solicitacao"`
	Status      string         `json:"status"`
	Notes       string         `json:"observacoes"`
	Items       []quoteItemDTO `json:"itens"`
	Responses   []responseDTO  `json:"respostas"`
}

func (q quoteDTO) toDomain() domain.Quote {
	out := domain.Quote{
		ID:          q.ID,
		RequesterID: q.RequesterID,
		CreatedAt:   q.CreatedAt,
		Status:      domain.ParseQuoteStatus(q.Status),
		Notes:       q.Notes,
		Items:       make([]domain.QuoteItem, 0, len(q.Items)),
		Responses:   make([]domain.SupplierResponse, 0, len(q.Responses)),
	}
	for _, it := range q.Items {
		out.Items = append(out.Items, domain.QuoteItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	// Responses keep the backend's submission order; ranking ties depend on it.
	for _, r := range q.Responses {
		out.Responses = append(out.Responses, domain.SupplierResponse{
			QuoteID:      r.QuoteID,
			SupplierID:   r.SupplierID,
			UnitPrice:    r.UnitPrice,
			DeliveryTime: r.DeliveryTime,
			RespondedAt:  r.RespondedAt,
		})
	}
	return out
}

type createQuotePayload struct {
	Items []quoteItemDTO `json:"items"`
	Notes string         `json:"observacoes,omitempty"`
}

type respondPayload struct {
	SupplierID   int64       `json:"supplierId"`
	UnitPrice    json.Number `json:"unitPrice"`
	DeliveryTime string      `json:"deliveryTime"`
}

type orderItemDTO struct {
	ProductID int64           `json:"id_produto"`
	Quantity  int             `json:"quantidade"`
	UnitPrice decimal.Decimal `json:"valor_unitario"`
}

type orderDTO struct {
	ID        int64           `json:"id_pedido"`
	CreatedAt time.Time       `json:"data_pedido"`
	Total     decimal.Decimal `json:"valor_total"`
	BuyerID   int64           `json:"id_cliente"`
	QuoteID   int64           `json:"id_cotacao"`
	Items     []orderItemDTO  `json:"itens"`
}

func (o orderDTO) toDomain() domain.Order {
	out := domain.Order{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		QuoteID:   o.QuoteID,
		CreatedAt: o.CreatedAt,
		Total:     o.Total,
		Items:     make([]domain.OrderItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

type orderItemPayload struct {
	ProductID int64       `json:"id_produto"`
	Quantity  int         `json:"quantidade"`
	UnitPrice json.Number `json:"valor_unitario"`
}

type createOrderPayload struct {
	Items   []orderItemPayload `json:"items"`
	Total   json.Number        `json:"valor_total"`
	QuoteID int64              `json:"id_cotacao,omitempty"`
}

func newOrderPayload(o domain.Order) createOrderPayload {
	p := createOrderPayload{
		Items:   make([]orderItemPayload, 0, len(o.Items)),
		Total:   json.Number(pricing.Round(o.Total).StringFixed(pricing.DisplayPlaces)),
		QuoteID: o.QuoteID,
	}
	for _, it := range o.Items {
		p.Items = append(p.Items, orderItemPayload{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: number(it.UnitPrice),
		})
	}
	return p
}

type stockPayload struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}

// number renders a decimal as a bare JSON number at full precision.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
