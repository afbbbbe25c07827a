package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

// ListQuotes returns quotes visible to the session, optionally filtered by status.
func (c *Client) ListQuotes(ctx context.Context, sess domain.Session, page domain.Page, status domain.QuoteStatus) ([]domain.Quote, error) {
	q := pageValues(page)
	if status != "" {
		q.Set("status", string(status))
	}
	var out struct {
		Quotes []quoteDTO `json:"quotes"`
	}
	if err := c.do(ctx, sess, http.MethodGet, "/quotes", q, nil, &out); err != nil {
		return nil, err
	}
	quotes := make([]domain.Quote, 0, len(out.Quotes))
	for _, dto := range out.Quotes {
		quotes = append(quotes, dto.toDomain())
	}
	return quotes, nil
}

func (c *Client) GetQuote(ctx context.Context, sess domain.Session, id int64) (domain.Quote, error) {
	var out quoteDTO
	if err := c.do(ctx, sess, http.MethodGet, fmt.Sprintf("/quotes/%d", id), nil, nil, &out); err != nil {
		return domain.Quote{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) CreateQuote(ctx context.Context, sess domain.Session, items []domain.QuoteItem, notes string) (domain.Quote, error) {
	body := createQuotePayload{Items: make([]quoteItemDTO, 0, len(items)), Notes: notes}
	for _, it := range items {
		body.Items = append(body.Items, quoteItemDTO{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	var out quoteDTO
	if err := c.do(ctx, sess, http.MethodPost, "/quotes", nil, body, &out); err != nil {
		return domain.Quote{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateQuoteStatus(ctx context.Context, sess domain.Session, id int64, status domain.QuoteStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, sess, http.MethodPut, fmt.Sprintf("/quotes/%d/status", id), nil, body, nil)
}

func (c *Client) RespondQuote(ctx context.Context, sess domain.Session, id int64, r domain.SupplierResponse) error {
	body := respondPayload{
		SupplierID:   r.SupplierID,
		UnitPrice:    number(r.UnitPrice),
		DeliveryTime: r.DeliveryTime,
	}
	return c.do(ctx, sess, http.MethodPost, fmt.Sprintf("/quotes/%d/respond", id), nil, body, nil)
}

// ListSuppliers returns the supplier accounts that can answer quotes.
func (c *Client) ListSuppliers(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	var out []userDTO
	if err := c.do(ctx, sess, http.MethodGet, "/quotes/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(out))
	for _, u := range out {
		users = append(users, u.toDomain())
	}
	return users, nil
}
