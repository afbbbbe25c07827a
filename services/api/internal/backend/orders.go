package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

// CreateOrder submits an order. The total is sent rounded to cents; unit
// prices are sent as computed.
func (c *Client) CreateOrder(ctx context.Context, sess domain.Session, o domain.Order) (domain.Order, error) {
	var out orderDTO
	if err := c.do(ctx, sess, http.MethodPost, "/orders", nil, newOrderPayload(o), &out); err != nil {
		return domain.Order{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) ListOrders(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Order, error) {
	var out struct {
		Orders []orderDTO `json:"orders"`
	}
	if err := c.do(ctx, sess, http.MethodGet, "/orders", pageValues(page), nil, &out); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(out.Orders))
	for _, o := range out.Orders {
		orders = append(orders, o.toDomain())
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, sess domain.Session, id int64) (domain.Order, error) {
	var out orderDTO
	if err := c.do(ctx, sess, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &out); err != nil {
		return domain.Order{}, err
	}
	return out.toDomain(), nil
}
