package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Product, error) {
	var out struct {
		Products []productDTO `json:"products"`
	}
	if err := c.do(ctx, sess, http.MethodGet, "/products", pageValues(page), nil, &out); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(out.Products))
	for _, p := range out.Products {
		products = append(products, p.toDomain())
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, sess domain.Session, id int64) (domain.Product, error) {
	var out productDTO
	if err := c.do(ctx, sess, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return domain.Product{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) CreateProduct(ctx context.Context, sess domain.Session, p domain.Product) (domain.Product, error) {
	var out productDTO
	if err := c.do(ctx, sess, http.MethodPost, "/products", nil, newProductPayload(p), &out); err != nil {
		return domain.Product{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateProduct(ctx context.Context, sess domain.Session, p domain.Product) (domain.Product, error) {
	var out productDTO
	path := fmt.Sprintf("/products/%d", p.ID)
	if err := c.do(ctx, sess, http.MethodPut, path, nil, newProductPayload(p), &out); err != nil {
		return domain.Product{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) DeleteProduct(ctx context.Context, sess domain.Session, id int64) error {
	return c.do(ctx, sess, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

// UpdateStock adds to or subtracts from a product's stock.
func (c *Client) UpdateStock(ctx context.Context, sess domain.Session, productID int64, u domain.StockUpdate) (domain.Product, error) {
	var out productDTO
	body := stockPayload{Quantity: u.Quantity, Operation: string(u.Operation)}
	if err := c.do(ctx, sess, http.MethodPut, fmt.Sprintf("/stock/products/%d", productID), nil, body, &out); err != nil {
		return domain.Product{}, err
	}
	return out.toDomain(), nil
}
