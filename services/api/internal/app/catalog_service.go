package app

import (
	"context"
	"sort"
	"strings"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

const defaultLowStockLimit = 10

type CatalogGateway interface {
	ListProducts(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Product, error)
	GetProduct(ctx context.Context, sess domain.Session, id int64) (domain.Product, error)
	CreateProduct(ctx context.Context, sess domain.Session, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, sess domain.Session, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, sess domain.Session, id int64) error
	UpdateStock(ctx context.Context, sess domain.Session, productID int64, u domain.StockUpdate) (domain.Product, error)
}

type CatalogService struct {
	gateway CatalogGateway
}

func NewCatalogService(gateway CatalogGateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

type CreateProductInput struct {
	Name        string
	Description string
	Stock       int
	UnitPrice   decimal.Decimal
}

func (in CreateProductInput) product() (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if !in.UnitPrice.IsPositive() {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if in.Stock < 0 {
		return domain.Product{}, domain.ErrInvalidQuantity
	}
	return domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Stock:       in.Stock,
		UnitPrice:   in.UnitPrice,
	}, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, sess domain.Session, in CreateProductInput) (domain.Product, error) {
	p, err := in.product()
	if err != nil {
		return domain.Product{}, err
	}
	return s.gateway.CreateProduct(ctx, sess, p)
}

func (s *CatalogService) GetProduct(ctx context.Context, sess domain.Session, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, domain.ErrInvalidID
	}
	return s.gateway.GetProduct(ctx, sess, id)
}

// UpdateProduct replaces a product's fields, validated as on creation.
func (s *CatalogService) UpdateProduct(ctx context.Context, sess domain.Session, id int64, in CreateProductInput) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, domain.ErrInvalidID
	}
	p, err := in.product()
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = id
	return s.gateway.UpdateProduct(ctx, sess, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, sess domain.Session, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	return s.gateway.DeleteProduct(ctx, sess, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Product, error) {
	return s.gateway.ListProducts(ctx, sess, page)
}

func (s *CatalogService) AdjustStock(ctx context.Context, sess domain.Session, productID int64, u domain.StockUpdate) (domain.Product, error) {
	if productID <= 0 {
		return domain.Product{}, domain.ErrInvalidID
	}
	if err := u.Validate(); err != nil {
		return domain.Product{}, err
	}
	return s.gateway.UpdateStock(ctx, sess, productID, u)
}

// LowStock lists products whose stock is below limit, lowest stock first.
// A non-positive limit uses the default of 10.
func (s *CatalogService) LowStock(ctx context.Context, sess domain.Session, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = defaultLowStockLimit
	}
	products, err := s.gateway.ListProducts(ctx, sess, domain.Page{})
	if err != nil {
		return nil, err
	}

	low := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Stock < limit {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return low, nil
}
