package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/clock"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/pricing"
	"golang.org/x/sync/singleflight"
)

const (
	reconcilePageSize = 100
	reconcileMaxPages = 20
)

type ConversionRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	LockQuote(ctx context.Context, quoteID int64) error
	GetConversionByQuoteID(ctx context.Context, quoteID int64) (*domain.Conversion, error)
	CreateConversion(ctx context.Context, conv domain.Conversion) error
	SetConversionOrder(ctx context.Context, conversionID string, orderID int64) error
	DeleteConversion(ctx context.Context, conversionID string) error
}

type OrderGateway interface {
	GetQuote(ctx context.Context, sess domain.Session, id int64) (domain.Quote, error)
	GetOrder(ctx context.Context, sess domain.Session, id int64) (domain.Order, error)
	ListOrders(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Order, error)
	CreateOrder(ctx context.Context, sess domain.Session, o domain.Order) (domain.Order, error)
}

// rejection is implemented by gateway errors that prove a request was
// refused without side effects.
type rejection interface {
	Rejected() bool
}

func rejected(err error) bool {
	var r rejection
	return errors.As(err, &r) && r.Rejected()
}

type OrderService struct {
	repo     ConversionRepository
	gateway  OrderGateway
	clock    clock.Clock
	inflight singleflight.Group
}

func NewOrderService(repo ConversionRepository, gateway OrderGateway, clk clock.Clock) *OrderService {
	return &OrderService{
		repo:    repo,
		gateway: gateway,
		clock:   clk,
	}
}

type ConvertQuoteInput struct {
	QuoteID int64
	// SupplierID selects a response; zero picks the cheapest one.
	SupplierID     int64
	IdempotencyKey string
}

type ConvertQuoteResult struct {
	Order      domain.Order
	Conversion domain.Conversion
	Created    bool
}

// ConvertQuote turns a responded quote into an order and submits it to the
// backend. A quote converts at most once: retrying with the same idempotency
// key returns the original result, any other key fails with ErrQuoteTerminal.
//
// The ledger row is committed before the backend is called. If the call
// ends without a clear answer the row stays pending, and a retry looks the
// order up on the backend instead of submitting it again.
func (s *OrderService) ConvertQuote(ctx context.Context, sess domain.Session, in ConvertQuoteInput) (ConvertQuoteResult, error) {
	if in.IdempotencyKey == "" {
		return ConvertQuoteResult{}, domain.ErrIdempotencyKeyRequired
	}
	if in.QuoteID <= 0 {
		return ConvertQuoteResult{}, domain.ErrInvalidID
	}

	// Identical requests racing in this process share one submission. The
	// submission outlives a caller that gives up, so it is never cut off
	// between the backend call and the ledger update.
	key := fmt.Sprintf("%d:%d:%s", sess.UserID, in.QuoteID, in.IdempotencyKey)
	ch := s.inflight.DoChan(key, func() (any, error) {
		return s.convertQuote(context.WithoutCancel(ctx), sess, in)
	})
	select {
	case <-ctx.Done():
		return ConvertQuoteResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return ConvertQuoteResult{}, res.Err
		}
		return res.Val.(ConvertQuoteResult), nil
	}
}

func (s *OrderService) convertQuote(ctx context.Context, sess domain.Session, in ConvertQuoteInput) (ConvertQuoteResult, error) {
	quote, err := s.gateway.GetQuote(ctx, sess, in.QuoteID)
	if err != nil {
		return ConvertQuoteResult{}, err
	}

	now := s.clock.Now()
	var (
		existing *domain.Conversion
		conv     domain.Conversion
		order    domain.Order
	)

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockQuote(txCtx, in.QuoteID); err != nil {
			return err
		}

		found, err := s.repo.GetConversionByQuoteID(txCtx, in.QuoteID)
		if err != nil {
			return err
		}
		if found != nil {
			if found.IdempotencyKey != in.IdempotencyKey {
				return domain.ErrQuoteTerminal
			}
			existing = found
			return nil
		}

		if err := pricing.CheckRespondable(quote); err != nil {
			return err
		}
		resp, err := selectResponse(quote, in.SupplierID)
		if err != nil {
			return err
		}
		order, err = pricing.Convert(quote, resp)
		if err != nil {
			return err
		}
		order.CreatedAt = now

		conv = domain.Conversion{
			ID:             newID(),
			QuoteID:        quote.ID,
			SupplierID:     resp.SupplierID,
			IdempotencyKey: in.IdempotencyKey,
			Total:          order.Total,
			CreatedAt:      now,
		}
		return s.repo.CreateConversion(txCtx, conv)
	})
	if err != nil {
		return ConvertQuoteResult{}, err
	}
	if existing != nil {
		return s.replay(ctx, sess, *existing)
	}

	placed, err := s.gateway.CreateOrder(ctx, sess, order)
	if err != nil {
		if rejected(err) {
			if delErr := s.repo.DeleteConversion(ctx, conv.ID); delErr != nil {
				return ConvertQuoteResult{}, fmt.Errorf("release conversion after %v: %w", err, delErr)
			}
		}
		return ConvertQuoteResult{}, err
	}
	if err := s.repo.SetConversionOrder(ctx, conv.ID, placed.ID); err != nil {
		return ConvertQuoteResult{}, err
	}
	conv.OrderID = placed.ID

	return ConvertQuoteResult{Order: mergePlaced(order, placed), Conversion: conv, Created: true}, nil
}

func (s *OrderService) replay(ctx context.Context, sess domain.Session, conv domain.Conversion) (ConvertQuoteResult, error) {
	if conv.OrderID == 0 {
		order, err := s.reconcile(ctx, sess, &conv)
		if err != nil {
			return ConvertQuoteResult{}, err
		}
		return ConvertQuoteResult{Order: order, Conversion: conv}, nil
	}
	order, err := s.gateway.GetOrder(ctx, sess, conv.OrderID)
	if err != nil {
		return ConvertQuoteResult{}, err
	}
	return ConvertQuoteResult{Order: order, Conversion: conv}, nil
}

// reconcile links a pending conversion to the order the backend created for
// its quote. ErrConversionPending means no such order is visible yet.
func (s *OrderService) reconcile(ctx context.Context, sess domain.Session, conv *domain.Conversion) (domain.Order, error) {
	order, ok, err := s.findOrderForQuote(ctx, sess, conv.QuoteID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, domain.ErrConversionPending
	}
	if err := s.repo.SetConversionOrder(ctx, conv.ID, order.ID); err != nil {
		return domain.Order{}, err
	}
	conv.OrderID = order.ID
	return order, nil
}

func (s *OrderService) findOrderForQuote(ctx context.Context, sess domain.Session, quoteID int64) (domain.Order, bool, error) {
	for page := 1; page <= reconcileMaxPages; page++ {
		orders, err := s.gateway.ListOrders(ctx, sess, domain.Page{Page: page, Limit: reconcilePageSize})
		if err != nil {
			return domain.Order{}, false, err
		}
		for _, o := range orders {
			if o.QuoteID == quoteID {
				return o, true, nil
			}
		}
		if len(orders) < reconcilePageSize {
			break
		}
	}
	return domain.Order{}, false, nil
}

func selectResponse(quote domain.Quote, supplierID int64) (domain.SupplierResponse, error) {
	if supplierID == 0 {
		return pricing.Best(quote.Responses)
	}
	resp, ok := quote.ResponseFrom(supplierID)
	if !ok {
		return domain.SupplierResponse{}, domain.ErrSupplierNotFound
	}
	return resp, nil
}

// mergePlaced keeps the derived items and total and takes the identity the
// backend assigned.
func mergePlaced(derived, placed domain.Order) domain.Order {
	out := derived
	out.ID = placed.ID
	if !placed.CreatedAt.IsZero() {
		out.CreatedAt = placed.CreatedAt
	}
	if placed.BuyerID != 0 {
		out.BuyerID = placed.BuyerID
	}
	return out
}

// Conversion returns the ledger entry for a quote that has already been
// turned into an order. Clients only see conversions of their own quotes.
func (s *OrderService) Conversion(ctx context.Context, sess domain.Session, quoteID int64) (domain.Conversion, error) {
	if quoteID <= 0 {
		return domain.Conversion{}, domain.ErrInvalidID
	}
	if sess.Role != domain.RoleAdmin {
		quote, err := s.gateway.GetQuote(ctx, sess, quoteID)
		if err != nil {
			return domain.Conversion{}, err
		}
		if quote.RequesterID != sess.UserID {
			return domain.Conversion{}, domain.ErrForbidden
		}
	}

	conv, err := s.repo.GetConversionByQuoteID(ctx, quoteID)
	if err != nil {
		return domain.Conversion{}, err
	}
	if conv == nil {
		return domain.Conversion{}, domain.ErrConversionNotFound
	}
	return *conv, nil
}

// ListOrders returns the caller's orders as the backend pages them.
func (s *OrderService) ListOrders(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.Order, error) {
	return s.gateway.ListOrders(ctx, sess, page)
}

// PlaceOrder submits an order assembled directly from priced lines.
func (s *OrderService) PlaceOrder(ctx context.Context, sess domain.Session, items []domain.OrderItem) (domain.Order, error) {
	draft, err := pricing.NewDraft(items)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := draft.Order(sess.UserID)
	if err != nil {
		return domain.Order{}, err
	}
	order.CreatedAt = s.clock.Now()

	placed, err := s.gateway.CreateOrder(ctx, sess, order)
	if err != nil {
		return domain.Order{}, err
	}
	return mergePlaced(order, placed), nil
}

// Preview merges and totals order lines without submitting them.
func (s *OrderService) Preview(items []domain.OrderItem) (domain.Order, error) {
	draft, err := pricing.NewDraft(items)
	if err != nil {
		return domain.Order{}, err
	}
	if draft.Len() == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}
	return domain.Order{Items: draft.Items(), Total: draft.Total()}, nil
}
