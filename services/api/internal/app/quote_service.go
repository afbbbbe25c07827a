package app

import (
	"context"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/clock"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/pricing"
	"github.com/shopspring/decimal"
)

type QuoteGateway interface {
	GetQuote(ctx context.Context, sess domain.Session, id int64) (domain.Quote, error)
	CreateQuote(ctx context.Context, sess domain.Session, items []domain.QuoteItem, notes string) (domain.Quote, error)
	RespondQuote(ctx context.Context, sess domain.Session, id int64, r domain.SupplierResponse) error
	ListQuotes(ctx context.Context, sess domain.Session, page domain.Page, status domain.QuoteStatus) ([]domain.Quote, error)
	UpdateQuoteStatus(ctx context.Context, sess domain.Session, id int64, status domain.QuoteStatus) error
	ListSuppliers(ctx context.Context, sess domain.Session) ([]domain.User, error)
}

type QuoteService struct {
	gateway QuoteGateway
	clock   clock.Clock
}

func NewQuoteService(gateway QuoteGateway, clk clock.Clock) *QuoteService {
	return &QuoteService{
		gateway: gateway,
		clock:   clk,
	}
}

type RequestQuoteInput struct {
	Items []domain.QuoteItem
	Notes string
}

// RequestQuote submits a new quote. Repeated products are merged into one
// item, keeping the position of their first occurrence.
func (s *QuoteService) RequestQuote(ctx context.Context, sess domain.Session, in RequestQuoteInput) (domain.Quote, error) {
	if len(in.Items) == 0 {
		return domain.Quote{}, domain.ErrQuoteHasNoItems
	}

	merged := make([]domain.QuoteItem, 0, len(in.Items))
	index := make(map[int64]int, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID <= 0 {
			return domain.Quote{}, domain.ErrInvalidID
		}
		if item.Quantity <= 0 {
			return domain.Quote{}, domain.ErrInvalidQuantity
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}

	return s.gateway.CreateQuote(ctx, sess, merged, in.Notes)
}

// RankedResponse pairs a supplier response with the quote total it implies.
type RankedResponse struct {
	Response       domain.SupplierResponse
	EstimatedTotal decimal.Decimal
}

type Ranking struct {
	Quote     domain.Quote
	Best      RankedResponse
	Responses []RankedResponse
}

// Ranking orders the quote's responses from cheapest to most expensive.
func (s *QuoteService) Ranking(ctx context.Context, sess domain.Session, quoteID int64) (Ranking, error) {
	if quoteID <= 0 {
		return Ranking{}, domain.ErrInvalidID
	}
	quote, err := s.gateway.GetQuote(ctx, sess, quoteID)
	if err != nil {
		return Ranking{}, err
	}
	if err := pricing.CheckRespondable(quote); err != nil {
		return Ranking{}, err
	}

	best, err := pricing.Best(quote.Responses)
	if err != nil {
		return Ranking{}, err
	}

	ranked := pricing.Rank(quote.Responses)
	out := Ranking{
		Quote:     quote,
		Responses: make([]RankedResponse, 0, len(ranked)),
	}
	for _, r := range ranked {
		total, err := pricing.EstimateTotal(quote.Items, r)
		if err != nil {
			return Ranking{}, err
		}
		out.Responses = append(out.Responses, RankedResponse{Response: r, EstimatedTotal: total})
	}
	bestTotal, err := pricing.EstimateTotal(quote.Items, best)
	if err != nil {
		return Ranking{}, err
	}
	out.Best = RankedResponse{Response: best, EstimatedTotal: bestTotal}
	return out, nil
}

type RespondInput struct {
	UnitPrice    decimal.Decimal
	DeliveryTime string
}

// Respond records the session's supplier price for a quote. A supplier may
// answer a quote only once.
func (s *QuoteService) Respond(ctx context.Context, sess domain.Session, quoteID int64, in RespondInput) (domain.SupplierResponse, error) {
	if quoteID <= 0 {
		return domain.SupplierResponse{}, domain.ErrInvalidID
	}
	if !in.UnitPrice.IsPositive() {
		return domain.SupplierResponse{}, domain.ErrInvalidPrice
	}

	quote, err := s.gateway.GetQuote(ctx, sess, quoteID)
	if err != nil {
		return domain.SupplierResponse{}, err
	}
	if quote.Status.Terminal() {
		return domain.SupplierResponse{}, domain.ErrQuoteTerminal
	}
	if _, ok := quote.ResponseFrom(sess.UserID); ok {
		return domain.SupplierResponse{}, domain.ErrAlreadyResponded
	}

	resp := domain.SupplierResponse{
		QuoteID:      quote.ID,
		SupplierID:   sess.UserID,
		UnitPrice:    in.UnitPrice,
		DeliveryTime: in.DeliveryTime,
		RespondedAt:  s.clock.Now(),
	}
	if err := s.gateway.RespondQuote(ctx, sess, quote.ID, resp); err != nil {
		return domain.SupplierResponse{}, err
	}
	return resp, nil
}

// ListQuotes lists the quotes visible to the session. An empty status lists
// every status; either spelling of a status is accepted.
func (s *QuoteService) ListQuotes(ctx context.Context, sess domain.Session, page domain.Page, status string) ([]domain.Quote, error) {
	var st domain.QuoteStatus
	if status != "" {
		st = domain.ParseQuoteStatus(status)
		if !st.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}
	return s.gateway.ListQuotes(ctx, sess, page, st)
}

// UpdateStatus moves a quote to a new status. Clients may only change their
// own quotes, and cancelled or won quotes keep their status.
func (s *QuoteService) UpdateStatus(ctx context.Context, sess domain.Session, quoteID int64, status string) (domain.Quote, error) {
	if quoteID <= 0 {
		return domain.Quote{}, domain.ErrInvalidID
	}
	st := domain.ParseQuoteStatus(status)
	if !st.Valid() {
		return domain.Quote{}, domain.ErrInvalidStatus
	}

	quote, err := s.gateway.GetQuote(ctx, sess, quoteID)
	if err != nil {
		return domain.Quote{}, err
	}
	if sess.Role != domain.RoleAdmin && quote.RequesterID != sess.UserID {
		return domain.Quote{}, domain.ErrForbidden
	}
	if quote.Status == st {
		return quote, nil
	}
	if quote.Status.Terminal() {
		return domain.Quote{}, domain.ErrQuoteTerminal
	}

	if err := s.gateway.UpdateQuoteStatus(ctx, sess, quote.ID, st); err != nil {
		return domain.Quote{}, err
	}
	quote.Status = st
	return quote, nil
}

// Suppliers lists the accounts that can answer quotes.
func (s *QuoteService) Suppliers(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	return s.gateway.ListSuppliers(ctx, sess)
}
