package pricing

import (
	"testing"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/stretchr/testify/require"
)

func respondedQuote(items ...domain.QuoteItem) domain.Quote {
	return domain.Quote{
		ID:          42,
		RequesterID: 7,
		Status:      domain.QuoteStatusResponded,
		Items:       items,
	}
}

func TestConvert_AppliesUnitPriceToEveryItem(t *testing.T) {
	t.Parallel()

	quote := respondedQuote(
		domain.QuoteItem{ProductID: 1, Quantity: 3},
		domain.QuoteItem{ProductID: 2, Quantity: 2},
	)

	order, err := Convert(quote, response(5, "5.00"))
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	require.Equal(t, int64(1), order.Items[0].ProductID)
	require.Equal(t, 3, order.Items[0].Quantity)
	require.Equal(t, int64(2), order.Items[1].ProductID)
	require.Equal(t, 2, order.Items[1].Quantity)
	for _, it := range order.Items {
		requireDecimal(t, "5.00", it.UnitPrice)
	}
	requireDecimal(t, "25.00", order.Total)
	require.Equal(t, int64(7), order.BuyerID)
	require.Equal(t, int64(42), order.QuoteID)
}

func TestConvert_TotalMatchesAggregator(t *testing.T) {
	t.Parallel()

	quote := respondedQuote(
		domain.QuoteItem{ProductID: 1, Quantity: 13},
		domain.QuoteItem{ProductID: 2, Quantity: 1},
		domain.QuoteItem{ProductID: 3, Quantity: 250},
	)

	order, err := Convert(quote, response(1, "0.337"))
	require.NoError(t, err)

	total, err := Total(order.Items)
	require.NoError(t, err)
	require.True(t, total.Equal(order.Total))
}

func TestConvert_EndToEnd(t *testing.T) {
	t.Parallel()

	quote := respondedQuote(domain.QuoteItem{ProductID: 7, Quantity: 10})
	quote.Responses = []domain.SupplierResponse{response(1, "2.50"), response(2, "2.20")}

	best, err := Best(quote.Responses)
	require.NoError(t, err)
	require.Equal(t, int64(2), best.SupplierID)

	order, err := Convert(quote, best)
	require.NoError(t, err)
	requireDecimal(t, "22.00", order.Total)
}

func TestConvert_DoesNotMutateQuote(t *testing.T) {
	t.Parallel()

	quote := respondedQuote(domain.QuoteItem{ProductID: 1, Quantity: 1})
	order, err := Convert(quote, response(1, "3"))
	require.NoError(t, err)

	order.Items[0].Quantity = 99
	require.Equal(t, 1, quote.Items[0].Quantity)
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	items := []domain.QuoteItem{{ProductID: 1, Quantity: 1}}

	tests := []struct {
		name     string
		status   domain.QuoteStatus
		items    []domain.QuoteItem
		response domain.SupplierResponse
		want     error
	}{
		{name: "cancelled", status: domain.QuoteStatusCancelled, items: items, response: response(1, "1"), want: domain.ErrQuoteTerminal},
		{name: "won", status: domain.QuoteStatusWon, items: items, response: response(1, "1"), want: domain.ErrQuoteTerminal},
		{name: "pending", status: domain.QuoteStatusPending, items: items, response: response(1, "1"), want: domain.ErrQuoteNotRespondable},
		{name: "analyzing", status: domain.QuoteStatusAnalyzing, items: items, response: response(1, "1"), want: domain.ErrQuoteNotRespondable},
		{
			name:     "mismatched quote tag",
			status:   domain.QuoteStatusResponded,
			items:    items,
			response: domain.SupplierResponse{QuoteID: 41, SupplierID: 1, UnitPrice: response(1, "1").UnitPrice},
			want:     domain.ErrQuoteResponseMismatch,
		},
		{name: "no items", status: domain.QuoteStatusResponded, response: response(1, "1"), want: domain.ErrQuoteHasNoItems},
		{name: "zero price", status: domain.QuoteStatusResponded, items: items, response: response(1, "0"), want: domain.ErrInvalidLineItem},
		{
			name:     "zero quantity",
			status:   domain.QuoteStatusResponded,
			items:    []domain.QuoteItem{{ProductID: 1, Quantity: 0}},
			response: response(1, "1"),
			want:     domain.ErrInvalidLineItem,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			quote := domain.Quote{ID: 42, Status: tt.status, Items: tt.items}
			_, err := Convert(quote, tt.response)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConvert_MatchingQuoteTag(t *testing.T) {
	t.Parallel()

	resp := response(1, "2")
	resp.QuoteID = 42
	_, err := Convert(respondedQuote(domain.QuoteItem{ProductID: 1, Quantity: 1}), resp)
	require.NoError(t, err)
}
