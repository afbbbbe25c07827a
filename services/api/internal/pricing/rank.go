package pricing

import (
	"sort"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

// Best returns the response with the lowest unit price. When several share
// the lowest price the one that appears first in responses wins.
func Best(responses []domain.SupplierResponse) (domain.SupplierResponse, error) {
	if len(responses) == 0 {
		return domain.SupplierResponse{}, domain.ErrNoResponses
	}
	best := responses[0]
	for _, r := range responses[1:] {
		// Strictly less: an equal price never displaces an earlier response.
		if r.UnitPrice.LessThan(best.UnitPrice) {
			best = r
		}
	}
	return best, nil
}

// Rank returns a copy of responses ordered by ascending unit price, keeping
// submission order between equal prices.
func Rank(responses []domain.SupplierResponse) []domain.SupplierResponse {
	out := make([]domain.SupplierResponse, len(responses))
	copy(out, responses)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UnitPrice.LessThan(out[j].UnitPrice)
	})
	return out
}

// PriceItems applies a single unit price to every quote item.
func PriceItems(items []domain.QuoteItem, unitPrice decimal.Decimal) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return out
}

// EstimateTotal prices all quote items at the response's unit price and
// returns the aggregated total.
func EstimateTotal(items []domain.QuoteItem, response domain.SupplierResponse) (decimal.Decimal, error) {
	return Total(PriceItems(items, response.UnitPrice))
}
