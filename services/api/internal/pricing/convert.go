package pricing

import (
	"fmt"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

// CheckRespondable gates operations that depend on supplier responses.
func CheckRespondable(quote domain.Quote) error {
	if quote.Status.Terminal() {
		return domain.ErrQuoteTerminal
	}
	if quote.Status != domain.QuoteStatusResponded {
		return domain.ErrQuoteNotRespondable
	}
	return nil
}

// Convert derives an order from a quote and the chosen supplier response.
// Each order item copies product and quantity from the quote item and takes
// the response's unit price. Neither argument is modified.
func Convert(quote domain.Quote, response domain.SupplierResponse) (domain.Order, error) {
	if err := CheckRespondable(quote); err != nil {
		return domain.Order{}, err
	}
	if response.QuoteID != 0 && response.QuoteID != quote.ID {
		return domain.Order{}, domain.ErrQuoteResponseMismatch
	}
	if len(quote.Items) == 0 {
		return domain.Order{}, domain.ErrQuoteHasNoItems
	}
	if !response.UnitPrice.IsPositive() {
		return domain.Order{}, fmt.Errorf("%w: unit price %s must be positive", domain.ErrInvalidLineItem, response.UnitPrice)
	}

	items := PriceItems(quote.Items, response.UnitPrice)
	total, err := Total(items)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		BuyerID: quote.RequesterID,
		QuoteID: quote.ID,
		Items:   items,
		Total:   total,
	}, nil
}
