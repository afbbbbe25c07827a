package pricing

import (
	"fmt"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places used on the wire and on screen.
const DisplayPlaces = 2

// Subtotal returns quantity * unit price for a single line.
func Subtotal(item domain.OrderItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Total sums the line subtotals without intermediate rounding.
// An empty slice totals zero.
func Total(items []domain.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, item := range items {
		if err := validateLine(item); err != nil {
			return decimal.Zero, fmt.Errorf("%w: item %d: %v", domain.ErrInvalidLineItem, i, err)
		}
		total = total.Add(Subtotal(item))
	}
	return total, nil
}

// Round rounds half away from zero to DisplayPlaces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPlaces)
}

func validateLine(item domain.OrderItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity %d must be positive", item.Quantity)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price %s must not be negative", item.UnitPrice)
	}
	return nil
}
