package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a priced order line.
type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order represents a purchase, either entered directly or derived from a quote.
// Total is always the unrounded sum of the item subtotals.
type Order struct {
	ID        int64
	BuyerID   int64
	QuoteID   int64
	CreatedAt time.Time
	Items     []OrderItem
	Total     decimal.Decimal
}
