package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion records that an order was derived from a quote. At most one
// conversion exists per quote.
type Conversion struct {
	ID             string
	QuoteID        int64
	SupplierID     int64
	OrderID        int64
	IdempotencyKey string
	Total          decimal.Decimal
	CreatedAt      time.Time
}
