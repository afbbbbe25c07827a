package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry. Stock is owned by the backend and only changed
// through StockUpdate operations.
type Product struct {
	ID          int64
	Name        string
	Description string
	Stock       int
	UnitPrice   decimal.Decimal
}

type StockOperation string

const (
	StockAdd      StockOperation = "add"
	StockSubtract StockOperation = "subtract"
)

// StockUpdate adjusts a product's stock by Quantity in the given direction.
type StockUpdate struct {
	Quantity  int
	Operation StockOperation
}

func (u StockUpdate) Validate() error {
	if u.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	switch u.Operation {
	case StockAdd, StockSubtract:
		return nil
	default:
		return ErrInvalidStockOperation
	}
}
