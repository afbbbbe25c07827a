package pricing

import (
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/shopspring/decimal"
)

// Draft is an order being assembled line by line. Each product appears at
// most once; the zero value is an empty draft.
type Draft struct {
	items []domain.OrderItem
}

// NewDraft builds a draft by adding items in order.
func NewDraft(items []domain.OrderItem) (*Draft, error) {
	d := &Draft{}
	for _, item := range items {
		if err := d.Add(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add appends a line. Adding a product already in the draft increases its
// quantity and replaces its unit price.
func (d *Draft) Add(productID int64, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !unitPrice.IsPositive() {
		return domain.ErrInvalidPrice
	}
	if i := d.index(productID); i >= 0 {
		d.items[i].Quantity += quantity
		d.items[i].UnitPrice = unitPrice
		return nil
	}
	d.items = append(d.items, domain.OrderItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	return nil
}

// Remove drops a product from the draft. Unknown products are ignored.
func (d *Draft) Remove(productID int64) {
	if i := d.index(productID); i >= 0 {
		d.items = append(d.items[:i], d.items[i+1:]...)
	}
}

// Update sets quantity and unit price of an existing line. Non-positive
// values leave the corresponding field unchanged.
func (d *Draft) Update(productID int64, quantity int, unitPrice decimal.Decimal) {
	i := d.index(productID)
	if i < 0 {
		return
	}
	if quantity > 0 {
		d.items[i].Quantity = quantity
	}
	if unitPrice.IsPositive() {
		d.items[i].UnitPrice = unitPrice
	}
}

// Items returns a copy of the draft lines in insertion order.
func (d *Draft) Items() []domain.OrderItem {
	out := make([]domain.OrderItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Draft) Len() int { return len(d.items) }

func (d *Draft) Total() decimal.Decimal {
	// Lines are validated on entry, so Total cannot fail here.
	total, _ := Total(d.items)
	return total
}

// Order returns the submission payload for the draft.
func (d *Draft) Order(buyerID int64) (domain.Order, error) {
	if len(d.items) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}
	return domain.Order{
		BuyerID: buyerID,
		Items:   d.Items(),
		Total:   d.Total(),
	}, nil
}

func (d *Draft) index(productID int64) int {
	for i, item := range d.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
