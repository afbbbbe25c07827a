package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "PENDING"
	QuoteStatusAnalyzing QuoteStatus = "ANALYZING"
	QuoteStatusResponded QuoteStatus = "RESPONDED"
	QuoteStatusCancelled QuoteStatus = "CANCELLED"
	QuoteStatusWon       QuoteStatus = "WON"
)

var quoteStatusAliases = map[string]QuoteStatus{
	"PENDING":    QuoteStatusPending,
	"PENDENTE":   QuoteStatusPending,
	"ANALYZING":  QuoteStatusAnalyzing,
	"EM_ANALISE": QuoteStatusAnalyzing,
	"RESPONDED":  QuoteStatusResponded,
	"RESPONDIDA": QuoteStatusResponded,
	"CANCELLED":  QuoteStatusCancelled,
	"CANCELED":   QuoteStatusCancelled,
	"CANCELADA":  QuoteStatusCancelled,
	"WON":        QuoteStatusWon,
	"FINALIZADA": QuoteStatusWon,
}

// ParseQuoteStatus accepts both the English and the Portuguese spellings.
// Unknown values are kept upper-cased and fail Valid.
func ParseQuoteStatus(s string) QuoteStatus {
	key := strings.ToUpper(strings.TrimSpace(s))
	if st, ok := quoteStatusAliases[key]; ok {
		return st
	}
	return QuoteStatus(key)
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAnalyzing, QuoteStatusResponded, QuoteStatusCancelled, QuoteStatusWon:
		return true
	}
	return false
}

// Terminal reports whether no further orders may be derived from the quote.
func (s QuoteStatus) Terminal() bool {
	return s == QuoteStatusCancelled || s == QuoteStatusWon
}

// QuoteItem is a requested product and quantity.
type QuoteItem struct {
	ProductID int64
	Quantity  int
}

// SupplierResponse is one supplier's price for every item of a quote.
// QuoteID is optional; when set it must match the quote it is applied to.
type SupplierResponse struct {
	QuoteID      int64
	SupplierID   int64
	UnitPrice    decimal.Decimal
	DeliveryTime string
	RespondedAt  time.Time
}

// Quote is a client's request for prices on a set of products.
type Quote struct {
	ID          int64
	RequesterID int64
	CreatedAt   time.Time
	Status      QuoteStatus
	Notes       string
	Items       []QuoteItem
	Responses   []SupplierResponse
}

// ResponseFrom returns the response submitted by the given supplier.
func (q Quote) ResponseFrom(supplierID int64) (SupplierResponse, bool) {
	for _, r := range q.Responses {
		if r.SupplierID == supplierID {
			return r, true
		}
	}
	return SupplierResponse{}, false
}
