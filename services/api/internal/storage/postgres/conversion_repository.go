package postgres

import (
	"context"
	"fmt"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	quoteUniqueConstraint = "quote_conversions_quote_id_key"
	orderUniqueIndex      = "quote_conversions_order_id_idx"
)

// ConversionRepository stores the quote to order ledger.
type ConversionRepository struct {
	pool *pgxpool.Pool
}

func NewConversionRepository(pool *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{pool: pool}
}

func (r *ConversionRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// LockQuote serializes conversions of one quote until the surrounding
// transaction ends. Outside a transaction it is a no-op.
func (r *ConversionRepository) LockQuote(ctx context.Context, quoteID int64) error {
	if txFromContext(ctx) == nil {
		return nil
	}
	if _, err := r.exec(ctx, `SELECT pg_advisory_xact_lock($1)`, quoteID); err != nil {
		return fmt.Errorf("lock quote: %w", err)
	}
	return nil
}

func (r *ConversionRepository) GetConversionByQuoteID(ctx context.Context, quoteID int64) (*domain.Conversion, error) {
	const query = `
SELECT id, quote_id, supplier_id, COALESCE(order_id, 0), idempotency_key, total::text, created_at
FROM quote_conversions
WHERE quote_id = $1`

	var c domain.Conversion
	var total string
	err := r.queryRow(ctx, query, quoteID).
		Scan(&c.ID, &c.QuoteID, &c.SupplierID, &c.OrderID, &c.IdempotencyKey, &total, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversion: %w", err)
	}
	c.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse conversion total: %w", err)
	}
	return &c, nil
}

func (r *ConversionRepository) CreateConversion(ctx context.Context, conv domain.Conversion) error {
	const stmt = `
INSERT INTO quote_conversions (id, quote_id, supplier_id, idempotency_key, total, created_at)
VALUES ($1, $2, $3, $4, $5::numeric, $6)`

	_, err := r.exec(ctx, stmt, conv.ID, conv.QuoteID, conv.SupplierID, conv.IdempotencyKey, conv.Total.String(), conv.CreatedAt)
	if err != nil {
		if name, ok := uniqueViolation(err); ok && name == quoteUniqueConstraint {
			return domain.ErrQuoteTerminal
		}
		return fmt.Errorf("create conversion: %w", err)
	}
	return nil
}

func (r *ConversionRepository) SetConversionOrder(ctx context.Context, conversionID string, orderID int64) error {
	const stmt = `UPDATE quote_conversions SET order_id = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, conversionID, orderID)
	if err != nil {
		// The backend handed out an order id already linked to another quote.
		if name, ok := uniqueViolation(err); ok && name == orderUniqueIndex {
			return domain.ErrIdempotencyConflict
		}
		return fmt.Errorf("set conversion order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversionNotFound
	}
	return nil
}

// DeleteConversion releases a pending conversion so the quote can be
// converted again. Conversions already linked to an order are never deleted.
func (r *ConversionRepository) DeleteConversion(ctx context.Context, conversionID string) error {
	const stmt = `DELETE FROM quote_conversions WHERE id = $1 AND order_id IS NULL`

	tag, err := r.exec(ctx, stmt, conversionID)
	if err != nil {
		return fmt.Errorf("delete conversion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversionNotFound
	}
	return nil
}

func (r *ConversionRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ConversionRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
