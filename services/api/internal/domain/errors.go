package domain

import "errors"

var (
	ErrInvalidLineItem        = errors.New("invalid line item")
	ErrNoResponses            = errors.New("quote has no supplier responses")
	ErrQuoteResponseMismatch  = errors.New("response does not belong to quote")
	ErrQuoteNotRespondable    = errors.New("quote is not in a respondable state")
	ErrQuoteTerminal          = errors.New("quote is cancelled or already ordered")
	ErrQuoteHasNoItems        = errors.New("quote has no items")
	ErrEmptyOrder             = errors.New("order has no items")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidPrice           = errors.New("invalid unit price")
	ErrInvalidStockOperation  = errors.New("invalid stock operation")
	ErrProductNameRequired    = errors.New("product name required")
	ErrSupplierNotFound       = errors.New("supplier response not found")
	ErrAlreadyResponded       = errors.New("supplier already responded to quote")
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyConflict    = errors.New("idempotency conflict")
	ErrConversionNotFound     = errors.New("conversion not found")
	ErrConversionPending      = errors.New("conversion pending: order submission outcome unknown")
	ErrCannotDeleteSelf       = errors.New("cannot delete own account")
	ErrInvalidStatus          = errors.New("invalid quote status")
	ErrCredentialsRequired    = errors.New("email and password required")
	ErrUserNameRequired       = errors.New("user name required")
	ErrInvalidRole            = errors.New("invalid user role")
	ErrInvalidID              = errors.New("invalid id")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
)
