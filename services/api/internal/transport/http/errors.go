package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/backend"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidLineItem       = "invalid_line_item"
	codeInvalidQuantity       = "invalid_quantity"
	codeInvalidPrice          = "invalid_price"
	codeInvalidStockOperation = "invalid_stock_operation"
	codeProductNameRequired   = "product_name_required"
	codeQuoteHasNoItems       = "quote_has_no_items"
	codeEmptyOrder            = "empty_order"
	codeNoResponses           = "no_responses"
	codeQuoteMismatch         = "quote_response_mismatch"
	codeQuoteNotRespondable   = "quote_not_respondable"
	codeQuoteTerminal         = "quote_terminal"
	codeAlreadyResponded      = "already_responded"
	codeSupplierNotFound      = "supplier_not_found"
	codeConversionNotFound    = "conversion_not_found"
	codeConversionPending     = "conversion_pending"
	codeInvalidStatus         = "invalid_status"
	codeInvalidRole           = "invalid_role"
	codeCredentialsRequired   = "credentials_required"
	codeUserNameRequired      = "user_name_required"
	codeCannotDeleteSelf      = "cannot_delete_self"
	codeIdempotencyRequired   = "idempotency_key_required"
	codeIdempotencyConflict   = "idempotency_conflict"
	codeUnauthorized          = "unauthorized"
	codeForbidden             = "forbidden"
	codeBackendError          = "backend_error"
	codeBackendTimeout        = "backend_timeout"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

var errorStatuses = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidID, http.StatusBadRequest, codeInvalidID},
	{domain.ErrInvalidLineItem, http.StatusBadRequest, codeInvalidLineItem},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, codeInvalidQuantity},
	{domain.ErrInvalidPrice, http.StatusBadRequest, codeInvalidPrice},
	{domain.ErrInvalidStockOperation, http.StatusBadRequest, codeInvalidStockOperation},
	{domain.ErrProductNameRequired, http.StatusBadRequest, codeProductNameRequired},
	{domain.ErrQuoteHasNoItems, http.StatusBadRequest, codeQuoteHasNoItems},
	{domain.ErrEmptyOrder, http.StatusBadRequest, codeEmptyOrder},
	{domain.ErrIdempotencyKeyRequired, http.StatusBadRequest, codeIdempotencyRequired},
	{domain.ErrInvalidStatus, http.StatusBadRequest, codeInvalidStatus},
	{domain.ErrInvalidRole, http.StatusBadRequest, codeInvalidRole},
	{domain.ErrCredentialsRequired, http.StatusBadRequest, codeCredentialsRequired},
	{domain.ErrUserNameRequired, http.StatusBadRequest, codeUserNameRequired},
	{domain.ErrNoResponses, http.StatusConflict, codeNoResponses},
	{domain.ErrQuoteResponseMismatch, http.StatusConflict, codeQuoteMismatch},
	{domain.ErrQuoteNotRespondable, http.StatusConflict, codeQuoteNotRespondable},
	{domain.ErrQuoteTerminal, http.StatusConflict, codeQuoteTerminal},
	{domain.ErrAlreadyResponded, http.StatusConflict, codeAlreadyResponded},
	{domain.ErrIdempotencyConflict, http.StatusConflict, codeIdempotencyConflict},
	{domain.ErrConversionPending, http.StatusConflict, codeConversionPending},
	{domain.ErrCannotDeleteSelf, http.StatusConflict, codeCannotDeleteSelf},
	{domain.ErrSupplierNotFound, http.StatusNotFound, codeSupplierNotFound},
	{domain.ErrConversionNotFound, http.StatusNotFound, codeConversionNotFound},
	{domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden, codeForbidden},
}

// writeServiceError maps domain and backend errors to a JSON error response.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.code, e.err.Error())
			return
		}
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		code := codeBackendError
		if backend.IsNotFound(err) {
			code = codeNotFound
		}
		writeError(w, status, code, apiErr.Message)
		return
	}

	// The backend may still have acted on a request that timed out.
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		writeError(w, http.StatusGatewayTimeout, codeBackendTimeout, "backend did not answer in time")
		return
	}

	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
