package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

// UserAdmin is the minimal interface needed for admin user endpoints.
type UserAdmin interface {
	ListUsers(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.User, error)
	GetUser(ctx context.Context, sess domain.Session, id int64) (domain.User, error)
	DeleteUser(ctx context.Context, sess domain.Session, id int64) error
}

// HandleAdminUsers returns an HTTP handler listing accounts.
func HandleAdminUsers(svc UserAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		page, ok := parsePage(r)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid page or limit")
			return
		}
		users, err := svc.ListUsers(r.Context(), SessionFromContext(r.Context()), page)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newUserViews(users))
	}
}

// HandleAdminUserActions serves GET and DELETE /admin/users/{id}.
func HandleAdminUserActions(svc UserAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
			return
		}

		sess := SessionFromContext(r.Context())
		switch r.Method {
		case http.MethodGet:
			user, err := svc.GetUser(r.Context(), sess, id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, newUserView(user))
		case http.MethodDelete:
			if err := svc.DeleteUser(r.Context(), sess, id); err != nil {
				writeServiceError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
