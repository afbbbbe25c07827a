package http

import (
	"context"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/app"
	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

// AuthService is the minimal interface needed for the account endpoints.
type AuthService interface {
	Login(ctx context.Context, email, password string) (app.LoginResult, error)
	Register(ctx context.Context, in app.RegisterInput) (domain.User, error)
	Profile(ctx context.Context, sess domain.Session) (domain.User, error)
}

// HandleLogin returns an HTTP handler exchanging credentials for the
// backend's bearer token.
func HandleLogin(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: res.Session.Token, User: newUserView(res.User)})
	}
}

// HandleRegister returns an HTTP handler creating client and supplier
// accounts.
func HandleRegister(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		user, err := svc.Register(r.Context(), app.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newUserView(user))
	}
}

// HandleProfile returns an HTTP handler describing the caller's account.
func HandleProfile(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		user, err := svc.Profile(r.Context(), SessionFromContext(r.Context()))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newUserView(user))
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"userType"`
}
