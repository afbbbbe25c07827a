package backend

import (
	"context"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

type signInResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, domain.User, error) {
	var out signInResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, domain.Session{}, http.MethodPost, "/auth/signin", nil, body, &out); err != nil {
		return domain.Session{}, domain.User{}, err
	}
	user := out.User.toDomain()
	return domain.Session{Token: out.Token, UserID: user.ID, Role: user.Role}, user, nil
}

// SignUp registers a new account. The backend assigns the ID.
func (c *Client) SignUp(ctx context.Context, u domain.User, password string) (domain.User, error) {
	body := map[string]string{
		"name":     u.Name,
		"email":    u.Email,
		"password": password,
		"userType": string(u.Role),
	}
	var out userDTO
	if err := c.do(ctx, domain.Session{}, http.MethodPost, "/auth/signup", nil, body, &out); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}

// Profile returns the user the session belongs to.
func (c *Client) Profile(ctx context.Context, sess domain.Session) (domain.User, error) {
	var out userDTO
	if err := c.do(ctx, sess, http.MethodGet, "/users/profile", nil, nil, &out); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}
