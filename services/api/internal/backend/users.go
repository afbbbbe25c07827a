package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.User, error) {
	var out struct {
		Users []userDTO `json:"users"`
	}
	if err := c.do(ctx, sess, http.MethodGet, "/users", pageValues(page), nil, &out); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, u.toDomain())
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, sess domain.Session, id int64) (domain.User, error) {
	var out userDTO
	if err := c.do(ctx, sess, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &out); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) DeleteUser(ctx context.Context, sess domain.Session, id int64) error {
	return c.do(ctx, sess, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}
