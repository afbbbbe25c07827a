package app

import (
	"context"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

type UserGateway interface {
	ListUsers(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.User, error)
	GetUser(ctx context.Context, sess domain.Session, id int64) (domain.User, error)
	DeleteUser(ctx context.Context, sess domain.Session, id int64) error
}

type UserService struct {
	gateway UserGateway
}

func NewUserService(gateway UserGateway) *UserService {
	return &UserService{gateway: gateway}
}

func (s *UserService) ListUsers(ctx context.Context, sess domain.Session, page domain.Page) ([]domain.User, error) {
	return s.gateway.ListUsers(ctx, sess, page)
}

func (s *UserService) GetUser(ctx context.Context, sess domain.Session, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrInvalidID
	}
	return s.gateway.GetUser(ctx, sess, id)
}

// DeleteUser removes an account. An admin cannot remove their own.
func (s *UserService) DeleteUser(ctx context.Context, sess domain.Session, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	if id == sess.UserID {
		return domain.ErrCannotDeleteSelf
	}
	return s.gateway.DeleteUser(ctx, sess, id)
}
