package port

import (
	"context"

	"crmchat/internal/core/domain"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
	Create(ctx context.Context, phone string) (domain.User, error)
	Count(ctx context.Context) (int, error)
}

type UserService interface {
	Login(ctx context.Context, phone string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
