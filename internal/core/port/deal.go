package port

import (
	"context"

	"crmchat/internal/core/domain"
)

type DealRepository interface {
	GetAll(ctx context.Context) ([]domain.Deal, error)
	GetByID(ctx context.Context, id int64) (domain.Deal, error)
	Create(ctx context.Context, deal domain.NewDeal) (domain.Deal, error)
	Update(ctx context.Context, id int64, patch domain.DealPatch) (domain.Deal, error)
	Delete(ctx context.Context, id int64) error
}

type DealService interface {
	List(ctx context.Context) ([]domain.Deal, error)
	Create(ctx context.Context, deal domain.NewDeal) (domain.Deal, error)
	Update(ctx context.Context, id int64, patch domain.DealPatch) (domain.Deal, error)
	Delete(ctx context.Context, id int64) error
}
