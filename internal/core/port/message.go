package port

import (
	"context"

	"crmchat/internal/core/domain"
)

type MessageRepository interface {
	GetByDealID(ctx context.Context, dealID int64) ([]domain.Message, error)
	GetByID(ctx context.Context, id int64) (domain.Message, error)
	Create(ctx context.Context, message domain.NewMessage) (domain.Message, error)
}

type MessageService interface {
	ListByDeal(ctx context.Context, dealID int64) ([]domain.Message, error)
	Post(ctx context.Context, message domain.NewMessage) (domain.Message, error)
}
