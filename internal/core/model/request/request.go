package request

import "crmchat/internal/core/domain"

type LoginRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// CreateDealRequest keeps the historic rule that an amount of 0 counts as
// missing. The amount may arrive as a number or a numeric string.
type CreateDealRequest struct {
	Name      string        `json:"name" validate:"required"`
	Amount    domain.Number `json:"amount" validate:"required"`
	Currency  string        `json:"currency"`
	CreatedBy string        `json:"created_by" validate:"required"`
}

func (r CreateDealRequest) ToDomain() domain.NewDeal {
	return domain.NewDeal{
		Name:      r.Name,
		Amount:    float64(r.Amount),
		Currency:  r.Currency,
		CreatedBy: r.CreatedBy,
	}
}

type UpdateDealRequest = domain.DealPatch

type CreateMessageRequest struct {
	DealID int64  `json:"deal_id" validate:"required"`
	Sender string `json:"sender" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

func (r CreateMessageRequest) ToDomain() domain.NewMessage {
	return domain.NewMessage{
		DealID: r.DealID,
		Sender: r.Sender,
		Text:   r.Text,
	}
}
