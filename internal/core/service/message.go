package service

import (
	"context"
	"strconv"

	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
)

type MessageService struct {
	repo      port.MessageRepository
	telemetry port.Telemetry
}

func NewMessageService(repo port.MessageRepository, telemetry port.Telemetry) *MessageService {
	return &MessageService{repo: repo, telemetry: probeOrNoOp(telemetry)}
}

// ListByDeal returns the messages of a deal oldest first. Unknown deals
// simply have no messages.
func (ms *MessageService) ListByDeal(ctx context.Context, dealID int64) (messages []domain.Message, err error) {
	ctx, done := startSpan(ctx, ms.telemetry, "message", "ListByDeal", map[string]interface{}{"deal.id": dealID})
	defer done(&err)

	return ms.repo.GetByDealID(ctx, dealID)
}

func (ms *MessageService) Post(ctx context.Context, message domain.NewMessage) (saved domain.Message, err error) {
	ctx, done := startSpan(ctx, ms.telemetry, "message", "Post", map[string]interface{}{
		"deal.id":        message.DealID,
		"message.sender": message.Sender,
	})
	defer done(&err)

	switch {
	case message.DealID == 0:
		return domain.Message{}, domain.NewValidationError("deal_id", "deal_id is required")
	case message.Sender == "":
		return domain.Message{}, domain.NewValidationError("sender", "sender is required")
	case message.Text == "":
		return domain.Message{}, domain.NewValidationError("text", "text is required")
	}

	saved, err = ms.repo.Create(ctx, message)
	if err != nil {
		return domain.Message{}, err
	}

	ms.telemetry.RecordBusinessEvent(ctx, "message.posted", "message", strconv.FormatInt(saved.ID, 10), map[string]interface{}{
		"deal_id": saved.DealID,
		"sender":  saved.Sender,
	})

	return saved, nil
}
