package factory

import (
	"crmchat/internal/core/domain"
)

// NewDeal fabricates a deal owned by the first demo user unless
// customData names another CreatedBy.
func NewDeal(customData ...map[string]any) domain.NewDeal {
	defaults := map[string]any{
		"CreatedBy": "79001234567",
	}

	return Build[domain.NewDeal](append([]map[string]any{defaults}, customData...)...)
}

// NewMessage fabricates a message from the first demo user on dealID.
func NewMessage(dealID int64, customData ...map[string]any) domain.NewMessage {
	defaults := map[string]any{
		"DealID": dealID,
		"Sender": "79001234567",
	}

	return Build[domain.NewMessage](append([]map[string]any{defaults}, customData...)...)
}
