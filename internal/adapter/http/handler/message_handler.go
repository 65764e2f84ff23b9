package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	. "crmchat/internal/adapter/http/helper"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/model/request"
	"crmchat/internal/core/model/response"
	"crmchat/internal/core/port"
	"crmchat/pkg/config"
)

type MessageHandler struct {
	base
	svc port.MessageService
}

func NewMessageHandler(svc port.MessageService, logger *config.LokiLogger, exposeErrors bool) *MessageHandler {
	return &MessageHandler{
		base: newBase(logger, exposeErrors),
		svc:  svc,
	}
}

// ListMessages returns the deal's conversation oldest first. A dealId that
// is not an integer matches no messages.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()

	dealID, err := strconv.ParseInt(c.Param("dealId"), 10, 64)

	if err != nil {
		SendOK(c, response.MessagesResponse{Status: response.StatusOK, Messages: []domain.Message{}})
		return
	}

	messages, err := h.svc.ListByDeal(ctx, dealID)

	if err != nil {
		h.fail(c, ctx, "message.ListByDeal", err, msgDealNotFound)
		return
	}

	SendOK(c, response.MessagesResponse{Status: response.StatusOK, Messages: messages})
}

func (h *MessageHandler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.CreateMessageRequest

	if !h.bind(c, &params, msgMessageRequired) {
		return
	}

	message, err := h.svc.Post(ctx, params.ToDomain())

	if err != nil {
		h.fail(c, ctx, "message.Post", err, msgDealNotFound)
		return
	}

	SendOK(c, response.MessageResponse{Status: response.StatusOK, Message: message})
}
