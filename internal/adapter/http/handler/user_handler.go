package handler

import (
	"github.com/gin-gonic/gin"

	. "crmchat/internal/adapter/http/helper"
	"crmchat/internal/core/model/request"
	"crmchat/internal/core/model/response"
	"crmchat/internal/core/port"
	"crmchat/pkg/config"
)

type UserHandler struct {
	base
	svc port.UserService
}

func NewUserHandler(svc port.UserService, logger *config.LokiLogger, exposeErrors bool) *UserHandler {
	return &UserHandler{
		base: newBase(logger, exposeErrors),
		svc:  svc,
	}
}

// Login returns the user for the phone, registering it on first sight.
func (h *UserHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.LoginRequest

	if !h.bind(c, &params, msgPhoneRequired) {
		return
	}

	user, err := h.svc.Login(ctx, params.Phone)

	if err != nil {
		h.fail(c, ctx, "user.Login", err, msgUserNotFound)
		return
	}

	SendOK(c, response.UserResponse{Status: response.StatusOK, User: user})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.svc.List(ctx)

	if err != nil {
		h.fail(c, ctx, "user.List", err, msgUserNotFound)
		return
	}

	SendOK(c, response.UsersResponse{Status: response.StatusOK, Users: users})
}
