package handler

import (
	"github.com/gin-gonic/gin"

	. "crmchat/internal/adapter/http/helper"
	"crmchat/internal/core/model/response"
)

const healthMessage = "CRM Chat API работает"

func Health(c *gin.Context) {
	SendOK(c, response.HealthResponse{Status: response.StatusOK, Message: healthMessage})
}
