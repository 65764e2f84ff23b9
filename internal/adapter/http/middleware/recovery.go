package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crmchat/internal/adapter/http/helper"
	"crmchat/pkg/config"
)

// RecoveryMiddleware turns a panic into a logged generic 500.
func RecoveryMiddleware(logger *config.LokiLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorWithTrace(c.Request.Context(), "Panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("panic", fmt.Sprint(recovered)),
			zap.Stack("stack"),
		)

		helper.SendError(c, http.StatusInternalServerError, helper.CodeInternal, helper.MessageInternal, nil)
		c.Abort()
	})
}
