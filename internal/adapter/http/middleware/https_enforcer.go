package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPSEnforcer redirects plain HTTP requests to HTTPS. Requests already
// terminated by a proxy (X-Forwarded-Proto) and local hosts pass through.
type HTTPSEnforcer struct {
	enabled bool
	logger  *zap.Logger
}

func NewHTTPSEnforcer(enabled bool, logger *zap.Logger) *HTTPSEnforcer {
	return &HTTPSEnforcer{
		enabled: enabled,
		logger:  logger,
	}
}

func (he *HTTPSEnforcer) HTTPSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !he.enabled || c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			c.Next()
			return
		}

		host := c.Request.Host
		if strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
			c.Next()
			return
		}

		httpsURL := "https://" + host + c.Request.URL.RequestURI()

		he.logger.Info("Redirecting to HTTPS",
			zap.String("original_url", c.Request.URL.String()),
			zap.String("https_url", httpsURL),
			zap.String("user_agent", c.GetHeader("User-Agent")))

		c.Redirect(http.StatusMovedPermanently, httpsURL)
		c.Abort()
	}
}

func (he *HTTPSEnforcer) IsEnabled() bool {
	return he.enabled
}
