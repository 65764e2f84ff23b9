package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	. "crmchat/internal/adapter/http/helper"
	. "crmchat/internal/adapter/http/validation"
	"crmchat/internal/core/domain"
	"crmchat/pkg/config"
	ct "crmchat/pkg/context"
)

const (
	msgPhoneRequired   = "Номер телефона обязателен"
	msgDealRequired    = "Название, сумма и создатель обязательны"
	msgNoUpdateData    = "Нет данных для обновления"
	msgDealNotFound    = "Сделка не найдена"
	msgMessageRequired = "ID сделки, отправитель и текст обязательны"
	msgUserNotFound    = "Пользователь не найден"
	msgInvalidBody     = "Некорректные данные запроса"
)

// base carries what every handler needs besides its service.
type base struct {
	logger       *config.LokiLogger
	exposeErrors bool
}

func newBase(logger *config.LokiLogger, exposeErrors bool) base {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return base{logger: logger, exposeErrors: exposeErrors}
}

// bind decodes the JSON body into dest and validates it. An empty body
// decodes to the zero value so the presence rules report it; message is
// the answer for those. On failure a 400 has already been written and
// false is returned.
func (b base) bind(c *gin.Context, dest any, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		SendError(c, http.StatusBadRequest, CodeBadRequest, msgInvalidBody, FormatValidationErrors(err))
		return false
	}

	if err := Validator.Struct(dest); err != nil {
		SendValidationError(c, message, err)
		return false
	}

	return true
}

// fail answers with the envelope matching err and logs storage failures.
func (b base) fail(c *gin.Context, ctx context.Context, operation string, err error, notFoundMessage string) {
	if domain.IsStorageError(err) {
		b.logger.ErrorWithTrace(ctx, "Request failed",
			zap.String("operation", operation),
			zap.String("request_id", ct.RequestID(ctx)),
			zap.Error(err),
		)
	}

	SendServiceError(c, err, b.exposeErrors, notFoundMessage)
}
