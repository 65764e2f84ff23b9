package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	. "crmchat/internal/adapter/http/validation"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/model/response"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeRateLimit  = "RATE_LIMITED"
	CodeInternal   = "INTERNAL_ERROR"

	// MessageInternal is what clients see for storage failures unless raw
	// messages are exposed.
	MessageInternal = "Что-то пошло не так!"
)

func SendOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func SendError(c *gin.Context, statusCode int, code string, message string, errs []response.ValidationError) {
	c.JSON(statusCode, response.ErrorResponse{
		Error:  message,
		Code:   code,
		Errors: errs,
	})
}

// SendValidationError answers 400 with message and whatever field detail
// can be extracted from err.
func SendValidationError(c *gin.Context, message string, err error) {
	SendError(c, http.StatusBadRequest, CodeValidation, message, FormatValidationErrors(err))
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	SendError(c, http.StatusBadRequest, CodeBadRequest, message, []response.ValidationError{
		{Field: field, Message: message},
	})
}

func SendNotFoundError(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, CodeNotFound, message, nil)
}

func SendInternalError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, CodeInternal, message, nil)
}

// SendServiceError maps a service error onto the response envelope.
// Storage errors keep their raw text only when expose is set.
func SendServiceError(c *gin.Context, err error, expose bool, notFoundMessage string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		SendValidationError(c, validationErr.Message, err)
	case errors.Is(err, domain.ErrNotFound):
		SendNotFoundError(c, notFoundMessage)
	case expose:
		SendInternalError(c, err.Error())
	default:
		SendInternalError(c, MessageInternal)
	}
}
