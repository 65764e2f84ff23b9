package response

import "crmchat/internal/core/domain"

const StatusOK = "ok"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type UserResponse struct {
	Status string      `json:"status"`
	User   domain.User `json:"user"`
}

type UsersResponse struct {
	Status string        `json:"status"`
	Users  []domain.User `json:"users"`
}

type DealResponse struct {
	Status string      `json:"status"`
	Deal   domain.Deal `json:"deal"`
}

type DealsResponse struct {
	Status string        `json:"status"`
	Deals  []domain.Deal `json:"deals"`
}

type DeletedResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

type MessageResponse struct {
	Status  string         `json:"status"`
	Message domain.Message `json:"message"`
}

type MessagesResponse struct {
	Status   string           `json:"status"`
	Messages []domain.Message `json:"messages"`
}
