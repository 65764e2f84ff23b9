package http

import (
	database "crmchat/internal/adapter/database/sqlite"
	repository "crmchat/internal/adapter/database/sqlite/repository"

	"crmchat/internal/adapter/http/handler"
	"crmchat/internal/adapter/http/routes"
	"crmchat/internal/core/port"
	"crmchat/internal/core/service"
	"crmchat/pkg/config"
)

type Container struct {
	UserRepo    port.UserRepository
	DealRepo    port.DealRepository
	MessageRepo port.MessageRepository

	UserService    port.UserService
	DealService    port.DealService
	MessageService port.MessageService

	UserHandler    *handler.UserHandler
	DealHandler    *handler.DealHandler
	MessageHandler *handler.MessageHandler
}

func NewContainer(db *database.DB, telemetry port.Telemetry, logger *config.LokiLogger, exposeErrors bool) *Container {
	userRepo := repository.NewUserRepository(db, telemetry)
	dealRepo := repository.NewDealRepository(db, telemetry)
	messageRepo := repository.NewMessageRepository(db, telemetry)

	userSvc := service.NewUserService(userRepo, telemetry)
	dealSvc := service.NewDealService(dealRepo, telemetry)
	messageSvc := service.NewMessageService(messageRepo, telemetry)

	return &Container{
		UserRepo:    userRepo,
		DealRepo:    dealRepo,
		MessageRepo: messageRepo,

		UserService:    userSvc,
		DealService:    dealSvc,
		MessageService: messageSvc,

		UserHandler:    handler.NewUserHandler(userSvc, logger, exposeErrors),
		DealHandler:    handler.NewDealHandler(dealSvc, logger, exposeErrors),
		MessageHandler: handler.NewMessageHandler(messageSvc, logger, exposeErrors),
	}
}

func (c *Container) Handlers() routes.HandlersConfig {
	return routes.HandlersConfig{
		UserHandler:    c.UserHandler,
		DealHandler:    c.DealHandler,
		MessageHandler: c.MessageHandler,
	}
}
