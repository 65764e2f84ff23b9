package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/adapter/database/sqlite/repository"
	"crmchat/internal/adapter/http/middleware"
	"crmchat/internal/core/model/response"
	"crmchat/internal/core/service"
	"crmchat/internal/core/telemetry"
)

var ctx = context.Background()

type testHandlers struct {
	User    *UserHandler
	Deal    *DealHandler
	Message *MessageHandler
}

func newTestHandlers(db *sqlite.DB, exposeErrors bool) testHandlers {
	probe := telemetry.NewNoOpProbe()

	userSvc := service.NewUserService(repository.NewUserRepository(db, probe), probe)
	dealSvc := service.NewDealService(repository.NewDealRepository(db, probe), probe)
	messageSvc := service.NewMessageService(repository.NewMessageRepository(db, probe), probe)

	return testHandlers{
		User:    NewUserHandler(userSvc, nil, exposeErrors),
		Deal:    NewDealHandler(dealSvc, nil, exposeErrors),
		Message: NewMessageHandler(messageSvc, nil, exposeErrors),
	}
}

// setupTestRouter mounts the handlers directly; the routes package
// imports this one.
func setupTestRouter(h testHandlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CurrentMiddleware())

	router.GET("/", Health)

	api := router.Group("/api")
	{
		api.POST("/login", h.User.Login)
		api.GET("/users", h.User.ListUsers)

		api.GET("/deals", h.Deal.ListDeals)
		api.POST("/deals", h.Deal.CreateDeal)
		api.PUT("/deals/:id", h.Deal.UpdateDeal)
		api.DELETE("/deals/:id", h.Deal.DeleteDeal)

		api.GET("/messages/:dealId", h.Message.ListMessages)
		api.POST("/messages", h.Message.PostMessage)
	}

	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(rr, req)

	return rr
}

func decodeError(rr *httptest.ResponseRecorder) response.ErrorResponse {
	var data response.ErrorResponse
	json.Unmarshal(rr.Body.Bytes(), &data)

	return data
}
