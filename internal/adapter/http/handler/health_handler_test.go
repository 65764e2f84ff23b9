package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"crmchat/internal/core/model/response"
)

func TestHealth(t *testing.T) {
	RegisterTestingT(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", Health)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(rr, req)

	Expect(rr.Code).To(Equal(http.StatusOK))

	var data response.HealthResponse
	json.Unmarshal(rr.Body.Bytes(), &data)

	Expect(data.Status).To(Equal("ok"))
	Expect(data.Message).To(Equal("CRM Chat API работает"))
}
