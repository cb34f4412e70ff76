package routes

import (
	"net/http"

	"github.com/TenaciousFoxy/payment-history-service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathMock     = "/mock"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, mockHandler *handlers.MockPaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/fetch-and-save", paymentHandler.FetchAndSave)
		payments.GET("", paymentHandler.GetLatest)
		payments.GET("/all", paymentHandler.GetAll)
		payments.GET("/status/:status", paymentHandler.GetByStatus)
		payments.GET("/payer/:email", paymentHandler.GetByPayerEmail)
		payments.GET("/:id", paymentHandler.GetByID)
	}

	mock := rg.Group(PathMock)
	{
		mock.GET("/payment", mockHandler.GetMockPayment)
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
