package routes

import (
	"log"
	"os"
	"strconv"

	_ "github.com/TenaciousFoxy/payment-history-service/docs" // This will be auto-generated
	"github.com/TenaciousFoxy/payment-history-service/internal/adapter/http/handlers"
	repository2 "github.com/TenaciousFoxy/payment-history-service/internal/adapter/persistence/repository"
	"github.com/TenaciousFoxy/payment-history-service/internal/infrastructure/database"
	"github.com/TenaciousFoxy/payment-history-service/internal/infrastructure/metrics"
	"github.com/TenaciousFoxy/payment-history-service/internal/infrastructure/upstream"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	getRoutes()

	port := defaultPort
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		port = v
	}

	err := router.Run(":" + strconv.Itoa(port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	paymentMetrics := metrics.NewPaymentMetrics(nil)
	generator := usecase.NewPaymentGenerator(nil)

	// MOCK_SERVICE_URL selects the upstream; without it the in-process
	// generator feeds the pipeline directly.
	var source interfaces.IPaymentSource
	httpSource, err := upstream.NewHTTPPaymentSource(os.Getenv("MOCK_SERVICE_URL"))
	if err != nil {
		log.Printf("Mock payment service not configured, using local generator: %v", err)
		source = upstream.NewLocalPaymentSource(generator)
	} else {
		source = httpSource
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, source, paymentMetrics)

	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	mockHandler := handlers.NewMockPaymentHandler(generator, paymentMetrics)

	api := router.Group("/api")
	addPingRoutes(api)
	addPaymentRoutes(api, paymentHandler, mockHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
