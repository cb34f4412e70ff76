package main

import (
	_ "github.com/TenaciousFoxy/payment-history-service/docs"
	"github.com/TenaciousFoxy/payment-history-service/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Payment History Service API
// @version         1.0
// @description     Fetches mock payments, deduplicates them by transaction id and persists them in DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /api

func main() {
	routes.Run()
}
