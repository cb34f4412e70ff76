package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/usecase"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const defaultMockDelayMillis = 200

// MockPaymentHandler serves randomly generated payments, standing in for the
// external payment provider. The artificial delay simulates provider latency
// and is tunable via MOCK_RESPONSE_DELAY_MS.

type MockPaymentHandler struct {
	generator usecase.IPaymentGenerator
	metrics   interfaces.IPaymentMetrics
	delay     time.Duration
}

func NewMockPaymentHandler(generator usecase.IPaymentGenerator, metrics interfaces.IPaymentMetrics) *MockPaymentHandler {
	delay := defaultMockDelayMillis * time.Millisecond
	if v := os.Getenv("MOCK_RESPONSE_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			delay = time.Duration(ms) * time.Millisecond
		}
	}
	return &MockPaymentHandler{generator: generator, metrics: metrics, delay: delay}
}

// GetMockPayment generates one synthetic payment payload.
func (h *MockPaymentHandler) GetMockPayment(c *gin.Context) {
	if h.metrics != nil {
		h.metrics.IncrementGenerated()
	}

	if h.delay > 0 {
		select {
		case <-c.Request.Context().Done():
			c.AbortWithStatus(http.StatusRequestTimeout)
			return
		case <-time.After(h.delay):
		}
	}

	payload := h.generator.Generate()
	log.Printf("[payment][mock] generated payment transaction_id=%s", payload.TransactionID)

	c.JSON(http.StatusOK, payload)
}
