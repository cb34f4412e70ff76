package usecase

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/dto"
	"github.com/TenaciousFoxy/payment-history-service/internal/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var payerNames = []string{
	"Ivan Ivanov", "Alexey Petrov", "Maria Sidorova", "Ekaterina Smirnova",
	"Dmitry Kuznetsov", "Olga Popova", "Sergey Vasiliev", "Anna Novikova",
}

var descriptions = []string{
	"Order payment", "Transfer between accounts", "Service payment", "Refund",
	"Monthly payment", "Bonus payout", "Corporate transfer",
}

const defaultRecipientName = "Romashka LLC"

// IPaymentGenerator produces a synthetic payment payload. Generate never
// fails and performs no I/O beyond consuming randomness.

type IPaymentGenerator interface {
	Generate() dto.PaymentDTO
}

// PaymentGenerator draws every randomized field from its own rand.Rand so
// output is reproducible under a seeded source. The mutex makes the instance
// safe for concurrent use; it is held only while drawing, never across I/O.

type PaymentGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

var _ IPaymentGenerator = (*PaymentGenerator)(nil)

// NewPaymentGenerator builds a generator around rnd. A nil rnd gets a
// time-seeded source.
func NewPaymentGenerator(rnd *rand.Rand) *PaymentGenerator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &PaymentGenerator{rnd: rnd}
}

func (g *PaymentGenerator) Generate() dto.PaymentDTO {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UTC()
	amount := g.randomAmount()
	payerName := payerNames[g.rnd.Intn(len(payerNames))]

	return dto.PaymentDTO{
		ID:               uuid.NewString(),
		Amount:           &amount,
		Currency:         string(entities.Currencies[g.rnd.Intn(len(entities.Currencies))]),
		Description:      descriptions[g.rnd.Intn(len(descriptions))],
		Status:           string(entities.Statuses[g.rnd.Intn(len(entities.Statuses))]),
		PayerName:        payerName,
		PayerEmail:       emailFor(payerName),
		RecipientName:    defaultRecipientName,
		RecipientAccount: fmt.Sprintf("ACC%08d", g.rnd.Intn(100000000)),
		TransactionID:    fmt.Sprintf("TXN%d%d", now.UnixMilli(), g.rnd.Intn(1000)),
		// Backdate up to 24 hours so the latest-payments ordering has spread.
		CreatedAt: dto.DateTime{Time: now.Add(-time.Duration(g.rnd.Intn(1440)) * time.Minute)},
		UpdatedAt: dto.DateTime{Time: now},
	}
}

// randomAmount draws uniformly from [100, 10000) and rounds half-up to two
// decimal places.
func (g *PaymentGenerator) randomAmount() decimal.Decimal {
	amount := 100 + g.rnd.Float64()*9900
	return decimal.NewFromFloat(amount).Round(2)
}

// emailFor derives "first.last@example.com" from the payer name, lowercased.
// Single-token names fall back to the "user" surname.
func emailFor(payerName string) string {
	parts := strings.Fields(payerName)
	first := "unknown"
	last := "user"
	if len(parts) > 0 {
		first = strings.ToLower(parts[0])
	}
	if len(parts) > 1 {
		last = strings.ToLower(parts[1])
	}
	return first + "." + last + "@example.com"
}
