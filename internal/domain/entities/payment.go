package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the processing state reported by the upstream source.
//
// The service never transitions payments between states; it stores whatever
// state the source reported at fetch time.

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
)

// Currency is one of the fixed set of currencies the mock source emits.

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Currencies and Statuses list the valid enum members, in the order the
// generator draws from them.
var (
	Currencies = []Currency{CurrencyRUB, CurrencyUSD, CurrencyEUR, CurrencyGBP}
	Statuses   = []PaymentStatus{PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusProcessing}
)

// Payment is the payment record persisted by the payment-history-service.
//
// Storage model (DynamoDB):
//   - PK: id; a "TXN#<transaction_id>" marker item under the same PK space
//     enforces transaction-id uniqueness
//   - GSI (status-index): status
//   - GSI (payer_email-index): payer_email
//
// TransactionID is the dedup key: at most one stored record may exist per
// transaction id. IsNew is a transient lifecycle flag that selects the
// insert path on save; it is cleared after the first successful persist and
// never stored or serialized.

type Payment struct {
	ID               uuid.UUID       `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         Currency        `json:"currency"`
	Description      string          `json:"description"`
	Status           PaymentStatus   `json:"status"`
	PayerName        string          `json:"payer_name"`
	PayerEmail       string          `json:"payer_email"`
	RecipientName    string          `json:"recipient_name"`
	RecipientAccount string          `json:"recipient_account"`
	TransactionID    string          `json:"transaction_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	IsNew bool `json:"-"`
}

// MarkAsNew flags the payment for the insert path and fills the identity and
// timestamp fields a fresh record must carry. CreatedAt is set once and never
// mutated afterwards; UpdatedAt is refreshed on every persist.
func (p *Payment) MarkAsNew() {
	p.IsNew = true
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
}

// MarkAsNotNew clears the insert flag after a successful save.
func (p *Payment) MarkAsNotNew() {
	p.IsNew = false
}

// ValidCurrency reports whether c is a member of the fixed currency set.
func ValidCurrency(c Currency) bool {
	for _, v := range Currencies {
		if v == c {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a member of the fixed status set.
func ValidStatus(s PaymentStatus) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}
