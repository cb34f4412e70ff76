package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timeLayout is the wire format the mock payment source uses for timestamps.
const timeLayout = "2006-01-02 15:04:05"

// DateTime is a time.Time that marshals as "yyyy-MM-dd HH:mm:ss", the format
// emitted by GET /api/mock/payment. The zero value marshals as null so that
// absent timestamps stay absent on the wire.

type DateTime struct {
	time.Time
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format(timeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return fmt.Errorf("parse datetime %q: %w", s, err)
	}
	d.Time = t.UTC()
	return nil
}

// PaymentDTO is the upstream payload shape, before defaulting. Every field is
// optional; the ingestion pipeline fills the gaps during conversion.
//
// Amount is a pointer so that an absent amount is distinguishable from an
// explicit zero.

type PaymentDTO struct {
	ID               string           `json:"id,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	Description      string           `json:"description,omitempty"`
	Status           string           `json:"status,omitempty"`
	PayerName        string           `json:"payerName,omitempty"`
	PayerEmail       string           `json:"payerEmail,omitempty"`
	RecipientName    string           `json:"recipientName,omitempty"`
	RecipientAccount string           `json:"recipientAccount,omitempty"`
	TransactionID    string           `json:"transactionId,omitempty"`
	CreatedAt        DateTime         `json:"createdAt,omitempty"`
	UpdatedAt        DateTime         `json:"updatedAt,omitempty"`
}
