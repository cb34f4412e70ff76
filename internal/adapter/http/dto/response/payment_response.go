package response

import (
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/entities"
)

type PaymentResponse struct {
	ID               string    `json:"id"`
	Amount           string    `json:"amount"`
	Currency         string    `json:"currency"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	PayerName        string    `json:"payer_name"`
	PayerEmail       string    `json:"payer_email"`
	RecipientName    string    `json:"recipient_name"`
	RecipientAccount string    `json:"recipient_account"`
	TransactionID    string    `json:"transaction_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID.String(),
		Amount:           p.Amount.StringFixed(2),
		Currency:         string(p.Currency),
		Description:      p.Description,
		Status:           string(p.Status),
		PayerName:        p.PayerName,
		PayerEmail:       p.PayerEmail,
		RecipientName:    p.RecipientName,
		RecipientAccount: p.RecipientAccount,
		TransactionID:    p.TransactionID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromPayments(payments []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromPayment(p))
	}
	return out
}
