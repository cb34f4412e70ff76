package upstream

import (
	"context"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/dto"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"
)

// LocalPaymentSource serves candidates straight from the in-process generator.
// Used when no MOCK_SERVICE_URL is configured, which collapses the service
// and its upstream into a single binary.

type LocalPaymentSource struct {
	generator interface {
		Generate() dto.PaymentDTO
	}
}

var _ interfaces.IPaymentSource = (*LocalPaymentSource)(nil)

func NewLocalPaymentSource(generator interface{ Generate() dto.PaymentDTO }) *LocalPaymentSource {
	return &LocalPaymentSource{generator: generator}
}

func (s *LocalPaymentSource) FetchPayment(ctx context.Context) (dto.PaymentDTO, error) {
	if err := ctx.Err(); err != nil {
		return dto.PaymentDTO{}, err
	}
	return s.generator.Generate(), nil
}
