package interfaces

import (
	"context"
	"errors"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/dto"
)

// IPaymentSource abstracts where candidate payments come from: the remote
// mock payment service over HTTP, or the in-process generator when no
// upstream is configured.

type IPaymentSource interface {
	FetchPayment(ctx context.Context) (dto.PaymentDTO, error)
}

// UpstreamError wraps a source failure. Temporary marks network and timeout
// errors that are expected to resolve on retry; anything else (bad payload,
// unexpected HTTP status) aborts the invocation.

type UpstreamError struct {
	Err       error
	Temporary bool
}

func (e *UpstreamError) Error() string {
	return "upstream: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsTemporaryUpstream reports whether err is a retryable source failure.
func IsTemporaryUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Temporary
}
