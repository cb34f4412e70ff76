package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/dto"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"
)

const (
	mockPaymentPath = "/api/mock/payment"

	connectTimeout  = 1 * time.Second
	responseTimeout = 5 * time.Second
)

var ErrMissingMockServiceURL = errors.New("missing MOCK_SERVICE_URL")

// HTTPPaymentSource fetches candidate payments from the remote mock payment
// service. Network and timeout failures come back as temporary upstream
// errors so the pipeline retries them; malformed payloads and unexpected
// statuses do not.

type HTTPPaymentSource struct {
	baseURL string
	client  *http.Client
}

var _ interfaces.IPaymentSource = (*HTTPPaymentSource)(nil)

func NewHTTPPaymentSource(baseURL string) (*HTTPPaymentSource, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrMissingMockServiceURL
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		// Compression and keep-alive stay on (the Transport defaults);
		// only the connect timeout is tightened.
		MaxIdleConnsPerHost: 10,
	}

	log.Printf("[payment][source] mock payment source initialized base_url=%s", baseURL)
	return &HTTPPaymentSource{
		baseURL: baseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   responseTimeout,
		},
	}, nil
}

func (s *HTTPPaymentSource) FetchPayment(ctx context.Context) (dto.PaymentDTO, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+mockPaymentPath, nil)
	if err != nil {
		return dto.PaymentDTO{}, &interfaces.UpstreamError{Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return dto.PaymentDTO{}, &interfaces.UpstreamError{Err: err, Temporary: isTemporaryNetError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d from mock payment service", resp.StatusCode)
		// 5xx from the upstream is worth another attempt; 4xx is not.
		return dto.PaymentDTO{}, &interfaces.UpstreamError{Err: err, Temporary: resp.StatusCode >= 500}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dto.PaymentDTO{}, &interfaces.UpstreamError{Err: err, Temporary: true}
	}

	var payload dto.PaymentDTO
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[payment][source] error parsing payment payload err=%v", err)
		return dto.PaymentDTO{}, &interfaces.UpstreamError{Err: err}
	}
	return payload, nil
}

func isTemporaryNetError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
