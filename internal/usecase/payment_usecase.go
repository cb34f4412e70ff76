package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/dto"
	"github.com/TenaciousFoxy/payment-history-service/internal/domain/entities"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidPaymentID  = errors.New("invalid payment id")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidStatus     = errors.New("invalid payment status")
	ErrInvalidPayerEmail = errors.New("invalid payer email")
)

const (
	// fetchAndSaveTimeout bounds one full invocation including all retries.
	fetchAndSaveTimeout = 5 * time.Second

	saveMaxRetries  = 3
	saveBaseDelay   = 100 * time.Millisecond
	saveBackoffMult = 2.0

	defaultDescription = "Mock payment"
	defaultPayerEmail  = "unknown@example.com"
	defaultName        = "Unknown"
)

// IPaymentUseCase encapsulates the fetch/dedup/persist pipeline and the
// read-only accessors over stored payments.

type IPaymentUseCase interface {
	FetchAndSave(ctx context.Context) (entities.Payment, error)
	GetLatest(ctx context.Context, limit int) ([]entities.Payment, error)
	GetAll(ctx context.Context) ([]entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByStatus(ctx context.Context, status string) ([]entities.Payment, error)
	GetByPayerEmail(ctx context.Context, email string) ([]entities.Payment, error)
}

type PaymentUseCase struct {
	repo    interfaces.IPaymentRepository
	source  interfaces.IPaymentSource
	metrics interfaces.IPaymentMetrics
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(repo interfaces.IPaymentRepository, source interfaces.IPaymentSource, metrics interfaces.IPaymentMetrics) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, source: source, metrics: metrics}
}

// FetchAndSave fetches one candidate payment from the source, skips it when
// its transaction id is already stored, and otherwise persists it with
// bounded retry on transient storage failures.
//
// A dedup hit and a concurrent-save uniqueness conflict both resolve to a
// no-op success: the converted candidate is returned with its new-flag still
// set and no error. Transient failures are retried up to 3 extra attempts
// with doubling backoff from 100ms; fatal failures and exhausted retries
// surface the last error.
func (u *PaymentUseCase) FetchAndSave(ctx context.Context) (entities.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchAndSaveTimeout)
	defer cancel()

	if u.source == nil {
		log.Printf("[payment][usecase] payment source not configured")
		return entities.Payment{}, errors.New("payment source not configured")
	}
	if u.repo == nil {
		log.Printf("[payment][usecase] payment repository not configured")
		return entities.Payment{}, errors.New("payment repository not configured")
	}

	candidate, err := u.fetchWithRetry(ctx)
	if err != nil {
		log.Printf("[payment][usecase] fetch failed err=%v", err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] fetched candidate transaction_id=%s", candidate.TransactionID)
	if u.metrics != nil {
		u.metrics.IncrementGenerated()
	}

	payment := convertToEntity(candidate)

	exists, err := u.repo.ExistsByTransactionID(ctx, payment.TransactionID)
	if err != nil {
		log.Printf("[payment][usecase] dedup check failed transaction_id=%s err=%v", payment.TransactionID, err)
		return entities.Payment{}, err
	}
	if exists {
		log.Printf("[payment][usecase] payment with transaction_id=%s already exists, skipping", payment.TransactionID)
		return payment, nil
	}

	saved, err := u.saveWithRetry(ctx, payment)
	if err != nil {
		if interfaces.IsStorageConflict(err) {
			// A concurrent invocation won the race on this transaction id.
			log.Printf("[payment][usecase] duplicate transaction_id=%s detected on save, skipping", payment.TransactionID)
			return payment, nil
		}
		log.Printf("[payment][usecase] save failed after retries transaction_id=%s err=%v", payment.TransactionID, err)
		return entities.Payment{}, err
	}

	saved.MarkAsNotNew()
	log.Printf("[payment][usecase] payment saved transaction_id=%s id=%s", saved.TransactionID, saved.ID)
	if u.metrics != nil {
		u.metrics.IncrementSaved()
	}
	return saved, nil
}

func (u *PaymentUseCase) fetchWithRetry(ctx context.Context) (dto.PaymentDTO, error) {
	var candidate dto.PaymentDTO
	policy := retryPolicy{
		MaxRetries: saveMaxRetries,
		BaseDelay:  saveBaseDelay,
		Multiplier: saveBackoffMult,
		Retryable:  interfaces.IsTemporaryUpstream,
	}
	err := policy.Do(ctx, "fetch", func(ctx context.Context) error {
		var ferr error
		candidate, ferr = u.source.FetchPayment(ctx)
		return ferr
	})
	return candidate, err
}

func (u *PaymentUseCase) saveWithRetry(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	var saved entities.Payment
	policy := retryPolicy{
		MaxRetries: saveMaxRetries,
		BaseDelay:  saveBaseDelay,
		Multiplier: saveBackoffMult,
		Retryable:  isRetryableStorageError,
	}
	err := policy.Do(ctx, "save", func(ctx context.Context) error {
		var serr error
		saved, serr = u.repo.Save(ctx, p)
		return serr
	})
	return saved, err
}

// isRetryableStorageError prefers the structured kind from the repository and
// falls back to matching the failure text for stores that return plain errors.
func isRetryableStorageError(err error) bool {
	if err == nil {
		return false
	}
	if interfaces.IsStorageConflict(err) {
		return false
	}
	var se *interfaces.StorageError
	if errors.As(err, &se) {
		return se.Kind == interfaces.StorageTransient
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "lock")
}

// convertToEntity maps the upstream payload into the canonical record,
// filling every absent field with its default, and marks the result new.
func convertToEntity(d dto.PaymentDTO) entities.Payment {
	p := entities.Payment{
		Amount:           decimal.Zero,
		Currency:         entities.CurrencyRUB,
		Description:      defaultDescription,
		Status:           entities.PaymentStatusPending,
		PayerName:        defaultName,
		PayerEmail:       defaultPayerEmail,
		RecipientName:    defaultName,
		RecipientAccount: d.RecipientAccount,
		TransactionID:    d.TransactionID,
		CreatedAt:        d.CreatedAt.Time,
		UpdatedAt:        d.UpdatedAt.Time,
	}

	if id, err := uuid.Parse(d.ID); err == nil {
		p.ID = id
	}
	if d.Amount != nil {
		p.Amount = *d.Amount
	}
	if c := entities.Currency(d.Currency); entities.ValidCurrency(c) {
		p.Currency = c
	}
	if s := entities.PaymentStatus(d.Status); entities.ValidStatus(s) {
		p.Status = s
	}
	if d.Description != "" {
		p.Description = d.Description
	}
	if d.PayerName != "" {
		p.PayerName = d.PayerName
	}
	if d.PayerEmail != "" {
		p.PayerEmail = d.PayerEmail
	}
	if d.RecipientName != "" {
		p.RecipientName = d.RecipientName
	}
	if strings.TrimSpace(p.TransactionID) == "" {
		// The random suffix keeps two synthesized ids in the same
		// millisecond from colliding.
		p.TransactionID = fmt.Sprintf("TXN%d%d", time.Now().UnixMilli(), rand.Intn(1000))
	}

	p.MarkAsNew()
	return p
}

func (u *PaymentUseCase) GetLatest(ctx context.Context, limit int) ([]entities.Payment, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	log.Printf("[payment][usecase] fetching latest %d payments", limit)
	return u.repo.FindLatest(ctx, limit)
}

func (u *PaymentUseCase) GetAll(ctx context.Context) ([]entities.Payment, error) {
	log.Printf("[payment][usecase] fetching all payments")
	return u.repo.FindAll(ctx)
}

func (u *PaymentUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == uuid.Nil {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *PaymentUseCase) GetByStatus(ctx context.Context, status string) ([]entities.Payment, error) {
	s := entities.PaymentStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !entities.ValidStatus(s) {
		return nil, ErrInvalidStatus
	}
	return u.repo.FindByStatus(ctx, s)
}

func (u *PaymentUseCase) GetByPayerEmail(ctx context.Context, email string) ([]entities.Payment, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidPayerEmail
	}
	return u.repo.FindByPayerEmail(ctx, email)
}
