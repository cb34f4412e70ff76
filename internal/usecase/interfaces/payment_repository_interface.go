package interfaces

import (
	"context"
	"errors"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Save inserts when the record is marked new and updates otherwise. The
// insert path enforces transaction-id uniqueness: a racing duplicate must
// fail with a conflict-kind StorageError, never silently overwrite.

type IPaymentRepository interface {
	Save(ctx context.Context, p entities.Payment) (entities.Payment, error)
	FindByID(ctx context.Context, id string) (entities.Payment, error)
	FindByStatus(ctx context.Context, status entities.PaymentStatus) ([]entities.Payment, error)
	FindByPayerEmail(ctx context.Context, email string) ([]entities.Payment, error)
	FindLatest(ctx context.Context, limit int) ([]entities.Payment, error)
	FindAll(ctx context.Context) ([]entities.Payment, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
}

// StorageErrorKind classifies repository failures so the caller never has to
// inspect driver-specific error types.

type StorageErrorKind int

const (
	// StorageFatal covers malformed data and constraint violations other
	// than the transaction-id uniqueness race. Not retried.
	StorageFatal StorageErrorKind = iota
	// StorageTransient covers throttling, lock contention and temporary
	// unavailability. Safe to retry.
	StorageTransient
	// StorageConflict is the transaction-id uniqueness violation raised when
	// two invocations race on the same dedup key. Not retried; the caller
	// treats it as an idempotent skip.
	StorageConflict
)

// StorageError wraps a repository failure with its classification.

type StorageError struct {
	Kind StorageErrorKind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(kind StorageErrorKind, op string, err error) *StorageError {
	return &StorageError{Kind: kind, Op: op, Err: err}
}

// IsTransientStorage reports whether err carries the transient kind.
func IsTransientStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == StorageTransient
}

// IsStorageConflict reports whether err is the uniqueness-violation kind.
func IsStorageConflict(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == StorageConflict
}
