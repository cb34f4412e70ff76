package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/dto"
	"github.com/TenaciousFoxy/payment-history-service/internal/domain/entities"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"
	mock_interfaces "github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func amountPtr(v string) *decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return &d
}

func candidateDTO(transactionID string) dto.PaymentDTO {
	return dto.PaymentDTO{
		ID:            uuid.NewString(),
		Amount:        amountPtr("250.00"),
		Currency:      "USD",
		Status:        "COMPLETED",
		PayerName:     "Ivan Ivanov",
		PayerEmail:    "ivan.ivanov@example.com",
		TransactionID: transactionID,
		CreatedAt:     dto.DateTime{Time: time.Now().UTC()},
		UpdatedAt:     dto.DateTime{Time: time.Now().UTC()},
	}
}

func TestPaymentUseCase_FetchAndSave_Validations(t *testing.T) {
	t.Run("source not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)

		_, err := uc.FetchAndSave(context.Background())
		if err == nil || err.Error() != "payment source not configured" {
			t.Fatalf("expected source not configured error, got %v", err)
		}
	})

	t.Run("repository not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		uc := NewPaymentUseCase(nil, source, nil)

		_, err := uc.FetchAndSave(context.Background())
		if err == nil || err.Error() != "payment repository not configured" {
			t.Fatalf("expected repository not configured error, got %v", err)
		}
	})
}

func TestPaymentUseCase_FetchAndSave_FetchPolicy(t *testing.T) {
	t.Run("fatal upstream error propagates without retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		uc := NewPaymentUseCase(repo, source, nil)

		fatal := &interfaces.UpstreamError{Err: errors.New("bad payload"), Temporary: false}
		source.EXPECT().FetchPayment(gomock.Any()).Return(dto.PaymentDTO{}, fatal).Times(1)

		_, err := uc.FetchAndSave(context.Background())
		if !errors.Is(err, fatal) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	})

	t.Run("temporary upstream error retried then succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
		uc := NewPaymentUseCase(repo, source, metrics)

		temp := &interfaces.UpstreamError{Err: errors.New("connect timeout"), Temporary: true}
		gomock.InOrder(
			source.EXPECT().FetchPayment(gomock.Any()).Return(dto.PaymentDTO{}, temp),
			source.EXPECT().FetchPayment(gomock.Any()).Return(dto.PaymentDTO{}, temp),
			source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN-retry"), nil),
		)
		metrics.EXPECT().IncrementGenerated()
		metrics.EXPECT().IncrementSaved()
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN-retry").Return(false, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil },
		)

		saved, err := uc.FetchAndSave(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.TransactionID != "TXN-retry" {
			t.Fatalf("unexpected payment: %+v", saved)
		}
	})
}

func TestPaymentUseCase_FetchAndSave_Dedup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	source := mock_interfaces.NewMockIPaymentSource(ctrl)
	metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
	uc := NewPaymentUseCase(repo, source, metrics)

	source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN1"), nil)
	metrics.EXPECT().IncrementGenerated()
	repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN1").Return(true, nil)
	// No Save, no IncrementSaved: a dedup hit is a no-op success.

	p, err := uc.FetchAndSave(context.Background())
	if err != nil {
		t.Fatalf("dedup hit must not be an error, got %v", err)
	}
	if p.TransactionID != "TXN1" {
		t.Fatalf("expected candidate back, got %+v", p)
	}
	if !p.IsNew {
		t.Fatalf("skipped candidate must keep its new flag")
	}
}

func TestPaymentUseCase_FetchAndSave_DedupCheckError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	source := mock_interfaces.NewMockIPaymentSource(ctrl)
	metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
	uc := NewPaymentUseCase(repo, source, metrics)

	source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN1"), nil)
	metrics.EXPECT().IncrementGenerated()
	repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN1").Return(false, errors.New("db down"))

	_, err := uc.FetchAndSave(context.Background())
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected db down error, got %v", err)
	}
}

func TestPaymentUseCase_FetchAndSave_RetryBound(t *testing.T) {
	transient := interfaces.NewStorageError(interfaces.StorageTransient, "save", errors.New("lock contention"))

	t.Run("three transient failures then success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
		uc := NewPaymentUseCase(repo, source, metrics)

		source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN-r1"), nil)
		metrics.EXPECT().IncrementGenerated()
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN-r1").Return(false, nil)
		gomock.InOrder(
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Payment{}, transient),
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Payment{}, transient),
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Payment{}, transient),
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p entities.Payment) (entities.Payment, error) { return p, nil },
			),
		)
		metrics.EXPECT().IncrementSaved()

		saved, err := uc.FetchAndSave(context.Background())
		if err != nil {
			t.Fatalf("expected success on 4th attempt, got %v", err)
		}
		if saved.IsNew {
			t.Fatalf("new flag must be cleared after save")
		}
	})

	t.Run("four transient failures exhaust retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
		uc := NewPaymentUseCase(repo, source, metrics)

		source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN-r2"), nil)
		metrics.EXPECT().IncrementGenerated()
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN-r2").Return(false, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Payment{}, transient).Times(4)

		_, err := uc.FetchAndSave(context.Background())
		if !errors.Is(err, transient) {
			t.Fatalf("expected last transient error after exhaustion, got %v", err)
		}
	})

	t.Run("fatal failure aborts immediately", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
		uc := NewPaymentUseCase(repo, source, metrics)

		fatal := interfaces.NewStorageError(interfaces.StorageFatal, "save", errors.New("malformed item"))
		source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN-r3"), nil)
		metrics.EXPECT().IncrementGenerated()
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN-r3").Return(false, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Payment{}, fatal).Times(1)

		_, err := uc.FetchAndSave(context.Background())
		if !errors.Is(err, fatal) {
			t.Fatalf("expected fatal error, got %v", err)
		}
	})

	t.Run("uniqueness conflict resolves to skip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		source := mock_interfaces.NewMockIPaymentSource(ctrl)
		metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
		uc := NewPaymentUseCase(repo, source, metrics)

		conflict := interfaces.NewStorageError(interfaces.StorageConflict, "save", errors.New("marker exists"))
		source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN-race"), nil)
		metrics.EXPECT().IncrementGenerated()
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN-race").Return(false, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Payment{}, conflict).Times(1)

		p, err := uc.FetchAndSave(context.Background())
		if err != nil {
			t.Fatalf("conflict must resolve to a skip, got %v", err)
		}
		if p.TransactionID != "TXN-race" || !p.IsNew {
			t.Fatalf("expected unsaved candidate back, got %+v", p)
		}
	})
}

func TestPaymentUseCase_FetchAndSave_ConvertDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	source := mock_interfaces.NewMockIPaymentSource(ctrl)
	metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
	uc := NewPaymentUseCase(repo, source, metrics)

	source.EXPECT().FetchPayment(gomock.Any()).Return(dto.PaymentDTO{}, nil)
	metrics.EXPECT().IncrementGenerated()
	metrics.EXPECT().IncrementSaved()
	repo.EXPECT().ExistsByTransactionID(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.Payment) (entities.Payment, error) {
			if !p.Amount.Equal(decimal.Zero) {
				t.Fatalf("expected zero amount default, got %s", p.Amount)
			}
			if p.Currency != entities.CurrencyRUB {
				t.Fatalf("expected RUB default, got %s", p.Currency)
			}
			if p.Status != entities.PaymentStatusPending {
				t.Fatalf("expected PENDING default, got %s", p.Status)
			}
			if p.PayerName != "Unknown" || p.RecipientName != "Unknown" {
				t.Fatalf("expected Unknown name defaults, got %+v", p)
			}
			if p.PayerEmail != "unknown@example.com" {
				t.Fatalf("expected email default, got %s", p.PayerEmail)
			}
			if p.Description != "Mock payment" {
				t.Fatalf("expected description default, got %s", p.Description)
			}
			if len(p.TransactionID) < 4 || p.TransactionID[:3] != "TXN" {
				t.Fatalf("expected synthesized transaction id, got %q", p.TransactionID)
			}
			if p.ID == uuid.Nil || p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
				t.Fatalf("expected identity and timestamps filled: %+v", p)
			}
			if !p.IsNew {
				t.Fatalf("converted record must be marked new")
			}
			return p, nil
		},
	)

	if _, err := uc.FetchAndSave(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConvertToEntity_SynthesizedTransactionIDsDiffer(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		p := convertToEntity(dto.PaymentDTO{})
		seen[p.TransactionID] = true
	}
	// Same-millisecond calls rely on the random suffix to stay apart.
	if len(seen) < 8 {
		t.Fatalf("synthesized transaction ids collide too often: %v", seen)
	}
}

func TestPaymentUseCase_Idempotence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
	source := mock_interfaces.NewMockIPaymentSource(ctrl)
	metrics := mock_interfaces.NewMockIPaymentMetrics(ctrl)
	uc := NewPaymentUseCase(repo, source, metrics)

	source.EXPECT().FetchPayment(gomock.Any()).Return(candidateDTO("TXN1"), nil).Times(2)
	metrics.EXPECT().IncrementGenerated().Times(2)
	metrics.EXPECT().IncrementSaved().Times(1)
	gomock.InOrder(
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN1").Return(false, nil),
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Payment) (entities.Payment, error) {
				if p.TransactionID != "TXN1" || !p.Amount.Equal(decimal.RequireFromString("250.00")) {
					t.Fatalf("unexpected payment: %+v", p)
				}
				return p, nil
			},
		),
		repo.EXPECT().ExistsByTransactionID(gomock.Any(), "TXN1").Return(true, nil),
	)

	first, err := uc.FetchAndSave(context.Background())
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if first.IsNew {
		t.Fatalf("first call must clear the new flag")
	}

	second, err := uc.FetchAndSave(context.Background())
	if err != nil {
		t.Fatalf("second call must be a no-op success, got %v", err)
	}
	if second.TransactionID != "TXN1" {
		t.Fatalf("unexpected second result: %+v", second)
	}
}

func TestIsRetryableStorageError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "structured transient", err: interfaces.NewStorageError(interfaces.StorageTransient, "save", errors.New("x")), want: true},
		{name: "structured fatal", err: interfaces.NewStorageError(interfaces.StorageFatal, "save", errors.New("timeout")), want: false},
		{name: "structured conflict", err: interfaces.NewStorageError(interfaces.StorageConflict, "save", errors.New("dup")), want: false},
		{name: "plain timeout text", err: errors.New("read timeout on socket"), want: true},
		{name: "plain connection text", err: errors.New("connection refused"), want: true},
		{name: "plain lock text", err: errors.New("could not acquire lock"), want: true},
		{name: "plain other", err: errors.New("segment corrupted"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryableStorageError(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPaymentUseCase_Getters(t *testing.T) {
	t.Run("GetLatest rejects non-positive limits", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		for _, limit := range []int{0, -1} {
			if _, err := uc.GetLatest(context.Background(), limit); !errors.Is(err, ErrInvalidLimit) {
				t.Fatalf("limit %d: expected ErrInvalidLimit, got %v", limit, err)
			}
		}
	})

	t.Run("GetLatest passes limit through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)
		expected := []entities.Payment{{TransactionID: "TXN-a"}}
		repo.EXPECT().FindLatest(gomock.Any(), 5).Return(expected, nil)

		res, err := uc.GetLatest(context.Background(), 5)
		if err != nil || len(res) != 1 || res[0].TransactionID != "TXN-a" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("GetByID invalid uuid", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		if _, err := uc.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)
		id := uuid.NewString()
		repo.EXPECT().FindByID(gomock.Any(), id).Return(entities.Payment{}, nil)

		if _, err := uc.GetByID(context.Background(), id); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("GetByID success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)
		id := uuid.New()
		repo.EXPECT().FindByID(gomock.Any(), id.String()).Return(entities.Payment{ID: id}, nil)

		res, err := uc.GetByID(context.Background(), " "+id.String()+" ")
		if err != nil || res.ID != id {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})

	t.Run("GetByStatus invalid member", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		if _, err := uc.GetByStatus(context.Background(), "SHIPPED"); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("GetByStatus normalizes case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPaymentRepository(ctrl)
		uc := NewPaymentUseCase(repo, nil, nil)
		repo.EXPECT().FindByStatus(gomock.Any(), entities.PaymentStatusCompleted).Return(nil, nil)

		if _, err := uc.GetByStatus(context.Background(), "completed"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("GetByPayerEmail invalid", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		for _, email := range []string{"", "   ", "no-at-sign"} {
			if _, err := uc.GetByPayerEmail(context.Background(), email); !errors.Is(err, ErrInvalidPayerEmail) {
				t.Fatalf("email %q: expected ErrInvalidPayerEmail, got %v", email, err)
			}
		}
	})
}
