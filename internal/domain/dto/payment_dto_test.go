package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateTimeJSON(t *testing.T) {
	t.Run("zero value marshals as null", func(t *testing.T) {
		b, err := json.Marshal(DateTime{})
		if err != nil || string(b) != "null" {
			t.Fatalf("expected null, got %s err=%v", b, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		in := DateTime{Time: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)}
		b, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != `"2025-01-02 15:04:05"` {
			t.Fatalf("unexpected wire form %s", b)
		}

		var out DateTime
		if err := json.Unmarshal(b, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !out.Equal(in.Time) {
			t.Fatalf("round trip changed value: %v vs %v", out.Time, in.Time)
		}
	})

	t.Run("null unmarshals to zero", func(t *testing.T) {
		var out DateTime
		if err := json.Unmarshal([]byte("null"), &out); err != nil {
			t.Fatalf("unmarshal null: %v", err)
		}
		if !out.IsZero() {
			t.Fatalf("expected zero time, got %v", out.Time)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		var out DateTime
		if err := json.Unmarshal([]byte(`"not-a-date"`), &out); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}

func TestPaymentDTO_AbsentAmount(t *testing.T) {
	var p PaymentDTO
	if err := json.Unmarshal([]byte(`{"currency":"USD"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Amount != nil {
		t.Fatalf("absent amount must stay nil, got %v", p.Amount)
	}

	if err := json.Unmarshal([]byte(`{"amount":0}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Amount == nil || !p.Amount.Equal(decimal.Zero) {
		t.Fatalf("explicit zero must survive, got %v", p.Amount)
	}
}
