package core_test

import (
	"errors"
	"testing"

	"freight-office/internal/core"

	"github.com/shopspring/decimal"
)

func TestPaymentLedger_Add(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		expectErr bool
	}{
		{"positive amount accepted", "500", false},
		{"one paisa accepted", "0.01", false},
		{"zero rejected", "0", true},
		{"negative rejected", "-5", true},
		{"missing amount rejected", "", true}, // ParseAmount coerces "" to zero
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := core.PaymentLedger{{Amount: dec("100"), Date: "2024-01-01"}}
			entry := core.PaymentEntry{Amount: core.ParseAmount(tt.amount), Date: "2024-02-01"}

			got, err := ledger.Add(entry)
			if tt.expectErr {
				if !errors.Is(err, core.ErrInvalidPaymentAmount) {
					t.Fatalf("expected ErrInvalidPaymentAmount, got %v", err)
				}
				if len(got) != 1 {
					t.Errorf("rejected add must leave ledger unmodified, got %d entries", len(got))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(got))
			}
			// Insertion order, no re-sorting by date.
			if got[1].Date != "2024-02-01" {
				t.Errorf("new entry must be appended at the end")
			}
		})
	}
}

func TestPaymentLedger_Remove(t *testing.T) {
	ledger := core.PaymentLedger{
		{Amount: dec("100"), Date: "2024-01-01"},
		{Amount: dec("200"), Date: "2024-01-15"},
	}

	got := ledger.Remove(0)
	if len(got) != 1 || !got[0].Amount.Equal(dec("200")) {
		t.Errorf("Remove(0) = %+v, want single 200 entry", got)
	}

	// Out-of-range removal is a no-op, not a panic or error.
	for _, idx := range []int{-1, 2, 99} {
		got := ledger.Remove(idx)
		if len(got) != 2 {
			t.Errorf("Remove(%d) changed ledger length to %d, want 2", idx, len(got))
		}
	}
}

func TestPaymentLedger_Total(t *testing.T) {
	if got := (core.PaymentLedger{}).Total(); !got.IsZero() {
		t.Errorf("empty ledger total = %s, want 0", got)
	}

	ledger := core.PaymentLedger{
		{Amount: dec("100.25")},
		{Amount: dec("899.75")},
		{Amount: dec("1000")},
	}
	if got := ledger.Total(); !got.Equal(dec("2000")) {
		t.Errorf("Total = %s, want 2000", got)
	}
}

func TestReconcileLegacyAdvances(t *testing.T) {
	t.Run("legacy scalar advance upgrades to single entry", func(t *testing.T) {
		ledger := core.ReconcileLegacyAdvances(nil, dec("500"), "2024-01-01")
		if len(ledger) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(ledger))
		}
		e := ledger[0]
		if !e.Amount.Equal(dec("500")) || e.Date != "2024-01-01" || e.Notes != "Legacy Advance" {
			t.Errorf("unexpected reconciled entry: %+v", e)
		}
	})

	t.Run("existing ledger returned unchanged", func(t *testing.T) {
		raw := []byte(`[{"amount":100,"date":"2024-03-01"},{"amount":"250.50","date":"2024-03-05","notes":"second"}]`)
		ledger := core.ReconcileLegacyAdvances(raw, dec("999"), "2024-01-01")
		if len(ledger) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(ledger))
		}
		if !ledger[0].Amount.Equal(dec("100")) || !ledger[1].Amount.Equal(dec("250.50")) {
			t.Errorf("amounts not preserved: %+v", ledger)
		}
	})

	t.Run("malformed shapes degrade to empty", func(t *testing.T) {
		for _, raw := range []string{`{"amount":100}`, `"advance"`, `42`, `not json`} {
			ledger := core.ReconcileLegacyAdvances([]byte(raw), decimal.Zero, "2024-01-01")
			if len(ledger) != 0 {
				t.Errorf("raw %q: expected empty ledger, got %+v", raw, ledger)
			}
		}
	})

	t.Run("entry with garbage amount coerces to zero", func(t *testing.T) {
		raw := []byte(`[{"amount":"abc","date":"2024-03-01"},{"date":"2024-03-02"}]`)
		ledger := core.ReconcileLegacyAdvances(raw, decimal.Zero, "2024-01-01")
		if len(ledger) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(ledger))
		}
		if !ledger.Total().IsZero() {
			t.Errorf("Total = %s, want 0", ledger.Total())
		}
	})

	t.Run("nothing to reconcile yields empty ledger", func(t *testing.T) {
		ledger := core.ReconcileLegacyAdvances(nil, decimal.Zero, "2024-01-01")
		if len(ledger) != 0 {
			t.Errorf("expected empty ledger, got %+v", ledger)
		}
	})
}
