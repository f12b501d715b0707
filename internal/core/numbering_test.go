package core_test

import (
	"context"
	"testing"

	"freight-office/internal/core"
)

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-04-01", 2024},
		{"2024-03-31", 2023},
		{"2024-12-15", 2024},
		{"2025-01-01", 2024},
		{"2023-06-10", 2023},
	}
	for _, tt := range tests {
		if got := core.FinancialYear(tt.date); got != tt.want {
			t.Errorf("FinancialYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestNextDocumentNumber_SeparateSequences(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	alloc := func(typeCode string, year int) string {
		tx, err := pool.Begin(ctx)
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		defer tx.Rollback(ctx)

		no, err := core.NextDocumentNumber(ctx, tx, typeCode, year)
		if err != nil {
			t.Fatalf("NextDocumentNumber(%s, %d): %v", typeCode, year, err)
		}
		if err := tx.Commit(ctx); err != nil {
			t.Fatalf("commit: %v", err)
		}
		return no
	}

	// Each type and each financial year counts independently.
	if got := alloc(core.DocTypeLorryReceipt, 2024); got != "LR-2024-00001" {
		t.Errorf("got %q, want LR-2024-00001", got)
	}
	if got := alloc(core.DocTypeLorryReceipt, 2024); got != "LR-2024-00002" {
		t.Errorf("got %q, want LR-2024-00002", got)
	}
	if got := alloc(core.DocTypeLorryReceipt, 2025); got != "LR-2025-00001" {
		t.Errorf("got %q, want LR-2025-00001", got)
	}
	if got := alloc(core.DocTypeInvoice, 2024); got != "INV-2024-00001" {
		t.Errorf("got %q, want INV-2024-00001", got)
	}
}

func TestNextDocumentNumber_AbortedTxBurnsNothing(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := core.NextDocumentNumber(ctx, tx, core.DocTypeBooking, 2024); err != nil {
		t.Fatalf("NextDocumentNumber: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	tx, err = pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)
	no, err := core.NextDocumentNumber(ctx, tx, core.DocTypeBooking, 2024)
	if err != nil {
		t.Fatalf("NextDocumentNumber: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if no != "BN-2024-00001" {
		t.Errorf("rolled-back allocation burned a number: got %q, want BN-2024-00001", no)
	}
}
