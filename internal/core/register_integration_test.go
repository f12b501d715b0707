package core_test

import (
	"context"
	"errors"
	"testing"

	"freight-office/internal/core"
)

func TestHiringService_CreateAndSettle(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewHiringService(pool)
	ctx := context.Background()

	truckID := 1
	h, err := svc.CreateHiring(ctx, core.HiringInput{
		RecordDate:    "2024-06-15",
		TruckID:       &truckID,
		OwnerID:       1,
		FromLocation:  "Nagpur",
		ToLocation:    "Mumbai",
		Freight:       dec("20000"),
		OtherExpenses: dec("1200"),
	})
	if err != nil {
		t.Fatalf("CreateHiring failed: %v", err)
	}
	if h.GRNo != "GR-2024-00001" {
		t.Errorf("GRNo = %q, want GR-2024-00001", h.GRNo)
	}
	if !h.Balance.Equal(dec("20000")) || !h.TotalBalance.Equal(dec("21200")) {
		t.Errorf("derived fields wrong: balance=%s total=%s", h.Balance, h.TotalBalance)
	}

	h, err = svc.AddPayment(ctx, h.ID, core.PaymentEntry{Amount: dec("15000"), Date: "2024-06-16", Notes: "RTGS"})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if !h.Balance.Equal(dec("5000")) || !h.TotalBalance.Equal(dec("6200")) {
		t.Errorf("derived fields wrong after payment: balance=%s total=%s", h.Balance, h.TotalBalance)
	}

	if _, err := svc.AddPayment(ctx, h.ID, core.PaymentEntry{Amount: dec("-10")}); !errors.Is(err, core.ErrInvalidPaymentAmount) {
		t.Errorf("expected ErrInvalidPaymentAmount, got %v", err)
	}
}

func TestBookingService_CreateAndPay(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewBookingService(pool)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, core.BookingInput{
		RecordDate:   "2024-06-18",
		PartyID:      2,
		FromLocation: "Pune",
		ToLocation:   "Nagpur",
		Freight:      dec("8000"),
		Advances:     core.PaymentLedger{{Amount: dec("3000"), Date: "2024-06-18"}},
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if b.GRNo != "BN-2024-00001" {
		t.Errorf("GRNo = %q, want BN-2024-00001", b.GRNo)
	}
	if !b.Advance.Equal(dec("3000")) || !b.Balance.Equal(dec("5000")) {
		t.Errorf("derived fields wrong: advance=%s balance=%s", b.Advance, b.Balance)
	}

	b, err = svc.RemovePayment(ctx, b.ID, 0)
	if err != nil {
		t.Fatalf("RemovePayment failed: %v", err)
	}
	if len(b.Advances) != 0 || !b.Balance.Equal(dec("8000")) {
		t.Errorf("ledger not emptied: %d entries, balance=%s", len(b.Advances), b.Balance)
	}
}

func TestRegisters_ShareFinancialYearSequencesIndependently(t *testing.T) {
	pool := setupTestDB(t)
	hirings := core.NewHiringService(pool)
	bookings := core.NewBookingService(pool)
	ctx := context.Background()

	h, err := hirings.CreateHiring(ctx, core.HiringInput{
		RecordDate: "2024-06-15", OwnerID: 1, Freight: dec("1000"),
	})
	if err != nil {
		t.Fatalf("CreateHiring failed: %v", err)
	}
	b, err := bookings.CreateBooking(ctx, core.BookingInput{
		RecordDate: "2024-06-15", PartyID: 1, Freight: dec("1000"),
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	// Hirings and bookings number from separate sequences.
	if h.GRNo != "GR-2024-00001" || b.GRNo != "BN-2024-00001" {
		t.Errorf("sequences leaked between registers: hiring=%q booking=%q", h.GRNo, b.GRNo)
	}
}
