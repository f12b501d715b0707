package core_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"freight-office/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE invoice_lines, invoices, lorry_receipts, vehicle_hirings,
		               booking_records, document_sequences, parties, trucks, users
		RESTART IDENTITY CASCADE;

		INSERT INTO parties (name, gstin, address, phone) VALUES
		('Sharma Traders', '27AABCS1429B1Z1', 'Nagpur', '9800000001'),
		('Verma Steel', '27AABCV9981A1Z8', 'Pune', '9800000002');

		INSERT INTO trucks (truck_no, owner_name, driver_name, driver_phone) VALUES
		('MH31AB1234', 'R. Patil', 'S. Kumar', '9800000003');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

func baseReceiptInput() core.ReceiptInput {
	truckID := 1
	return core.ReceiptInput{
		RecordDate:    "2024-06-10",
		ConsignorID:   1,
		ConsigneeID:   2,
		TruckID:       &truckID,
		FromLocation:  "Nagpur",
		ToLocation:    "Pune",
		Material:      "Steel Coils",
		Weight:        dec("18.5"),
		Freight:       dec("10000"),
		OtherExpenses: dec("500"),
		Charges:       core.ChargeSet{Hamali: dec("150")},
	}
}

func TestReceiptService_CreateRecomputesDerivedFields(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewReceiptService(pool)
	ctx := context.Background()

	input := baseReceiptInput()
	input.Advances = core.PaymentLedger{{Amount: dec("4000"), Date: "2024-06-10", Notes: "cash"}}

	r, err := svc.CreateReceipt(ctx, input)
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	if r.LRNo != "LR-2024-00001" {
		t.Errorf("LRNo = %q, want LR-2024-00001", r.LRNo)
	}
	if !r.Advance.Equal(dec("4000")) {
		t.Errorf("Advance = %s, want 4000", r.Advance)
	}
	if !r.Balance.Equal(dec("6000")) {
		t.Errorf("Balance = %s, want 6000", r.Balance)
	}
	if !r.TotalBalance.Equal(dec("6500")) {
		t.Errorf("TotalBalance = %s, want 6500", r.TotalBalance)
	}

	// Sequence continues within the financial year.
	r2, err := svc.CreateReceipt(ctx, baseReceiptInput())
	if err != nil {
		t.Fatalf("second CreateReceipt failed: %v", err)
	}
	if r2.LRNo != "LR-2024-00002" {
		t.Errorf("second LRNo = %q, want LR-2024-00002", r2.LRNo)
	}
}

func TestReceiptService_PaymentLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewReceiptService(pool)
	ctx := context.Background()

	r, err := svc.CreateReceipt(ctx, baseReceiptInput())
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	r, err = svc.AddPayment(ctx, r.ID, core.PaymentEntry{Amount: dec("3000"), Date: "2024-06-12"})
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	r, err = svc.AddPayment(ctx, r.ID, core.PaymentEntry{Amount: dec("2500"), Date: "2024-06-20", Notes: "NEFT"})
	if err != nil {
		t.Fatalf("second AddPayment failed: %v", err)
	}

	if len(r.Advances) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(r.Advances))
	}
	if !r.Advance.Equal(dec("5500")) || !r.Balance.Equal(dec("4500")) || !r.TotalBalance.Equal(dec("5000")) {
		t.Errorf("derived fields wrong after payments: advance=%s balance=%s total=%s",
			r.Advance, r.Balance, r.TotalBalance)
	}

	// Invalid amounts are rejected and leave the ledger untouched.
	if _, err := svc.AddPayment(ctx, r.ID, core.PaymentEntry{Amount: dec("0"), Date: "2024-06-21"}); !errors.Is(err, core.ErrInvalidPaymentAmount) {
		t.Errorf("expected ErrInvalidPaymentAmount, got %v", err)
	}

	// Out-of-range removal is a no-op.
	r, err = svc.RemovePayment(ctx, r.ID, 99)
	if err != nil {
		t.Fatalf("out-of-range RemovePayment failed: %v", err)
	}
	if len(r.Advances) != 2 {
		t.Errorf("out-of-range removal changed ledger: %d entries", len(r.Advances))
	}

	r, err = svc.RemovePayment(ctx, r.ID, 0)
	if err != nil {
		t.Fatalf("RemovePayment failed: %v", err)
	}
	if len(r.Advances) != 1 || !r.Advance.Equal(dec("2500")) || !r.Balance.Equal(dec("7500")) {
		t.Errorf("derived fields wrong after removal: %+v", r)
	}
}

func TestReceiptService_LegacyAdvanceUpgradedOnRead(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewReceiptService(pool)
	ctx := context.Background()

	// Simulate a record written by the old schema: scalar advance, NULL ledger.
	var id int
	err := pool.QueryRow(ctx, `
		INSERT INTO lorry_receipts (lr_no, record_date, consignor_id, consignee_id,
		                            from_location, to_location, freight, other_expenses,
		                            advances, advance, balance, total_balance)
		VALUES ('LR-OLD-1', '2024-01-01', 1, 2, 'Nagpur', 'Pune', 2000, 0, NULL, 500, 1500, 1500)
		RETURNING id`,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed legacy receipt: %v", err)
	}

	r, err := svc.GetReceipt(ctx, id)
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	if len(r.Advances) != 1 {
		t.Fatalf("expected reconciled single-entry ledger, got %d entries", len(r.Advances))
	}
	e := r.Advances[0]
	if !e.Amount.Equal(dec("500")) || e.Date != "2024-01-01" || e.Notes != "Legacy Advance" {
		t.Errorf("unexpected reconciled entry: %+v", e)
	}
	if !r.Balance.Equal(dec("1500")) {
		t.Errorf("Balance = %s, want 1500", r.Balance)
	}
}

func TestReceiptService_StaleDerivedFieldsRecomputedOnRead(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewReceiptService(pool)
	ctx := context.Background()

	r, err := svc.CreateReceipt(ctx, baseReceiptInput())
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	// Corrupt the persisted cache directly, as an out-of-band edit would.
	if _, err := pool.Exec(ctx,
		"UPDATE lorry_receipts SET balance = 999999, total_balance = 999999 WHERE id = $1", r.ID,
	); err != nil {
		t.Fatalf("failed to corrupt derived fields: %v", err)
	}

	r, err = svc.GetReceipt(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReceipt failed: %v", err)
	}
	if !r.Balance.Equal(dec("10000")) || !r.TotalBalance.Equal(dec("10500")) {
		t.Errorf("stale derived fields not recomputed: balance=%s total=%s", r.Balance, r.TotalBalance)
	}
}
