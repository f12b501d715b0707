package core_test

import (
	"context"
	"testing"

	"freight-office/internal/core"
)

func TestInvoiceService_CreateFromReceipts(t *testing.T) {
	pool := setupTestDB(t)
	receipts := core.NewReceiptService(pool)
	invoices := core.NewInvoiceService(pool, receipts)
	ctx := context.Background()

	input := baseReceiptInput()
	input.Freight = dec("600")
	input.Charges = core.ChargeSet{Hamali: dec("100"), DDCharges: dec("50")}
	r1, err := receipts.CreateReceipt(ctx, input)
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	input = baseReceiptInput()
	input.Freight = dec("250")
	input.Charges = core.ChargeSet{}
	r2, err := receipts.CreateReceipt(ctx, input)
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}

	inv, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		BillDate: "2024-07-01",
		PartyID:  2,
		TaxType:  core.TaxIntra,
		Lines: []core.InvoiceLineInput{
			{LRID: &r1.ID},
			{LRID: &r2.ID},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if inv.BillNo != "INV-2024-00001" {
		t.Errorf("BillNo = %q, want INV-2024-00001", inv.BillNo)
	}
	if !inv.TotalAmount.Equal(dec("1000")) {
		t.Errorf("TotalAmount = %s, want 1000", inv.TotalAmount)
	}
	if !inv.CGST.Equal(dec("25")) || !inv.SGST.Equal(dec("25")) || !inv.IGST.IsZero() {
		t.Errorf("intra tax split wrong: cgst=%s sgst=%s igst=%s", inv.CGST, inv.SGST, inv.IGST)
	}
	if !inv.NetAmount.Equal(dec("1050")) {
		t.Errorf("NetAmount = %s, want 1050", inv.NetAmount)
	}
	if len(inv.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(inv.Lines))
	}
	if inv.Lines[0].LRNo != r1.LRNo {
		t.Errorf("line 0 LRNo = %q, want %q", inv.Lines[0].LRNo, r1.LRNo)
	}

	// Raised bills snapshot consignment values: editing the LR afterwards
	// must not change the invoice.
	edit := baseReceiptInput()
	edit.Freight = dec("99999")
	if _, err := receipts.UpdateReceipt(ctx, r1.ID, edit); err != nil {
		t.Fatalf("UpdateReceipt failed: %v", err)
	}
	inv, err = invoices.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	if !inv.Lines[0].Freight.Equal(dec("600")) {
		t.Errorf("invoice line freight changed after LR edit: %s", inv.Lines[0].Freight)
	}
}

func TestInvoiceService_InterStateTax(t *testing.T) {
	pool := setupTestDB(t)
	receipts := core.NewReceiptService(pool)
	invoices := core.NewInvoiceService(pool, receipts)
	ctx := context.Background()

	inv, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		BillDate: "2024-07-01",
		PartyID:  1,
		TaxType:  core.TaxInter,
		Lines: []core.InvoiceLineInput{
			{Line: core.InvoiceLine{LRNo: "MANUAL-1", LRDate: "2024-06-01", Freight: dec("1000")}},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if !inv.IGST.Equal(dec("50")) || !inv.CGST.IsZero() || !inv.SGST.IsZero() {
		t.Errorf("inter tax split wrong: cgst=%s sgst=%s igst=%s", inv.CGST, inv.SGST, inv.IGST)
	}
	if !inv.NetAmount.Equal(dec("1050")) {
		t.Errorf("NetAmount = %s, want 1050", inv.NetAmount)
	}
}

func TestInvoiceService_RejectsUnknownTaxType(t *testing.T) {
	pool := setupTestDB(t)
	receipts := core.NewReceiptService(pool)
	invoices := core.NewInvoiceService(pool, receipts)
	ctx := context.Background()

	_, err := invoices.CreateInvoice(ctx, core.InvoiceInput{
		BillDate: "2024-07-01",
		PartyID:  1,
		TaxType:  core.TaxType("mixed"),
		Lines: []core.InvoiceLineInput{
			{Line: core.InvoiceLine{Freight: dec("100")}},
		},
	})
	if err == nil {
		t.Fatal("expected error for unknown tax type, got nil")
	}
}
