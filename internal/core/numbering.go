package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Document type codes used for register numbering.
const (
	DocTypeLorryReceipt  = "LR"
	DocTypeVehicleHiring = "GR"
	DocTypeBooking       = "BN"
	DocTypeInvoice       = "INV"
)

// FinancialYear returns the Indian financial year (April–March) a record date
// falls in, labelled by its starting calendar year. Unparseable dates fall
// back to the current financial year.
func FinancialYear(date string) int {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		d = time.Now()
	}
	if d.Month() < time.April {
		return d.Year() - 1
	}
	return d.Year()
}

// NextDocumentNumber allocates the next gapless number for a document type
// within a financial year and formats it as e.g. "LR-2025-00042". Allocation
// runs inside the caller's transaction so an aborted save never burns a number.
func NextDocumentNumber(ctx context.Context, tx pgx.Tx, typeCode string, financialYear int) (string, error) {
	var lastNumber int64
	err := tx.QueryRow(ctx, `
		INSERT INTO document_sequences (type_code, financial_year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (type_code, financial_year)
		DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number
	`, typeCode, financialYear).Scan(&lastNumber)
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s sequence number: %w", typeCode, err)
	}
	return fmt.Sprintf("%s-%d-%05d", typeCode, financialYear, lastNumber), nil
}
