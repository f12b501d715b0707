package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceService builds taxable invoices from consignment line items. Totals
// and the GST split are computed once at creation and stored denormalized;
// lines snapshot the consignment fields so later LR edits do not alter a
// raised bill.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error)
	GetInvoice(ctx context.Context, id int) (*Invoice, error)
	GetInvoices(ctx context.Context, fromDate, toDate string) ([]Invoice, error)
}

// InvoiceInput carries the fields of a new invoice. A line either references
// an existing lorry receipt by ID (its freight, charges and route are
// snapshotted) or carries the snapshot fields directly.
type InvoiceInput struct {
	BillDate string
	PartyID  int
	TaxType  TaxType
	Lines    []InvoiceLineInput
}

type InvoiceLineInput struct {
	LRID *int
	Line InvoiceLine // used when LRID is nil
}

type invoiceService struct {
	pool     *pgxpool.Pool
	receipts ReceiptService
}

func NewInvoiceService(pool *pgxpool.Pool, receipts ReceiptService) InvoiceService {
	return &invoiceService{pool: pool, receipts: receipts}
}

const invoiceColumns = `i.id, i.bill_no, i.bill_date::text, i.party_id, p.name,
	i.tax_type, i.total_amount, i.cgst, i.sgst, i.igst, i.net_amount, i.created_at`

func (s *invoiceService) CreateInvoice(ctx context.Context, input InvoiceInput) (*Invoice, error) {
	if input.BillDate == "" {
		return nil, errors.New("invoice must have a bill date")
	}
	if input.PartyID == 0 {
		return nil, errors.New("invoice must reference a party")
	}
	if !input.TaxType.Valid() {
		return nil, fmt.Errorf("invalid tax type %q: must be %q or %q", input.TaxType, TaxIntra, TaxInter)
	}
	if len(input.Lines) == 0 {
		return nil, errors.New("invoice must have at least one line")
	}

	lines, err := s.resolveLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}
	totals := ComputeInvoiceTotals(lines, input.TaxType)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	billNo, err := NextDocumentNumber(ctx, tx, DocTypeInvoice, FinancialYear(input.BillDate))
	if err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (bill_no, bill_date, party_id, tax_type, total_amount, cgst, sgst, igst, net_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		billNo, input.BillDate, input.PartyID, string(input.TaxType),
		totals.TotalAmount, totals.CGST, totals.SGST, totals.IGST, totals.NetAmount,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	for _, line := range lines {
		rawCharges, err := marshalCharges(line.Charges)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_lines (invoice_id, lr_id, lr_no, lr_date, from_location, to_location, freight, charges)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, line.LRID, line.LRNo, line.LRDate, line.FromLocation, line.ToLocation,
			line.Freight, rawCharges,
		)
		if err != nil {
			return nil, fmt.Errorf("insert invoice line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice: %w", err)
	}
	return s.GetInvoice(ctx, id)
}

// resolveLines turns line inputs into snapshot lines, loading referenced
// lorry receipts for their freight, charges and route.
func (s *invoiceService) resolveLines(ctx context.Context, inputs []InvoiceLineInput) ([]InvoiceLine, error) {
	lines := make([]InvoiceLine, 0, len(inputs))
	for _, in := range inputs {
		if in.LRID == nil {
			lines = append(lines, in.Line)
			continue
		}
		r, err := s.receipts.GetReceipt(ctx, *in.LRID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, InvoiceLine{
			LRID:         &r.ID,
			LRNo:         r.LRNo,
			LRDate:       r.RecordDate,
			FromLocation: r.FromLocation,
			ToLocation:   r.ToLocation,
			Freight:      r.Freight,
			Charges:      r.Charges,
		})
	}
	return lines, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int) (*Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices i JOIN parties p ON p.id = i.party_id WHERE i.id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get invoice %d: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, lr_id, lr_no, lr_date::text, from_location, to_location, freight, charges
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d lines: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line InvoiceLine
		var rawCharges []byte
		if err := rows.Scan(
			&line.ID, &line.InvoiceID, &line.LRID, &line.LRNo, &line.LRDate,
			&line.FromLocation, &line.ToLocation, &line.Freight, &rawCharges,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		if len(rawCharges) > 0 {
			_ = json.Unmarshal(rawCharges, &line.Charges)
		}
		inv.Lines = append(inv.Lines, line)
	}
	return inv, rows.Err()
}

func (s *invoiceService) GetInvoices(ctx context.Context, fromDate, toDate string) ([]Invoice, error) {
	q := "SELECT " + invoiceColumns + " FROM invoices i JOIN parties p ON p.id = i.party_id WHERE 1=1"
	var args []any
	if fromDate != "" {
		args = append(args, fromDate)
		q += fmt.Sprintf(" AND i.bill_date >= $%d::date", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		q += fmt.Sprintf(" AND i.bill_date <= $%d::date", len(args))
	}
	q += " ORDER BY i.bill_date DESC, i.id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	inv := &Invoice{}
	var taxType string
	err := row.Scan(
		&inv.ID, &inv.BillNo, &inv.BillDate, &inv.PartyID, &inv.PartyName,
		&taxType, &inv.TotalAmount, &inv.CGST, &inv.SGST, &inv.IGST,
		&inv.NetAmount, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.TaxType = TaxType(taxType)
	return inv, nil
}
