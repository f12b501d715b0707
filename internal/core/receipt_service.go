package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ReceiptService manages lorry receipts: creation with a generated LR number,
// edits that recompute the denormalized balances, and payment-ledger mutations.
type ReceiptService interface {
	CreateReceipt(ctx context.Context, input ReceiptInput) (*LorryReceipt, error)
	GetReceipt(ctx context.Context, id int) (*LorryReceipt, error)
	GetReceipts(ctx context.Context, filter ReceiptFilter) ([]LorryReceipt, error)
	UpdateReceipt(ctx context.Context, id int, input ReceiptInput) (*LorryReceipt, error)
	AddPayment(ctx context.Context, id int, entry PaymentEntry) (*LorryReceipt, error)
	RemovePayment(ctx context.Context, id int, index int) (*LorryReceipt, error)
	SetPODReceived(ctx context.Context, id int, received bool) error
}

// ReceiptInput carries the raw editable fields of a lorry receipt. Derived
// fields are never part of the input; they are recomputed on every save.
type ReceiptInput struct {
	RecordDate    string
	ConsignorID   int
	ConsigneeID   int
	TruckID       *int
	FromLocation  string
	ToLocation    string
	Material      string
	Weight        decimal.Decimal
	Freight       decimal.Decimal
	OtherExpenses decimal.Decimal
	Charges       ChargeSet
	Advances      PaymentLedger
}

// ReceiptFilter narrows GetReceipts. Zero values mean no constraint.
type ReceiptFilter struct {
	FromDate string
	ToDate   string
	PartyID  int
}

type receiptService struct {
	pool *pgxpool.Pool
}

func NewReceiptService(pool *pgxpool.Pool) ReceiptService {
	return &receiptService{pool: pool}
}

const receiptColumns = `id, lr_no, record_date::text, consignor_id, consignee_id, truck_id,
	from_location, to_location, material, weight, freight, other_expenses, charges,
	advances, advance, balance, total_balance, pod_received, status, created_at, updated_at`

func (s *receiptService) CreateReceipt(ctx context.Context, input ReceiptInput) (*LorryReceipt, error) {
	if input.RecordDate == "" {
		return nil, errors.New("lorry receipt must have a date")
	}
	if input.ConsignorID == 0 || input.ConsigneeID == 0 {
		return nil, errors.New("lorry receipt must reference a consignor and a consignee")
	}

	derived := Recompute(input.Freight, input.Advances.Total(), input.OtherExpenses)
	rawAdvances, err := marshalLedger(input.Advances)
	if err != nil {
		return nil, err
	}
	rawCharges, err := marshalCharges(input.Charges)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lrNo, err := NextDocumentNumber(ctx, tx, DocTypeLorryReceipt, FinancialYear(input.RecordDate))
	if err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO lorry_receipts (lr_no, record_date, consignor_id, consignee_id, truck_id,
		                            from_location, to_location, material, weight, freight,
		                            other_expenses, charges, advances, advance, balance, total_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`,
		lrNo, input.RecordDate, input.ConsignorID, input.ConsigneeID, input.TruckID,
		input.FromLocation, input.ToLocation, input.Material, input.Weight, input.Freight,
		input.OtherExpenses, rawCharges, rawAdvances, input.Advances.Total(),
		derived.Balance, derived.TotalBalance,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create lorry receipt: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit lorry receipt: %w", err)
	}
	return s.GetReceipt(ctx, id)
}

// GetReceipt loads a receipt, upgrades any legacy scalar advance into the
// payment ledger, and recomputes the derived fields from raw inputs; loaded
// derived values are display caches and are never trusted for further math.
func (s *receiptService) GetReceipt(ctx context.Context, id int) (*LorryReceipt, error) {
	r, err := scanReceipt(s.pool.QueryRow(ctx,
		"SELECT "+receiptColumns+" FROM lorry_receipts WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lorry receipt %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get lorry receipt %d: %w", id, err)
	}
	return r, nil
}

func (s *receiptService) GetReceipts(ctx context.Context, filter ReceiptFilter) ([]LorryReceipt, error) {
	q := "SELECT " + receiptColumns + " FROM lorry_receipts WHERE 1=1"
	var args []any
	if filter.FromDate != "" {
		args = append(args, filter.FromDate)
		q += fmt.Sprintf(" AND record_date >= $%d::date", len(args))
	}
	if filter.ToDate != "" {
		args = append(args, filter.ToDate)
		q += fmt.Sprintf(" AND record_date <= $%d::date", len(args))
	}
	if filter.PartyID != 0 {
		args = append(args, filter.PartyID)
		q += fmt.Sprintf(" AND (consignor_id = $%d OR consignee_id = $%d)", len(args), len(args))
	}
	q += " ORDER BY record_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get lorry receipts: %w", err)
	}
	defer rows.Close()

	var receipts []LorryReceipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lorry receipt: %w", err)
		}
		receipts = append(receipts, *r)
	}
	return receipts, rows.Err()
}

func (s *receiptService) UpdateReceipt(ctx context.Context, id int, input ReceiptInput) (*LorryReceipt, error) {
	derived := Recompute(input.Freight, input.Advances.Total(), input.OtherExpenses)
	rawAdvances, err := marshalLedger(input.Advances)
	if err != nil {
		return nil, err
	}
	rawCharges, err := marshalCharges(input.Charges)
	if err != nil {
		return nil, err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE lorry_receipts
		SET record_date = $2, consignor_id = $3, consignee_id = $4, truck_id = $5,
		    from_location = $6, to_location = $7, material = $8, weight = $9,
		    freight = $10, other_expenses = $11, charges = $12, advances = $13,
		    advance = $14, balance = $15, total_balance = $16, updated_at = NOW()
		WHERE id = $1`,
		id, input.RecordDate, input.ConsignorID, input.ConsigneeID, input.TruckID,
		input.FromLocation, input.ToLocation, input.Material, input.Weight,
		input.Freight, input.OtherExpenses, rawCharges, rawAdvances,
		input.Advances.Total(), derived.Balance, derived.TotalBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("update lorry receipt %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("lorry receipt %d: %w", id, ErrNotFound)
	}
	return s.GetReceipt(ctx, id)
}

func (s *receiptService) AddPayment(ctx context.Context, id int, entry PaymentEntry) (*LorryReceipt, error) {
	_, _, err := mutateLedger(ctx, s.pool, "lorry_receipts", id, func(l PaymentLedger) (PaymentLedger, error) {
		return l.Add(entry)
	})
	if err != nil {
		return nil, err
	}
	return s.GetReceipt(ctx, id)
}

func (s *receiptService) RemovePayment(ctx context.Context, id int, index int) (*LorryReceipt, error) {
	_, _, err := mutateLedger(ctx, s.pool, "lorry_receipts", id, func(l PaymentLedger) (PaymentLedger, error) {
		return l.Remove(index), nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetReceipt(ctx, id)
}

func (s *receiptService) SetPODReceived(ctx context.Context, id int, received bool) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE lorry_receipts SET pod_received = $2, updated_at = NOW() WHERE id = $1",
		id, received,
	)
	if err != nil {
		return fmt.Errorf("set POD on lorry receipt %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lorry receipt %d: %w", id, ErrNotFound)
	}
	return nil
}

// scanReceipt reads one row and normalizes it: the JSONB ledger and charge set
// decode forgivingly, and the derived fields are recomputed from raw inputs.
func scanReceipt(row pgx.Row) (*LorryReceipt, error) {
	r := &LorryReceipt{}
	var rawCharges, rawAdvances []byte
	err := row.Scan(
		&r.ID, &r.LRNo, &r.RecordDate, &r.ConsignorID, &r.ConsigneeID, &r.TruckID,
		&r.FromLocation, &r.ToLocation, &r.Material, &r.Weight, &r.Freight,
		&r.OtherExpenses, &rawCharges, &rawAdvances, &r.Advance, &r.Balance,
		&r.TotalBalance, &r.PODReceived, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(rawCharges) > 0 {
		// Malformed charge data degrades to an empty charge set.
		_ = json.Unmarshal(rawCharges, &r.Charges)
	}
	r.Advances = ReconcileLegacyAdvances(rawAdvances, r.Advance, r.RecordDate)

	r.Advance = r.Advances.Total()
	derived := Recompute(r.Freight, r.Advance, r.OtherExpenses)
	r.Balance = derived.Balance
	r.TotalBalance = derived.TotalBalance
	return r, nil
}
