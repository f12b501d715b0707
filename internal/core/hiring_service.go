package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// HiringService manages the vehicle-hiring register: trucks hired in from
// outside owners, identified by GR number, settled against an advance ledger.
type HiringService interface {
	CreateHiring(ctx context.Context, input HiringInput) (*VehicleHiring, error)
	GetHiring(ctx context.Context, id int) (*VehicleHiring, error)
	GetHirings(ctx context.Context, fromDate, toDate string) ([]VehicleHiring, error)
	UpdateHiring(ctx context.Context, id int, input HiringInput) (*VehicleHiring, error)
	AddPayment(ctx context.Context, id int, entry PaymentEntry) (*VehicleHiring, error)
	RemovePayment(ctx context.Context, id int, index int) (*VehicleHiring, error)
}

type HiringInput struct {
	RecordDate    string
	TruckID       *int
	OwnerID       int
	FromLocation  string
	ToLocation    string
	Freight       decimal.Decimal
	OtherExpenses decimal.Decimal
	Advances      PaymentLedger
}

type hiringService struct {
	pool *pgxpool.Pool
}

func NewHiringService(pool *pgxpool.Pool) HiringService {
	return &hiringService{pool: pool}
}

const hiringColumns = `id, gr_no, record_date::text, truck_id, owner_id, from_location, to_location,
	freight, other_expenses, advances, advance, balance, total_balance, status, created_at, updated_at`

func (s *hiringService) CreateHiring(ctx context.Context, input HiringInput) (*VehicleHiring, error) {
	if input.RecordDate == "" {
		return nil, errors.New("vehicle hiring must have a date")
	}
	if input.OwnerID == 0 {
		return nil, errors.New("vehicle hiring must reference an owner party")
	}

	derived := Recompute(input.Freight, input.Advances.Total(), input.OtherExpenses)
	rawAdvances, err := marshalLedger(input.Advances)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	grNo, err := NextDocumentNumber(ctx, tx, DocTypeVehicleHiring, FinancialYear(input.RecordDate))
	if err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO vehicle_hirings (gr_no, record_date, truck_id, owner_id, from_location,
		                             to_location, freight, other_expenses, advances, advance,
		                             balance, total_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		grNo, input.RecordDate, input.TruckID, input.OwnerID, input.FromLocation,
		input.ToLocation, input.Freight, input.OtherExpenses, rawAdvances,
		input.Advances.Total(), derived.Balance, derived.TotalBalance,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create vehicle hiring: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit vehicle hiring: %w", err)
	}
	return s.GetHiring(ctx, id)
}

func (s *hiringService) GetHiring(ctx context.Context, id int) (*VehicleHiring, error) {
	h, err := scanHiring(s.pool.QueryRow(ctx,
		"SELECT "+hiringColumns+" FROM vehicle_hirings WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vehicle hiring %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get vehicle hiring %d: %w", id, err)
	}
	return h, nil
}

func (s *hiringService) GetHirings(ctx context.Context, fromDate, toDate string) ([]VehicleHiring, error) {
	q := "SELECT " + hiringColumns + " FROM vehicle_hirings WHERE 1=1"
	var args []any
	if fromDate != "" {
		args = append(args, fromDate)
		q += fmt.Sprintf(" AND record_date >= $%d::date", len(args))
	}
	if toDate != "" {
		args = append(args, toDate)
		q += fmt.Sprintf(" AND record_date <= $%d::date", len(args))
	}
	q += " ORDER BY record_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get vehicle hirings: %w", err)
	}
	defer rows.Close()

	var hirings []VehicleHiring
	for rows.Next() {
		h, err := scanHiring(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle hiring: %w", err)
		}
		hirings = append(hirings, *h)
	}
	return hirings, rows.Err()
}

func (s *hiringService) UpdateHiring(ctx context.Context, id int, input HiringInput) (*VehicleHiring, error) {
	derived := Recompute(input.Freight, input.Advances.Total(), input.OtherExpenses)
	rawAdvances, err := marshalLedger(input.Advances)
	if err != nil {
		return nil, err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE vehicle_hirings
		SET record_date = $2, truck_id = $3, owner_id = $4, from_location = $5,
		    to_location = $6, freight = $7, other_expenses = $8, advances = $9,
		    advance = $10, balance = $11, total_balance = $12, updated_at = NOW()
		WHERE id = $1`,
		id, input.RecordDate, input.TruckID, input.OwnerID, input.FromLocation,
		input.ToLocation, input.Freight, input.OtherExpenses, rawAdvances,
		input.Advances.Total(), derived.Balance, derived.TotalBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("update vehicle hiring %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("vehicle hiring %d: %w", id, ErrNotFound)
	}
	return s.GetHiring(ctx, id)
}

func (s *hiringService) AddPayment(ctx context.Context, id int, entry PaymentEntry) (*VehicleHiring, error) {
	_, _, err := mutateLedger(ctx, s.pool, "vehicle_hirings", id, func(l PaymentLedger) (PaymentLedger, error) {
		return l.Add(entry)
	})
	if err != nil {
		return nil, err
	}
	return s.GetHiring(ctx, id)
}

func (s *hiringService) RemovePayment(ctx context.Context, id int, index int) (*VehicleHiring, error) {
	_, _, err := mutateLedger(ctx, s.pool, "vehicle_hirings", id, func(l PaymentLedger) (PaymentLedger, error) {
		return l.Remove(index), nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetHiring(ctx, id)
}

func scanHiring(row pgx.Row) (*VehicleHiring, error) {
	h := &VehicleHiring{}
	var rawAdvances []byte
	err := row.Scan(
		&h.ID, &h.GRNo, &h.RecordDate, &h.TruckID, &h.OwnerID, &h.FromLocation,
		&h.ToLocation, &h.Freight, &h.OtherExpenses, &rawAdvances, &h.Advance,
		&h.Balance, &h.TotalBalance, &h.Status, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	h.Advances = ReconcileLegacyAdvances(rawAdvances, h.Advance, h.RecordDate)
	h.Advance = h.Advances.Total()
	derived := Recompute(h.Freight, h.Advance, h.OtherExpenses)
	h.Balance = derived.Balance
	h.TotalBalance = derived.TotalBalance
	return h, nil
}
