package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BookingService manages the booking register.
type BookingService interface {
	CreateBooking(ctx context.Context, input BookingInput) (*BookingRecord, error)
	GetBooking(ctx context.Context, id int) (*BookingRecord, error)
	GetBookings(ctx context.Context, fromDate, toDate string) ([]BookingRecord, error)
	UpdateBooking(ctx context.Context, id int, input BookingInput) (*BookingRecord, error)
	AddPayment(ctx context.Context, id int, entry PaymentEntry) (*BookingRecord, error)
	RemovePayment(ctx context.Context, id int, index int) (*BookingRecord, error)
}

type BookingInput struct {
	RecordDate    string
	PartyID       int
	FromLocation  string
	ToLocation    string
	Freight       decimal.Decimal
	OtherExpenses decimal.Decimal
	Advances      PaymentLedger
}

type bookingService struct {
	pool *pgxpool.Pool
}

func NewBookingService(pool *pgxpool.Pool) BookingService {
	return &bookingService{pool: pool}
}

const bookingColumns = `id, gr_no, record_date::text, party_id, from_location, to_location,
	freight, other_expenses, advances, advance, balance, total_balance, status, created_at, updated_at`

func (s *bookingService) CreateBooking(ctx context.Context, input BookingInput) (*BookingRecord, error) {
	if input.RecordDate == "" {
		return nil, errors.New("booking must have a date")
	}
	if input.PartyID == 0 {
		return nil, errors.New("booking must reference a party")
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

	grNo, err := NextDocumentNumber(ctx, tx, DocTypeBooking, FinancialYear(input.RecordDate))
	if err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO booking_records (gr_no, record_date, party_id, from_location, to_location,
		                             freight, other_expenses, advances, advance, balance, total_balance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		grNo, input.RecordDate, input.PartyID, input.FromLocation, input.ToLocation,
		input.Freight, input.OtherExpenses, rawAdvances, input.Advances.Total(),
		derived.Balance, derived.TotalBalance,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}
	return s.GetBooking(ctx, id)
}

func (s *bookingService) GetBooking(ctx context.Context, id int) (*BookingRecord, error) {
	b, err := scanBooking(s.pool.QueryRow(ctx,
		"SELECT "+bookingColumns+" FROM booking_records WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

func (s *bookingService) GetBookings(ctx context.Context, fromDate, toDate string) ([]BookingRecord, error) {
	q := "SELECT " + bookingColumns + " FROM booking_records WHERE 1=1"
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
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []BookingRecord
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (s *bookingService) UpdateBooking(ctx context.Context, id int, input BookingInput) (*BookingRecord, error) {
	derived := Recompute(input.Freight, input.Advances.Total(), input.OtherExpenses)
	rawAdvances, err := marshalLedger(input.Advances)
	if err != nil {
		return nil, err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE booking_records
		SET record_date = $2, party_id = $3, from_location = $4, to_location = $5,
		    freight = $6, other_expenses = $7, advances = $8, advance = $9,
		    balance = $10, total_balance = $11, updated_at = NOW()
		WHERE id = $1`,
		id, input.RecordDate, input.PartyID, input.FromLocation, input.ToLocation,
		input.Freight, input.OtherExpenses, rawAdvances, input.Advances.Total(),
		derived.Balance, derived.TotalBalance,
	)
	if err != nil {
		return nil, fmt.Errorf("update booking %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return s.GetBooking(ctx, id)
}

func (s *bookingService) AddPayment(ctx context.Context, id int, entry PaymentEntry) (*BookingRecord, error) {
	_, _, err := mutateLedger(ctx, s.pool, "booking_records", id, func(l PaymentLedger) (PaymentLedger, error) {
		return l.Add(entry)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBooking(ctx, id)
}

func (s *bookingService) RemovePayment(ctx context.Context, id int, index int) (*BookingRecord, error) {
	_, _, err := mutateLedger(ctx, s.pool, "booking_records", id, func(l PaymentLedger) (PaymentLedger, error) {
		return l.Remove(index), nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetBooking(ctx, id)
}

func scanBooking(row pgx.Row) (*BookingRecord, error) {
	b := &BookingRecord{}
	var rawAdvances []byte
	err := row.Scan(
		&b.ID, &b.GRNo, &b.RecordDate, &b.PartyID, &b.FromLocation, &b.ToLocation,
		&b.Freight, &b.OtherExpenses, &rawAdvances, &b.Advance, &b.Balance,
		&b.TotalBalance, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Advances = ReconcileLegacyAdvances(rawAdvances, b.Advance, b.RecordDate)
	b.Advance = b.Advances.Total()
	derived := Recompute(b.Freight, b.Advance, b.OtherExpenses)
	b.Balance = derived.Balance
	b.TotalBalance = derived.TotalBalance
	return b, nil
}
