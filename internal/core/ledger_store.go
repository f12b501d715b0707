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

// The three register tables (lorry_receipts, vehicle_hirings, booking_records)
// share the same freight-ledger column set, so payment mutations are handled
// once here and reused by each service.

type freightFields struct {
	RecordDate    string
	Freight       decimal.Decimal
	OtherExpenses decimal.Decimal
	Advance       decimal.Decimal
	RawAdvances   []byte
}

// mutateLedger loads a register row, reconciles its payment ledger, applies
// the mutation, recomputes the denormalized fields, and persists everything
// in one transaction. The row is locked for the duration so two concurrent
// edits cannot interleave their recomputations.
func mutateLedger(ctx context.Context, pool *pgxpool.Pool, table string, id int,
	mutate func(PaymentLedger) (PaymentLedger, error)) (PaymentLedger, DerivedBalances, error) {

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, DerivedBalances{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var f freightFields
	err = tx.QueryRow(ctx,
		"SELECT record_date::text, freight, other_expenses, advance, advances FROM "+table+" WHERE id = $1 FOR UPDATE",
		id,
	).Scan(&f.RecordDate, &f.Freight, &f.OtherExpenses, &f.Advance, &f.RawAdvances)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, DerivedBalances{}, fmt.Errorf("%s %d: %w", table, id, ErrNotFound)
		}
		return nil, DerivedBalances{}, fmt.Errorf("load %s %d: %w", table, id, err)
	}

	ledger := ReconcileLegacyAdvances(f.RawAdvances, f.Advance, f.RecordDate)
	ledger, err = mutate(ledger)
	if err != nil {
		return nil, DerivedBalances{}, err
	}

	derived := Recompute(f.Freight, ledger.Total(), f.OtherExpenses)
	if err := persistLedger(ctx, tx, table, id, ledger, derived); err != nil {
		return nil, DerivedBalances{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, DerivedBalances{}, fmt.Errorf("failed to commit ledger update: %w", err)
	}
	return ledger, derived, nil
}

// persistLedger writes the ledger and its derived fields back to a register row.
func persistLedger(ctx context.Context, tx pgx.Tx, table string, id int, ledger PaymentLedger, derived DerivedBalances) error {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("marshal advances: %w", err)
	}
	_, err = tx.Exec(ctx,
		"UPDATE "+table+" SET advances = $2, advance = $3, balance = $4, total_balance = $5, updated_at = NOW() WHERE id = $1",
		id, raw, ledger.Total(), derived.Balance, derived.TotalBalance,
	)
	if err != nil {
		return fmt.Errorf("persist ledger on %s %d: %w", table, id, err)
	}
	return nil
}

// marshalLedger encodes a ledger for an INSERT. An empty ledger still encodes
// as [] so a freshly created record never re-enters the legacy upgrade path.
func marshalLedger(ledger PaymentLedger) ([]byte, error) {
	if ledger == nil {
		ledger = PaymentLedger{}
	}
	raw, err := json.Marshal(ledger)
	if err != nil {
		return nil, fmt.Errorf("marshal advances: %w", err)
	}
	return raw, nil
}

// marshalCharges encodes a charge set for persistence.
func marshalCharges(c ChargeSet) ([]byte, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal charges: %w", err)
	}
	return raw, nil
}
