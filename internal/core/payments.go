package core

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidPaymentAmount is returned when a payment entry is submitted with a
// missing, unparseable, or non-positive amount. The ledger is left unmodified.
var ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

// PaymentEntry is a single discrete advance payment against a freight record.
// Entries are immutable once added; the only mutation is removal.
type PaymentEntry struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Notes  string          `json:"notes,omitempty"`
}

// UnmarshalJSON decodes a persisted entry, coercing a missing or malformed
// amount to zero rather than rejecting the record. Older schema versions wrote
// amounts both as JSON numbers and as quoted strings; both are accepted.
func (e *PaymentEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Amount json.RawMessage `json:"amount"`
		Date   string          `json:"date"`
		Notes  string          `json:"notes"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Amount = decodeAmount(raw.Amount)
	e.Date = raw.Date
	e.Notes = raw.Notes
	return nil
}

// decodeAmount parses a raw JSON value into a decimal, yielding zero for
// anything absent or unparseable (the silent-default policy shared by every
// derivation in this package).
func decodeAmount(raw json.RawMessage) decimal.Decimal {
	if len(raw) == 0 {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero
	}
	return d
}

// PaymentLedger is the ordered list of advance payments belonging to one
// freight record. Order is insertion order; entries are never re-sorted by date.
type PaymentLedger []PaymentEntry

// Add validates the entry and returns a new ledger with it appended. A
// non-positive amount returns ErrInvalidPaymentAmount and the original ledger.
func (l PaymentLedger) Add(e PaymentEntry) (PaymentLedger, error) {
	if !e.Amount.IsPositive() {
		return l, ErrInvalidPaymentAmount
	}
	out := make(PaymentLedger, len(l), len(l)+1)
	copy(out, l)
	return append(out, e), nil
}

// Remove returns a new ledger without the entry at index. An out-of-range
// index is a no-op removal, not an error.
func (l PaymentLedger) Remove(index int) PaymentLedger {
	out := make(PaymentLedger, 0, len(l))
	for i, e := range l {
		if i == index {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Total folds the ledger into the advance total fed to Recompute.
func (l PaymentLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l {
		total = total.Add(e.Amount)
	}
	return total
}

// ReconcileLegacyAdvances maps the persisted advances column into a strict
// ledger. A well-formed JSON array is used as-is. Anything else (NULL, a bare
// scalar, corrupted data from older schema versions) is treated as absent; in
// that case a non-zero legacy scalar advance is upgraded into a single-entry
// ledger dated on the record itself. This runs once at load time, never after
// the ledger is established.
func ReconcileLegacyAdvances(raw []byte, legacyAdvance decimal.Decimal, recordDate string) PaymentLedger {
	if len(raw) > 0 {
		var ledger PaymentLedger
		if err := json.Unmarshal(raw, &ledger); err == nil && ledger != nil {
			return ledger
		}
	}
	if !legacyAdvance.IsZero() {
		return PaymentLedger{{Amount: legacyAdvance, Date: recordDate, Notes: "Legacy Advance"}}
	}
	return PaymentLedger{}
}
