package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GST rates are fixed policy, not configuration. Intra-state consignments split
// the 5% GST into equal CGST and SGST halves; inter-state consignments charge
// the full 5% as IGST.
var (
	CGSTRateIntra = decimal.RequireFromString("0.025")
	SGSTRateIntra = decimal.RequireFromString("0.025")
	IGSTRateInter = decimal.RequireFromString("0.05")
)

// DerivedBalances holds the denormalized monetary fields recomputed on every
// mutation of a freight record.
type DerivedBalances struct {
	Balance      decimal.Decimal
	TotalBalance decimal.Decimal
}

// Recompute derives balance and total balance from the raw freight figures.
// A negative balance is a valid business state (overpaid advance), not an error.
// No rounding happens here; formatting is a presentation concern.
func Recompute(freight, advanceTotal, otherExpenses decimal.Decimal) DerivedBalances {
	balance := freight.Sub(advanceTotal)
	return DerivedBalances{
		Balance:      balance,
		TotalBalance: balance.Add(otherExpenses),
	}
}

// InvoiceTotals is the full tax breakdown for a taxable invoice.
type InvoiceTotals struct {
	TotalAmount decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
	NetAmount   decimal.Decimal
}

// ComputeInvoiceTotals sums freight plus surcharges over all lines and applies
// the tax split for the given tax type. TaxType is a closed enumeration; any
// value other than intra or inter yields a zero tax breakdown.
func ComputeInvoiceTotals(lines []InvoiceLine, taxType TaxType) InvoiceTotals {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Freight).Add(line.Charges.Total())
	}

	t := InvoiceTotals{TotalAmount: total}
	switch taxType {
	case TaxIntra:
		t.CGST = total.Mul(CGSTRateIntra)
		t.SGST = total.Mul(SGSTRateIntra)
	case TaxInter:
		t.IGST = total.Mul(IGSTRateInter)
	}
	t.NetAmount = total.Add(t.CGST).Add(t.SGST).Add(t.IGST)
	return t
}

// ParseAmount is the normalize-on-read boundary for monetary input. Records
// loaded from storage and values typed into forms may be blank, "null", or
// otherwise unparseable; all of those coerce to zero rather than erroring.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || strings.ToLower(s) == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
