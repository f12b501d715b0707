package core_test

import (
	"testing"

	"freight-office/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name          string
		freight       string
		advance       string
		otherExpenses string
		wantBalance   string
		wantTotal     string
	}{
		{"plain settlement", "10000", "4000", "500", "6000", "6500"},
		{"no advance", "7500.50", "0", "0", "7500.5", "7500.5"},
		{"overpaid advance is negative, not an error", "1000", "1500", "0", "-500", "-500"},
		{"overpayment plus expenses", "1000", "1500", "200", "-500", "-300"},
		{"all zero", "0", "0", "0", "0", "0"},
		{"no intermediate rounding", "100.555", "0.055", "0.01", "100.5", "100.51"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.Recompute(dec(tt.freight), dec(tt.advance), dec(tt.otherExpenses))
			if !got.Balance.Equal(dec(tt.wantBalance)) {
				t.Errorf("Balance = %s, want %s", got.Balance, tt.wantBalance)
			}
			if !got.TotalBalance.Equal(dec(tt.wantTotal)) {
				t.Errorf("TotalBalance = %s, want %s", got.TotalBalance, tt.wantTotal)
			}
		})
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	first := core.Recompute(dec("1234.56"), dec("200"), dec("34.44"))
	second := core.Recompute(dec("1234.56"), dec("200"), dec("34.44"))
	if !first.Balance.Equal(second.Balance) || !first.TotalBalance.Equal(second.TotalBalance) {
		t.Errorf("repeated calls diverged: %+v vs %+v", first, second)
	}
}

func TestComputeInvoiceTotals(t *testing.T) {
	lines := []core.InvoiceLine{
		{Freight: dec("600"), Charges: core.ChargeSet{Hamali: dec("100"), DDCharges: dec("50")}},
		{Freight: dec("250")},
	}

	tests := []struct {
		name    string
		taxType core.TaxType
		cgst    string
		sgst    string
		igst    string
		net     string
	}{
		{"intra-state splits CGST+SGST", core.TaxIntra, "25", "25", "0", "1050"},
		{"inter-state charges IGST only", core.TaxInter, "0", "0", "50", "1050"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ComputeInvoiceTotals(lines, tt.taxType)
			if !got.TotalAmount.Equal(dec("1000")) {
				t.Fatalf("TotalAmount = %s, want 1000", got.TotalAmount)
			}
			if !got.CGST.Equal(dec(tt.cgst)) {
				t.Errorf("CGST = %s, want %s", got.CGST, tt.cgst)
			}
			if !got.SGST.Equal(dec(tt.sgst)) {
				t.Errorf("SGST = %s, want %s", got.SGST, tt.sgst)
			}
			if !got.IGST.Equal(dec(tt.igst)) {
				t.Errorf("IGST = %s, want %s", got.IGST, tt.igst)
			}
			if !got.NetAmount.Equal(dec(tt.net)) {
				t.Errorf("NetAmount = %s, want %s", got.NetAmount, tt.net)
			}
		})
	}
}

func TestComputeInvoiceTotals_EmptyAndZeroCharges(t *testing.T) {
	got := core.ComputeInvoiceTotals(nil, core.TaxIntra)
	if !got.TotalAmount.IsZero() || !got.NetAmount.IsZero() {
		t.Errorf("empty invoice should total zero, got %+v", got)
	}

	// Unset charge categories behave as zero.
	got = core.ComputeInvoiceTotals([]core.InvoiceLine{{Freight: dec("100")}}, core.TaxInter)
	if !got.TotalAmount.Equal(dec("100")) {
		t.Errorf("TotalAmount = %s, want 100", got.TotalAmount)
	}
	if !got.IGST.Equal(dec("5")) {
		t.Errorf("IGST = %s, want 5", got.IGST)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123.45", "123.45"},
		{" 99 ", "99"},
		{"", "0"},
		{"null", "0"},
		{"NULL", "0"},
		{"abc", "0"},
		{"12,000", "0"},
		{"-50", "-50"},
	}
	for _, tt := range tests {
		if got := core.ParseAmount(tt.in); !got.Equal(dec(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestChargeSetTotal(t *testing.T) {
	c := core.ChargeSet{
		Hamali:            dec("10"),
		DDCharges:         dec("20.50"),
		RiskCharges:       dec("5"),
		CollectionCharges: dec("4.50"),
		OtherCharges:      dec("60"),
	}
	if got := c.Total(); !got.Equal(dec("100")) {
		t.Errorf("Total = %s, want 100", got)
	}
	if got := (core.ChargeSet{}).Total(); !got.IsZero() {
		t.Errorf("empty charge set total = %s, want 0", got)
	}
}
