package app

import (
	"encoding/json"
	"strings"

	"freight-office/internal/core"

	"github.com/shopspring/decimal"
)

// Amount fields are json.RawMessage so that clients may send either JSON
// numbers or quoted strings; both coerce forgivingly, with garbage reading
// as zero.

// ReceiptRequest is the input for creating or updating a lorry receipt.
// Derived balances are never accepted from clients.
type ReceiptRequest struct {
	RecordDate    string             `json:"lr_date"`
	ConsignorID   int                `json:"consignor_id"`
	ConsigneeID   int                `json:"consignee_id"`
	TruckID       *int               `json:"truck_id"`
	FromLocation  string             `json:"from_location"`
	ToLocation    string             `json:"to_location"`
	Material      string             `json:"material"`
	Weight        json.RawMessage    `json:"weight"`
	Freight       json.RawMessage    `json:"freight"`
	OtherExpenses json.RawMessage    `json:"other_expenses"`
	Charges       core.ChargeSet     `json:"charges"`
	Advances      core.PaymentLedger `json:"advances"`
}

// HiringRequest is the input for creating or updating a vehicle-hiring entry.
type HiringRequest struct {
	RecordDate    string             `json:"hire_date"`
	TruckID       *int               `json:"truck_id"`
	OwnerID       int                `json:"owner_id"`
	FromLocation  string             `json:"from_location"`
	ToLocation    string             `json:"to_location"`
	Freight       json.RawMessage    `json:"freight"`
	OtherExpenses json.RawMessage    `json:"other_expenses"`
	Advances      core.PaymentLedger `json:"advances"`
}

// BookingRequest is the input for creating or updating a booking entry.
type BookingRequest struct {
	RecordDate    string             `json:"booking_date"`
	PartyID       int                `json:"party_id"`
	FromLocation  string             `json:"from_location"`
	ToLocation    string             `json:"to_location"`
	Freight       json.RawMessage    `json:"freight"`
	OtherExpenses json.RawMessage    `json:"other_expenses"`
	Advances      core.PaymentLedger `json:"advances"`
}

// InvoiceRequest is the input for raising an invoice. A line either references
// a lorry receipt by ID or carries its own snapshot fields.
type InvoiceRequest struct {
	BillDate string               `json:"bill_date"`
	PartyID  int                  `json:"party_id"`
	TaxType  string               `json:"tax_type"`
	Lines    []InvoiceLineRequest `json:"lines"`
}

// InvoiceLineRequest is a single line within an InvoiceRequest.
type InvoiceLineRequest struct {
	LRID         *int            `json:"lr_id"`
	LRNo         string          `json:"lr_no"`
	LRDate       string          `json:"lr_date"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Freight      json.RawMessage `json:"freight"`
	Charges      core.ChargeSet  `json:"charges"`
}

// PartyRequest is the input for creating or updating a party.
type PartyRequest struct {
	Name    string `json:"name"`
	GSTIN   string `json:"gstin"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// TruckRequest is the input for creating or updating a truck.
type TruckRequest struct {
	TruckNo     string `json:"truck_no"`
	OwnerName   string `json:"owner_name"`
	DriverName  string `json:"driver_name"`
	DriverPhone string `json:"driver_phone"`
}

// amount coerces a raw JSON value (number, quoted string, null, or absent)
// into a decimal, reading anything unparseable as zero.
func amount(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	return core.ParseAmount(s)
}
