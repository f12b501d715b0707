package core

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TaxType is the closed two-valued GST classification of an invoice.
type TaxType string

const (
	TaxIntra TaxType = "intra"
	TaxInter TaxType = "inter"
)

// Valid reports whether t is one of the two supported tax types.
func (t TaxType) Valid() bool {
	return t == TaxIntra || t == TaxInter
}

type RecordStatus string

const (
	StatusOpen   RecordStatus = "OPEN"
	StatusClosed RecordStatus = "CLOSED"
)

// Party is a consignor, consignee, or billed customer.
type Party struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	GSTIN     string    `json:"gstin"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Truck struct {
	ID          int       `json:"id"`
	TruckNo     string    `json:"truck_no"`
	OwnerName   string    `json:"owner_name"`
	DriverName  string    `json:"driver_name"`
	DriverPhone string    `json:"driver_phone"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChargeSet is the fixed mapping of named surcharge categories carried on a
// consignment. Missing or malformed values decode as zero.
type ChargeSet struct {
	Hamali            decimal.Decimal `json:"hamali"`
	DDCharges         decimal.Decimal `json:"dd_charges"`
	RiskCharges       decimal.Decimal `json:"risk_charges"`
	CollectionCharges decimal.Decimal `json:"collection_charges"`
	OtherCharges      decimal.Decimal `json:"other_charges"`
}

// Total sums every surcharge category.
func (c ChargeSet) Total() decimal.Decimal {
	return c.Hamali.
		Add(c.DDCharges).
		Add(c.RiskCharges).
		Add(c.CollectionCharges).
		Add(c.OtherCharges)
}

// UnmarshalJSON decodes a charge set from persisted JSONB, coercing absent or
// unparseable category values to zero instead of failing the whole record.
func (c *ChargeSet) UnmarshalJSON(b []byte) error {
	var raw struct {
		Hamali            json.RawMessage `json:"hamali"`
		DDCharges         json.RawMessage `json:"dd_charges"`
		RiskCharges       json.RawMessage `json:"risk_charges"`
		CollectionCharges json.RawMessage `json:"collection_charges"`
		OtherCharges      json.RawMessage `json:"other_charges"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Hamali = decodeAmount(raw.Hamali)
	c.DDCharges = decodeAmount(raw.DDCharges)
	c.RiskCharges = decodeAmount(raw.RiskCharges)
	c.CollectionCharges = decodeAmount(raw.CollectionCharges)
	c.OtherCharges = decodeAmount(raw.OtherCharges)
	return nil
}

// LorryReceipt is the consignment note for one shipment. Advance, Balance and
// TotalBalance are denormalized: recomputed from Freight, Advances and
// OtherExpenses on every mutation and stored redundantly for display.
type LorryReceipt struct {
	ID            int             `json:"id"`
	LRNo          string          `json:"lr_no"`
	RecordDate    string          `json:"lr_date"`
	ConsignorID   int             `json:"consignor_id"`
	ConsigneeID   int             `json:"consignee_id"`
	TruckID       *int            `json:"truck_id,omitempty"`
	FromLocation  string          `json:"from_location"`
	ToLocation    string          `json:"to_location"`
	Material      string          `json:"material"`
	Weight        decimal.Decimal `json:"weight"`
	Freight       decimal.Decimal `json:"freight"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	Charges       ChargeSet       `json:"charges"`
	Advances      PaymentLedger   `json:"advances"`
	Advance       decimal.Decimal `json:"advance"`
	Balance       decimal.Decimal `json:"balance"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
	PODReceived   bool            `json:"pod_received"`
	Status        RecordStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// VehicleHiring records a truck hired from an outside owner, identified by GR number.
type VehicleHiring struct {
	ID            int             `json:"id"`
	GRNo          string          `json:"gr_no"`
	RecordDate    string          `json:"hire_date"`
	TruckID       *int            `json:"truck_id,omitempty"`
	OwnerID       int             `json:"owner_id"`
	FromLocation  string          `json:"from_location"`
	ToLocation    string          `json:"to_location"`
	Freight       decimal.Decimal `json:"freight"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	Advances      PaymentLedger   `json:"advances"`
	Advance       decimal.Decimal `json:"advance"`
	Balance       decimal.Decimal `json:"balance"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
	Status        RecordStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// BookingRecord is a booking-register entry for a party shipment.
type BookingRecord struct {
	ID            int             `json:"id"`
	GRNo          string          `json:"gr_no"`
	RecordDate    string          `json:"booking_date"`
	PartyID       int             `json:"party_id"`
	FromLocation  string          `json:"from_location"`
	ToLocation    string          `json:"to_location"`
	Freight       decimal.Decimal `json:"freight"`
	OtherExpenses decimal.Decimal `json:"other_expenses"`
	Advances      PaymentLedger   `json:"advances"`
	Advance       decimal.Decimal `json:"advance"`
	Balance       decimal.Decimal `json:"balance"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
	Status        RecordStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// Invoice is a taxable bill composed of one line per consignment.
type Invoice struct {
	ID          int             `json:"id"`
	BillNo      string          `json:"bill_no"`
	BillDate    string          `json:"bill_date"`
	PartyID     int             `json:"party_id"`
	PartyName   string          `json:"party_name,omitempty"`
	TaxType     TaxType         `json:"tax_type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Lines       []InvoiceLine   `json:"lines,omitempty"`
}

// InvoiceLine snapshots one consignment onto an invoice. LRID links back to
// the lorry receipt when the line was pulled from the register; manual lines
// carry only the snapshot fields.
type InvoiceLine struct {
	ID           int             `json:"id"`
	InvoiceID    int             `json:"invoice_id"`
	LRID         *int            `json:"lr_id,omitempty"`
	LRNo         string          `json:"lr_no"`
	LRDate       string          `json:"lr_date"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Freight      decimal.Decimal `json:"freight"`
	Charges      ChargeSet       `json:"charges"`
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
