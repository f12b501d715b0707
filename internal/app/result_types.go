package app

import "freight-office/internal/core"

// ReceiptResult is returned by lorry receipt operations.
type ReceiptResult struct {
	Receipt *core.LorryReceipt `json:"receipt"`
}

// ReceiptListResult is returned by ListReceipts.
type ReceiptListResult struct {
	Receipts []core.LorryReceipt `json:"receipts"`
}

// HiringResult is returned by vehicle-hiring operations.
type HiringResult struct {
	Hiring *core.VehicleHiring `json:"hiring"`
}

// HiringListResult is returned by ListHirings.
type HiringListResult struct {
	Hirings []core.VehicleHiring `json:"hirings"`
}

// BookingResult is returned by booking operations.
type BookingResult struct {
	Booking *core.BookingRecord `json:"booking"`
}

// BookingListResult is returned by ListBookings.
type BookingListResult struct {
	Bookings []core.BookingRecord `json:"bookings"`
}

// InvoiceResult is returned by invoice operations.
type InvoiceResult struct {
	Invoice *core.Invoice `json:"invoice"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
}

// InvoicePrintResult carries everything the printable bill needs.
type InvoicePrintResult struct {
	Invoice       *core.Invoice `json:"invoice"`
	AmountInWords string        `json:"amount_in_words"`
}

// PartyResult is returned by party master operations.
type PartyResult struct {
	Party *core.Party `json:"party"`
}

// PartyListResult is returned by ListParties.
type PartyListResult struct {
	Parties []core.Party `json:"parties"`
}

// TruckResult is returned by truck master operations.
type TruckResult struct {
	Truck *core.Truck `json:"truck"`
}

// TruckListResult is returned by ListTrucks.
type TruckListResult struct {
	Trucks []core.Truck `json:"trucks"`
}

// AIResult is returned by InterpretConsignment. Exactly one of Draft or
// ClarificationMessage is meaningful, selected by IsClarification.
type AIResult struct {
	IsClarification      bool                   `json:"is_clarification"`
	ClarificationMessage string                 `json:"clarification_message,omitempty"`
	Draft                *core.ConsignmentDraft `json:"draft,omitempty"`
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
