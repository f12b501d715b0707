package app

import (
	"context"

	"freight-office/internal/core"
)

// ApplicationService is the single interface UI adapters (web, CLI) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no HTML, and no display logic of any kind.
type ApplicationService interface {
	// CreateReceipt creates a lorry receipt, assigning the next LR number for
	// the record's financial year.
	CreateReceipt(ctx context.Context, req ReceiptRequest) (*ReceiptResult, error)

	// GetReceipt returns a single lorry receipt by ID.
	GetReceipt(ctx context.Context, id int) (*ReceiptResult, error)

	// ListReceipts returns lorry receipts, optionally filtered by date range
	// and party (matches consignor or consignee).
	ListReceipts(ctx context.Context, fromDate, toDate string, partyID int) (*ReceiptListResult, error)

	// UpdateReceipt replaces the raw fields of a receipt and recomputes its balances.
	UpdateReceipt(ctx context.Context, id int, req ReceiptRequest) (*ReceiptResult, error)

	// AddReceiptPayment appends an advance payment to a receipt's ledger.
	AddReceiptPayment(ctx context.Context, id int, entry core.PaymentEntry) (*ReceiptResult, error)

	// RemoveReceiptPayment deletes the ledger entry at index. Out-of-range
	// indexes leave the ledger unchanged.
	RemoveReceiptPayment(ctx context.Context, id, index int) (*ReceiptResult, error)

	// SetPODReceived flags proof-of-delivery receipt on a lorry receipt.
	SetPODReceived(ctx context.Context, id int, received bool) error

	// CreateHiring creates a vehicle-hiring register entry with a generated GR number.
	CreateHiring(ctx context.Context, req HiringRequest) (*HiringResult, error)
	GetHiring(ctx context.Context, id int) (*HiringResult, error)
	ListHirings(ctx context.Context, fromDate, toDate string) (*HiringListResult, error)
	UpdateHiring(ctx context.Context, id int, req HiringRequest) (*HiringResult, error)
	AddHiringPayment(ctx context.Context, id int, entry core.PaymentEntry) (*HiringResult, error)
	RemoveHiringPayment(ctx context.Context, id, index int) (*HiringResult, error)

	// CreateBooking creates a booking-register entry with a generated GR number.
	CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error)
	GetBooking(ctx context.Context, id int) (*BookingResult, error)
	ListBookings(ctx context.Context, fromDate, toDate string) (*BookingListResult, error)
	UpdateBooking(ctx context.Context, id int, req BookingRequest) (*BookingResult, error)
	AddBookingPayment(ctx context.Context, id int, entry core.PaymentEntry) (*BookingResult, error)
	RemoveBookingPayment(ctx context.Context, id, index int) (*BookingResult, error)

	// CreateInvoice raises a taxable bill from consignment lines. Lines that
	// reference a lorry receipt are snapshotted at creation time.
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResult, error)
	GetInvoice(ctx context.Context, id int) (*InvoiceResult, error)
	ListInvoices(ctx context.Context, fromDate, toDate string) (*InvoiceListResult, error)

	// GetInvoicePrint returns an invoice together with its net amount rendered
	// in words for the printable bill.
	GetInvoicePrint(ctx context.Context, id int) (*InvoicePrintResult, error)

	// Party master.
	CreateParty(ctx context.Context, req PartyRequest) (*PartyResult, error)
	GetParty(ctx context.Context, id int) (*PartyResult, error)
	ListParties(ctx context.Context) (*PartyListResult, error)
	UpdateParty(ctx context.Context, id int, req PartyRequest) (*PartyResult, error)
	DeactivateParty(ctx context.Context, id int) error

	// Truck master.
	CreateTruck(ctx context.Context, req TruckRequest) (*TruckResult, error)
	GetTruck(ctx context.Context, id int) (*TruckResult, error)
	ListTrucks(ctx context.Context) (*TruckListResult, error)
	UpdateTruck(ctx context.Context, id int, req TruckRequest) (*TruckResult, error)
	DeactivateTruck(ctx context.Context, id int) error

	// InterpretConsignment sends a natural-language consignment description to
	// the AI agent and returns either a lorry receipt draft or a clarification
	// request. Drafts are never persisted without explicit user confirmation.
	InterpretConsignment(ctx context.Context, text string) (*AIResult, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns a user profile by ID.
	GetUser(ctx context.Context, userID int) (*core.User, error)
}
