package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"freight-office/internal/ai"
	"freight-office/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

type appService struct {
	pool     *pgxpool.Pool
	receipts core.ReceiptService
	hirings  core.HiringService
	bookings core.BookingService
	invoices core.InvoiceService
	parties  core.PartyService
	trucks   core.TruckService
	agent    *ai.Agent
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	pool *pgxpool.Pool,
	receipts core.ReceiptService,
	hirings core.HiringService,
	bookings core.BookingService,
	invoices core.InvoiceService,
	parties core.PartyService,
	trucks core.TruckService,
	agent *ai.Agent,
) ApplicationService {
	return &appService{
		pool:     pool,
		receipts: receipts,
		hirings:  hirings,
		bookings: bookings,
		invoices: invoices,
		parties:  parties,
		trucks:   trucks,
		agent:    agent,
	}
}

// ── Lorry receipts ────────────────────────────────────────────────────────────

func (s *appService) CreateReceipt(ctx context.Context, req ReceiptRequest) (*ReceiptResult, error) {
	r, err := s.receipts.CreateReceipt(ctx, receiptInput(req))
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{Receipt: r}, nil
}

func (s *appService) GetReceipt(ctx context.Context, id int) (*ReceiptResult, error) {
	r, err := s.receipts.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{Receipt: r}, nil
}

func (s *appService) ListReceipts(ctx context.Context, fromDate, toDate string, partyID int) (*ReceiptListResult, error) {
	receipts, err := s.receipts.GetReceipts(ctx, core.ReceiptFilter{
		FromDate: fromDate,
		ToDate:   toDate,
		PartyID:  partyID,
	})
	if err != nil {
		return nil, err
	}
	return &ReceiptListResult{Receipts: receipts}, nil
}

func (s *appService) UpdateReceipt(ctx context.Context, id int, req ReceiptRequest) (*ReceiptResult, error) {
	r, err := s.receipts.UpdateReceipt(ctx, id, receiptInput(req))
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{Receipt: r}, nil
}

func (s *appService) AddReceiptPayment(ctx context.Context, id int, entry core.PaymentEntry) (*ReceiptResult, error) {
	r, err := s.receipts.AddPayment(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{Receipt: r}, nil
}

func (s *appService) RemoveReceiptPayment(ctx context.Context, id, index int) (*ReceiptResult, error) {
	r, err := s.receipts.RemovePayment(ctx, id, index)
	if err != nil {
		return nil, err
	}
	return &ReceiptResult{Receipt: r}, nil
}

func (s *appService) SetPODReceived(ctx context.Context, id int, received bool) error {
	return s.receipts.SetPODReceived(ctx, id, received)
}

func receiptInput(req ReceiptRequest) core.ReceiptInput {
	return core.ReceiptInput{
		RecordDate:    req.RecordDate,
		ConsignorID:   req.ConsignorID,
		ConsigneeID:   req.ConsigneeID,
		TruckID:       req.TruckID,
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		Material:      req.Material,
		Weight:        amount(req.Weight),
		Freight:       amount(req.Freight),
		OtherExpenses: amount(req.OtherExpenses),
		Charges:       req.Charges,
		Advances:      req.Advances,
	}
}

// ── Vehicle hirings ───────────────────────────────────────────────────────────

func (s *appService) CreateHiring(ctx context.Context, req HiringRequest) (*HiringResult, error) {
	h, err := s.hirings.CreateHiring(ctx, hiringInput(req))
	if err != nil {
		return nil, err
	}
	return &HiringResult{Hiring: h}, nil
}

func (s *appService) GetHiring(ctx context.Context, id int) (*HiringResult, error) {
	h, err := s.hirings.GetHiring(ctx, id)
	if err != nil {
		return nil, err
	}
	return &HiringResult{Hiring: h}, nil
}

func (s *appService) ListHirings(ctx context.Context, fromDate, toDate string) (*HiringListResult, error) {
	hirings, err := s.hirings.GetHirings(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return &HiringListResult{Hirings: hirings}, nil
}

func (s *appService) UpdateHiring(ctx context.Context, id int, req HiringRequest) (*HiringResult, error) {
	h, err := s.hirings.UpdateHiring(ctx, id, hiringInput(req))
	if err != nil {
		return nil, err
	}
	return &HiringResult{Hiring: h}, nil
}

func (s *appService) AddHiringPayment(ctx context.Context, id int, entry core.PaymentEntry) (*HiringResult, error) {
	h, err := s.hirings.AddPayment(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	return &HiringResult{Hiring: h}, nil
}

func (s *appService) RemoveHiringPayment(ctx context.Context, id, index int) (*HiringResult, error) {
	h, err := s.hirings.RemovePayment(ctx, id, index)
	if err != nil {
		return nil, err
	}
	return &HiringResult{Hiring: h}, nil
}

func hiringInput(req HiringRequest) core.HiringInput {
	return core.HiringInput{
		RecordDate:    req.RecordDate,
		TruckID:       req.TruckID,
		OwnerID:       req.OwnerID,
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		Freight:       amount(req.Freight),
		OtherExpenses: amount(req.OtherExpenses),
		Advances:      req.Advances,
	}
}

// ── Bookings ──────────────────────────────────────────────────────────────────

func (s *appService) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	b, err := s.bookings.CreateBooking(ctx, bookingInput(req))
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: b}, nil
}

func (s *appService) GetBooking(ctx context.Context, id int) (*BookingResult, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: b}, nil
}

func (s *appService) ListBookings(ctx context.Context, fromDate, toDate string) (*BookingListResult, error) {
	bookings, err := s.bookings.GetBookings(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return &BookingListResult{Bookings: bookings}, nil
}

func (s *appService) UpdateBooking(ctx context.Context, id int, req BookingRequest) (*BookingResult, error) {
	b, err := s.bookings.UpdateBooking(ctx, id, bookingInput(req))
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: b}, nil
}

func (s *appService) AddBookingPayment(ctx context.Context, id int, entry core.PaymentEntry) (*BookingResult, error) {
	b, err := s.bookings.AddPayment(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: b}, nil
}

func (s *appService) RemoveBookingPayment(ctx context.Context, id, index int) (*BookingResult, error) {
	b, err := s.bookings.RemovePayment(ctx, id, index)
	if err != nil {
		return nil, err
	}
	return &BookingResult{Booking: b}, nil
}

func bookingInput(req BookingRequest) core.BookingInput {
	return core.BookingInput{
		RecordDate:    req.RecordDate,
		PartyID:       req.PartyID,
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		Freight:       amount(req.Freight),
		OtherExpenses: amount(req.OtherExpenses),
		Advances:      req.Advances,
	}
}

// ── Invoices ──────────────────────────────────────────────────────────────────

func (s *appService) CreateInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResult, error) {
	lines := make([]core.InvoiceLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = core.InvoiceLineInput{
			LRID: l.LRID,
			Line: core.InvoiceLine{
				LRNo:         l.LRNo,
				LRDate:       l.LRDate,
				FromLocation: l.FromLocation,
				ToLocation:   l.ToLocation,
				Freight:      amount(l.Freight),
				Charges:      l.Charges,
			},
		}
	}

	inv, err := s.invoices.CreateInvoice(ctx, core.InvoiceInput{
		BillDate: req.BillDate,
		PartyID:  req.PartyID,
		TaxType:  core.TaxType(req.TaxType),
		Lines:    lines,
	})
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) GetInvoice(ctx context.Context, id int) (*InvoiceResult, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) ListInvoices(ctx context.Context, fromDate, toDate string) (*InvoiceListResult, error) {
	invoices, err := s.invoices.GetInvoices(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices}, nil
}

// GetInvoicePrint returns the invoice with its net amount spelled out. The net
// amount is rounded to the nearest rupee before rendering, as printed bills
// carry whole-rupee words.
func (s *appService) GetInvoicePrint(ctx context.Context, id int) (*InvoicePrintResult, error) {
	inv, err := s.invoices.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	rupees := inv.NetAmount.Round(0).IntPart()
	return &InvoicePrintResult{
		Invoice:       inv,
		AmountInWords: core.AmountInWords(rupees) + " Rupees Only",
	}, nil
}

// ── Masters ───────────────────────────────────────────────────────────────────

func (s *appService) CreateParty(ctx context.Context, req PartyRequest) (*PartyResult, error) {
	p, err := s.parties.CreateParty(ctx, core.PartyInput(req))
	if err != nil {
		return nil, err
	}
	return &PartyResult{Party: p}, nil
}

func (s *appService) GetParty(ctx context.Context, id int) (*PartyResult, error) {
	p, err := s.parties.GetParty(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PartyResult{Party: p}, nil
}

func (s *appService) ListParties(ctx context.Context) (*PartyListResult, error) {
	parties, err := s.parties.GetParties(ctx)
	if err != nil {
		return nil, err
	}
	return &PartyListResult{Parties: parties}, nil
}

func (s *appService) UpdateParty(ctx context.Context, id int, req PartyRequest) (*PartyResult, error) {
	p, err := s.parties.UpdateParty(ctx, id, core.PartyInput(req))
	if err != nil {
		return nil, err
	}
	return &PartyResult{Party: p}, nil
}

func (s *appService) DeactivateParty(ctx context.Context, id int) error {
	return s.parties.DeactivateParty(ctx, id)
}

func (s *appService) CreateTruck(ctx context.Context, req TruckRequest) (*TruckResult, error) {
	t, err := s.trucks.CreateTruck(ctx, core.TruckInput(req))
	if err != nil {
		return nil, err
	}
	return &TruckResult{Truck: t}, nil
}

func (s *appService) GetTruck(ctx context.Context, id int) (*TruckResult, error) {
	t, err := s.trucks.GetTruck(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TruckResult{Truck: t}, nil
}

func (s *appService) ListTrucks(ctx context.Context) (*TruckListResult, error) {
	trucks, err := s.trucks.GetTrucks(ctx)
	if err != nil {
		return nil, err
	}
	return &TruckListResult{Trucks: trucks}, nil
}

func (s *appService) UpdateTruck(ctx context.Context, id int, req TruckRequest) (*TruckResult, error) {
	t, err := s.trucks.UpdateTruck(ctx, id, core.TruckInput(req))
	if err != nil {
		return nil, err
	}
	return &TruckResult{Truck: t}, nil
}

func (s *appService) DeactivateTruck(ctx context.Context, id int) error {
	return s.trucks.DeactivateTruck(ctx, id)
}

// ── AI ────────────────────────────────────────────────────────────────────────

// InterpretConsignment sends a natural-language consignment description to the
// agent along with the active masters so extracted names match exactly.
func (s *appService) InterpretConsignment(ctx context.Context, text string) (*AIResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty consignment description")
	}

	knownParties, err := s.fetchPartyNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parties: %w", err)
	}
	knownTrucks, err := s.fetchTruckNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trucks: %w", err)
	}

	response, err := s.agent.InterpretConsignment(ctx, text, knownParties, knownTrucks)
	if err != nil {
		return nil, err
	}

	if response.IsClarificationRequest {
		return &AIResult{
			IsClarification:      true,
			ClarificationMessage: response.ClarificationMessage,
		}, nil
	}
	return &AIResult{Draft: response.Draft}, nil
}

// fetchPartyNames returns the active party names as a newline list for the AI prompt.
func (s *appService) fetchPartyNames(ctx context.Context) (string, error) {
	rows, err := s.pool.Query(ctx, "SELECT name FROM parties WHERE is_active ORDER BY name")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", err
		}
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n"), rows.Err()
}

// fetchTruckNumbers returns the active truck registrations as a newline list.
func (s *appService) fetchTruckNumbers(ctx context.Context) (string, error) {
	rows, err := s.pool.Query(ctx, "SELECT truck_no FROM trucks WHERE is_active ORDER BY truck_no")
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var no string
		if err := rows.Scan(&no); err != nil {
			return "", err
		}
		lines = append(lines, "- "+no)
	}
	return strings.Join(lines, "\n"), rows.Err()
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	var (
		userID       int
		passwordHash string
		role         string
	)
	err := s.pool.QueryRow(ctx,
		"SELECT id, password_hash, role FROM users WHERE username = $1", username,
	).Scan(&userID, &passwordHash, &role)
	if err != nil {
		return nil, fmt.Errorf("unknown user %s: %w", username, core.ErrNotFound)
	}

	if !VerifyPassword(password, passwordHash) {
		return nil, errors.New("invalid credentials")
	}

	return &UserSession{UserID: userID, Username: username, Role: role}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*core.User, error) {
	u := &core.User{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, username, role, created_at FROM users WHERE id = $1", userID,
	).Scan(&u.ID, &u.Username, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, core.ErrNotFound)
	}
	return u, nil
}
