package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by lookup operations when no row matches.
var ErrNotFound = errors.New("not found")

// PartyService manages the customer/consignor/consignee master.
type PartyService interface {
	CreateParty(ctx context.Context, input PartyInput) (*Party, error)
	GetParty(ctx context.Context, id int) (*Party, error)
	GetParties(ctx context.Context) ([]Party, error)
	UpdateParty(ctx context.Context, id int, input PartyInput) (*Party, error)
	DeactivateParty(ctx context.Context, id int) error
}

// PartyInput carries the editable fields of a party.
type PartyInput struct {
	Name    string
	GSTIN   string
	Address string
	Phone   string
}

type partyService struct {
	pool *pgxpool.Pool
}

// NewPartyService constructs a PartyService backed by PostgreSQL.
func NewPartyService(pool *pgxpool.Pool) PartyService {
	return &partyService{pool: pool}
}

const partyColumns = "id, name, gstin, address, phone, is_active, created_at"

func scanParty(row pgx.Row) (*Party, error) {
	p := &Party{}
	err := row.Scan(&p.ID, &p.Name, &p.GSTIN, &p.Address, &p.Phone, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *partyService) CreateParty(ctx context.Context, input PartyInput) (*Party, error) {
	if input.Name == "" {
		return nil, errors.New("party name is required")
	}
	p, err := scanParty(s.pool.QueryRow(ctx, `
		INSERT INTO parties (name, gstin, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+partyColumns,
		input.Name, input.GSTIN, input.Address, input.Phone,
	))
	if err != nil {
		return nil, fmt.Errorf("create party %q: %w", input.Name, err)
	}
	return p, nil
}

func (s *partyService) GetParty(ctx context.Context, id int) (*Party, error) {
	p, err := scanParty(s.pool.QueryRow(ctx,
		"SELECT "+partyColumns+" FROM parties WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("party %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get party %d: %w", id, err)
	}
	return p, nil
}

func (s *partyService) GetParties(ctx context.Context) ([]Party, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+partyColumns+" FROM parties WHERE is_active = true ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("get parties: %w", err)
	}
	defer rows.Close()

	var parties []Party
	for rows.Next() {
		var p Party
		if err := rows.Scan(&p.ID, &p.Name, &p.GSTIN, &p.Address, &p.Phone, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		parties = append(parties, p)
	}
	return parties, rows.Err()
}

func (s *partyService) UpdateParty(ctx context.Context, id int, input PartyInput) (*Party, error) {
	p, err := scanParty(s.pool.QueryRow(ctx, `
		UPDATE parties
		SET name = $2, gstin = $3, address = $4, phone = $5
		WHERE id = $1
		RETURNING `+partyColumns,
		id, input.Name, input.GSTIN, input.Address, input.Phone,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("party %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update party %d: %w", id, err)
	}
	return p, nil
}

func (s *partyService) DeactivateParty(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "UPDATE parties SET is_active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate party %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("party %d: %w", id, ErrNotFound)
	}
	return nil
}
