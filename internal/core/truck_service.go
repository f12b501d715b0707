package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TruckService manages the vehicle master.
type TruckService interface {
	CreateTruck(ctx context.Context, input TruckInput) (*Truck, error)
	GetTruck(ctx context.Context, id int) (*Truck, error)
	GetTrucks(ctx context.Context) ([]Truck, error)
	UpdateTruck(ctx context.Context, id int, input TruckInput) (*Truck, error)
	DeactivateTruck(ctx context.Context, id int) error
}

type TruckInput struct {
	TruckNo     string
	OwnerName   string
	DriverName  string
	DriverPhone string
}

type truckService struct {
	pool *pgxpool.Pool
}

func NewTruckService(pool *pgxpool.Pool) TruckService {
	return &truckService{pool: pool}
}

const truckColumns = "id, truck_no, owner_name, driver_name, driver_phone, is_active, created_at"

func scanTruck(row pgx.Row) (*Truck, error) {
	t := &Truck{}
	err := row.Scan(&t.ID, &t.TruckNo, &t.OwnerName, &t.DriverName, &t.DriverPhone, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *truckService) CreateTruck(ctx context.Context, input TruckInput) (*Truck, error) {
	if input.TruckNo == "" {
		return nil, errors.New("truck number is required")
	}
	t, err := scanTruck(s.pool.QueryRow(ctx, `
		INSERT INTO trucks (truck_no, owner_name, driver_name, driver_phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+truckColumns,
		input.TruckNo, input.OwnerName, input.DriverName, input.DriverPhone,
	))
	if err != nil {
		return nil, fmt.Errorf("create truck %q: %w", input.TruckNo, err)
	}
	return t, nil
}

func (s *truckService) GetTruck(ctx context.Context, id int) (*Truck, error) {
	t, err := scanTruck(s.pool.QueryRow(ctx,
		"SELECT "+truckColumns+" FROM trucks WHERE id = $1", id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("truck %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get truck %d: %w", id, err)
	}
	return t, nil
}

func (s *truckService) GetTrucks(ctx context.Context) ([]Truck, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+truckColumns+" FROM trucks WHERE is_active = true ORDER BY truck_no",
	)
	if err != nil {
		return nil, fmt.Errorf("get trucks: %w", err)
	}
	defer rows.Close()

	var trucks []Truck
	for rows.Next() {
		var t Truck
		if err := rows.Scan(&t.ID, &t.TruckNo, &t.OwnerName, &t.DriverName, &t.DriverPhone, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan truck: %w", err)
		}
		trucks = append(trucks, t)
	}
	return trucks, rows.Err()
}

func (s *truckService) UpdateTruck(ctx context.Context, id int, input TruckInput) (*Truck, error) {
	t, err := scanTruck(s.pool.QueryRow(ctx, `
		UPDATE trucks
		SET truck_no = $2, owner_name = $3, driver_name = $4, driver_phone = $5
		WHERE id = $1
		RETURNING `+truckColumns,
		id, input.TruckNo, input.OwnerName, input.DriverName, input.DriverPhone,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("truck %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("update truck %d: %w", id, err)
	}
	return t, nil
}

func (s *truckService) DeactivateTruck(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "UPDATE trucks SET is_active = false WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate truck %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("truck %d: %w", id, ErrNotFound)
	}
	return nil
}
