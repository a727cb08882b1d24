package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *domain.Guest) error
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	Update(ctx context.Context, guest *domain.Guest) (*domain.Guest, error)
	List(ctx context.Context) ([]domain.Guest, error)
	Remove(ctx context.Context, id int64) error
}

type PGGuestRepository struct {
	db *pgxpool.Pool
}

func NewGuestRepository(db *pgxpool.Pool) GuestRepository {
	return &PGGuestRepository{db: db}
}

const guestColumns = `guest_id, first_name, last_name, email, birthday, company, notes, confirmed, section, waiter, created_at, updated_at`

func scanGuest(row pgx.Row, g *domain.Guest) error {
	return row.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Birthday,
		&g.Company, &g.Notes, &g.Confirmed, &g.Section, &g.Waiter,
		&g.CreatedAt, &g.UpdatedAt)
}

func (r *PGGuestRepository) Create(ctx context.Context, guest *domain.Guest) error {
	row := r.db.QueryRow(ctx, `INSERT INTO guests (first_name, last_name, email, birthday, company, notes, confirmed, section, waiter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING guest_id, created_at, updated_at`,
		guest.FirstName, guest.LastName, guest.Email, guest.Birthday,
		guest.Company, guest.Notes, guest.Confirmed, guest.Section, guest.Waiter)
	return row.Scan(&guest.ID, &guest.CreatedAt, &guest.UpdatedAt)
}

func (r *PGGuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+guestColumns+` FROM guests WHERE guest_id=$1`, id)
	var g domain.Guest
	if err := scanGuest(row, &g); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("guest %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &g, nil
}

func (r *PGGuestRepository) Update(ctx context.Context, guest *domain.Guest) (*domain.Guest, error) {
	row := r.db.QueryRow(ctx, `UPDATE guests
		SET first_name=$2, last_name=$3, email=$4, birthday=$5, company=$6, notes=$7, confirmed=$8, section=$9, waiter=$10, updated_at=now()
		WHERE guest_id=$1
		RETURNING `+guestColumns,
		guest.ID, guest.FirstName, guest.LastName, guest.Email, guest.Birthday,
		guest.Company, guest.Notes, guest.Confirmed, guest.Section, guest.Waiter)
	var updated domain.Guest
	if err := scanGuest(row, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("guest %d: %w", guest.ID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &updated, nil
}

func (r *PGGuestRepository) List(ctx context.Context) ([]domain.Guest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY guest_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guests := make([]domain.Guest, 0)
	for rows.Next() {
		var g domain.Guest
		if err := scanGuest(rows, &g); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *PGGuestRepository) Remove(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM guests WHERE guest_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("guest %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ GuestRepository = (*PGGuestRepository)(nil)
