package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]domain.Reservation, error)
	ListByPhone(ctx context.Context, digits string) ([]domain.Reservation, error)
	ListByName(ctx context.Context, fragment string) ([]domain.Reservation, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `reservation_id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, guest_id, created_at, updated_at`

func scanReservation(row pgx.Row, res *domain.Reservation) error {
	return row.Scan(&res.ID, &res.FirstName, &res.LastName, &res.MobileNumber,
		&res.ReservationDate, &res.ReservationTime, &res.People, &res.Status,
		&res.GuestID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *PGReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	res.Status = domain.ReservationStatusBooked
	row := r.db.QueryRow(ctx, `INSERT INTO reservations (first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, guest_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING reservation_id, created_at, updated_at`,
		res.FirstName, res.LastName, res.MobileNumber, res.ReservationDate,
		res.ReservationTime, res.People, res.Status, res.GuestID)
	return row.Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE reservation_id=$1`, id)
	var res domain.Reservation
	if err := scanReservation(row, &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGReservationRepository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `UPDATE reservations
		SET first_name=$2, last_name=$3, mobile_number=$4, reservation_date=$5, reservation_time=$6, people=$7, guest_id=$8, updated_at=now()
		WHERE reservation_id=$1
		RETURNING `+reservationColumns,
		res.ID, res.FirstName, res.LastName, res.MobileNumber,
		res.ReservationDate, res.ReservationTime, res.People, res.GuestID)
	var updated domain.Reservation
	if err := scanReservation(row, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", res.ID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &updated, nil
}

func (r *PGReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `UPDATE reservations SET status=$2, updated_at=now() WHERE reservation_id=$1 RETURNING `+reservationColumns, id, status)
	var updated domain.Reservation
	if err := scanReservation(row, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &updated, nil
}

func (r *PGReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	return r.queryMany(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY reservation_id`)
}

func (r *PGReservationRepository) ListByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	return r.queryMany(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE reservation_date=$1 ORDER BY reservation_time`, date)
}

// ListByPhone strips separator characters from the stored number and does
// substring containment against the queried digits, ordered by id.
func (r *PGReservationRepository) ListByPhone(ctx context.Context, digits string) ([]domain.Reservation, error) {
	return r.queryMany(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE translate(mobile_number, '() -', '') LIKE '%' || $1 || '%'
		ORDER BY reservation_id`, digits)
}

// ListByName matches the fragment case-sensitively against either the first
// or the last name.
func (r *PGReservationRepository) ListByName(ctx context.Context, fragment string) ([]domain.Reservation, error) {
	return r.queryMany(ctx, `SELECT `+reservationColumns+` FROM reservations
		WHERE first_name LIKE '%' || $1 || '%' OR last_name LIKE '%' || $1 || '%'`, fragment)
}

func (r *PGReservationRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		var res domain.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
