package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/domain"
)

type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	Update(ctx context.Context, table *domain.Table) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	Remove(ctx context.Context, id int64) error
	Seat(ctx context.Context, tableID, reservationID int64) (*domain.Table, error)
	Finish(ctx context.Context, tableID int64) (*domain.Table, int64, error)
}

type PGTableRepository struct {
	db *pgxpool.Pool
}

func NewTableRepository(db *pgxpool.Pool) TableRepository {
	return &PGTableRepository{db: db}
}

const tableColumns = `table_id, table_name, capacity, table_status, reservation_id, created_at, updated_at`

func scanTable(row pgx.Row, t *domain.Table) error {
	return row.Scan(&t.ID, &t.TableName, &t.Capacity, &t.Status, &t.ReservationID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *PGTableRepository) Create(ctx context.Context, table *domain.Table) error {
	table.Status = domain.TableStatusFree
	row := r.db.QueryRow(ctx, `INSERT INTO tables (table_name, capacity, table_status)
		VALUES ($1, $2, $3)
		RETURNING table_id, created_at, updated_at`,
		table.TableName, table.Capacity, table.Status)
	return row.Scan(&table.ID, &table.CreatedAt, &table.UpdatedAt)
}

func (r *PGTableRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE table_id=$1`, id)
	var t domain.Table
	if err := scanTable(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTableRepository) Update(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	row := r.db.QueryRow(ctx, `UPDATE tables SET table_name=$2, capacity=$3, updated_at=now()
		WHERE table_id=$1
		RETURNING `+tableColumns, table.ID, table.TableName, table.Capacity)
	var updated domain.Table
	if err := scanTable(row, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table %d: %w", table.ID, domain.ErrNotFound)
		}
		return nil, err
	}
	return &updated, nil
}

func (r *PGTableRepository) List(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY table_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		var t domain.Table
		if err := scanTable(rows, &t); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// Remove deletes a table row. Occupied tables cannot be removed: that would
// orphan a seated reservation.
func (r *PGTableRepository) Remove(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM tables WHERE table_id=$1 AND table_status=$2`, id, domain.TableStatusFree)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.Conflictf("table %d is occupied", id)
}

// Seat marks the reservation seated and the table occupied in one
// transaction. Both rows are locked up front so concurrent Seat calls on
// the same table serialize; the loser sees the occupied status and gets a
// conflict. Any failure rolls the whole transition back.
func (r *PGTableRepository) Seat(ctx context.Context, tableID, reservationID int64) (*domain.Table, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status domain.ReservationStatus
	var people int
	if err := tx.QueryRow(ctx, `SELECT status, people FROM reservations WHERE reservation_id=$1 FOR UPDATE`, reservationID).
		Scan(&status, &people); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reservation %d: %w", reservationID, domain.ErrNotFound)
		}
		return nil, err
	}
	if status != domain.ReservationStatusBooked {
		return nil, domain.Conflictf("reservation %d is already %s", reservationID, status)
	}

	var tableStatus domain.TableStatus
	var capacity int
	if err := tx.QueryRow(ctx, `SELECT table_status, capacity FROM tables WHERE table_id=$1 FOR UPDATE`, tableID).
		Scan(&tableStatus, &capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table %d: %w", tableID, domain.ErrNotFound)
		}
		return nil, err
	}
	if tableStatus != domain.TableStatusFree {
		return nil, domain.Conflictf("table %d is already occupied", tableID)
	}
	if capacity < people {
		return nil, domain.Conflictf("table %d seats %d, party of %d does not fit", tableID, capacity, people)
	}

	if _, err := tx.Exec(ctx, `UPDATE reservations SET status=$2, updated_at=now() WHERE reservation_id=$1`,
		reservationID, domain.ReservationStatusSeated); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, `UPDATE tables SET table_status=$2, reservation_id=$3, updated_at=now()
		WHERE table_id=$1 AND table_status=$4
		RETURNING `+tableColumns,
		tableID, domain.TableStatusOccupied, reservationID, domain.TableStatusFree)
	var t domain.Table
	if err := scanTable(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Conflictf("table %d is already occupied", tableID)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// Finish frees an occupied table and marks its seated reservation finished,
// atomically. It returns the freed table and the finished reservation id.
func (r *PGTableRepository) Finish(ctx context.Context, tableID int64) (*domain.Table, int64, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	var tableStatus domain.TableStatus
	var reservationID *int64
	if err := tx.QueryRow(ctx, `SELECT table_status, reservation_id FROM tables WHERE table_id=$1 FOR UPDATE`, tableID).
		Scan(&tableStatus, &reservationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, fmt.Errorf("table %d: %w", tableID, domain.ErrNotFound)
		}
		return nil, 0, err
	}
	if tableStatus != domain.TableStatusOccupied || reservationID == nil {
		return nil, 0, domain.Conflictf("table %d is not occupied", tableID)
	}

	if _, err := tx.Exec(ctx, `UPDATE reservations SET status=$2, updated_at=now() WHERE reservation_id=$1`,
		*reservationID, domain.ReservationStatusFinished); err != nil {
		return nil, 0, err
	}

	row := tx.QueryRow(ctx, `UPDATE tables SET table_status=$2, reservation_id=NULL, updated_at=now()
		WHERE table_id=$1
		RETURNING `+tableColumns, tableID, domain.TableStatusFree)
	var t domain.Table
	if err := scanTable(row, &t); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return &t, *reservationID, nil
}

var _ TableRepository = (*PGTableRepository)(nil)
