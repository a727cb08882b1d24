// Package tables is the occupancy coordinator: every transition between a
// reservation's status and a table's occupancy goes through Seat or Finish
// here, so all callers hit the same precondition checks.
package tables

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tablebook/internal/domain"
	"tablebook/internal/events"
	"tablebook/internal/repository"
)

type TableUseCase interface {
	Create(ctx context.Context, in TableInput) (*domain.Table, error)
	Get(ctx context.Context, id int64) (*domain.Table, error)
	Update(ctx context.Context, id int64, in TableInput) (*domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	Remove(ctx context.Context, id int64) error
	Seat(ctx context.Context, tableID, reservationID int64) (*domain.Table, error)
	Finish(ctx context.Context, tableID int64) (*domain.Table, error)
}

type TableInput struct {
	TableName string `json:"table_name"`
	Capacity  int    `json:"capacity"`
}

type Cache interface {
	GetTables(ctx context.Context) ([]domain.Table, error)
	SetTables(ctx context.Context, tables []domain.Table) error
	InvalidateTables(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type TableService struct {
	tables      repository.TableRepository
	cache       Cache
	producer    Producer
	eventsTopic string
	logger      zerolog.Logger
	now         func() time.Time
}

func NewTableService(
	tables repository.TableRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
	logger zerolog.Logger,
) *TableService {
	return &TableService{
		tables:      tables,
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		logger:      logger,
		now:         time.Now,
	}
}

func validateInput(in TableInput) error {
	if in.TableName == "" {
		return domain.Validationf("table_name", "table_name is required")
	}
	if in.Capacity < 1 {
		return domain.Validationf("capacity", "capacity must be at least 1")
	}
	return nil
}

func (s *TableService) Create(ctx context.Context, in TableInput) (*domain.Table, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	table := &domain.Table{TableName: in.TableName, Capacity: in.Capacity}
	if err := s.tables.Create(ctx, table); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return table, nil
}

func (s *TableService) Get(ctx context.Context, id int64) (*domain.Table, error) {
	return s.tables.GetByID(ctx, id)
}

func (s *TableService) Update(ctx context.Context, id int64, in TableInput) (*domain.Table, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	updated, err := s.tables.Update(ctx, &domain.Table{ID: id, TableName: in.TableName, Capacity: in.Capacity})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTables(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTables(ctx, tables)
	}
	return tables, nil
}

func (s *TableService) Remove(ctx context.Context, id int64) error {
	if err := s.tables.Remove(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.Event{Type: events.TypeTableRemoved, TableID: id})
	return nil
}

// Seat assigns a booked reservation to a free table. The repository runs
// both row mutations in one transaction; on any precondition failure
// (missing rows, non-booked reservation, occupied table, capacity too
// small) nothing is written.
func (s *TableService) Seat(ctx context.Context, tableID, reservationID int64) (*domain.Table, error) {
	table, err := s.tables.Seat(ctx, tableID, reservationID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:          events.TypeTableSeated,
		TableID:       table.ID,
		ReservationID: reservationID,
		Status:        string(domain.ReservationStatusSeated),
	})
	return table, nil
}

// Finish frees an occupied table and finishes its seated reservation.
func (s *TableService) Finish(ctx context.Context, tableID int64) (*domain.Table, error) {
	table, reservationID, err := s.tables.Finish(ctx, tableID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, events.Event{
		Type:          events.TypeTableFinished,
		TableID:       table.ID,
		ReservationID: reservationID,
		Status:        string(domain.ReservationStatusFinished),
	})
	return table, nil
}

func (s *TableService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTables(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate table cache")
	}
}

func (s *TableService) publish(ctx context.Context, event events.Event) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event.OccurredAt = s.now()
	key := fmt.Sprintf("table:%d", event.TableID)
	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		s.logger.Warn().Err(err).Str("type", event.Type).
			Int64("table_id", event.TableID).
			Msg("failed to publish table event")
	}
}

var _ TableUseCase = (*TableService)(nil)
