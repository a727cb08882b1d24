package reservations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tablebook/internal/domain"
	"tablebook/internal/events"
	"tablebook/internal/repository"
)

type ReservationUseCase interface {
	Create(ctx context.Context, in ReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, id int64, in ReservationInput) (*domain.Reservation, error)
	List(ctx context.Context, query ListQuery) ([]domain.Reservation, error)
}

// ListQuery selects one read-side lookup. Date wins over MobileNumber,
// which wins over Name; with no filters the full list is returned.
type ListQuery struct {
	Date         string
	MobileNumber string
	Name         string
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ReservationService struct {
	reservations repository.ReservationRepository
	validator    *Validator
	producer     Producer
	eventsTopic  string
	logger       zerolog.Logger
	now          func() time.Time
}

func NewReservationService(
	reservations repository.ReservationRepository,
	validator *Validator,
	producer Producer,
	eventsTopic string,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		validator:    validator,
		producer:     producer,
		eventsTopic:  eventsTopic,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*domain.Reservation, error) {
	people, err := s.validator.Validate(in, s.now())
	if err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		MobileNumber:    in.MobileNumber,
		ReservationDate: in.ReservationDate,
		ReservationTime: in.ReservationTime,
		People:          people,
		GuestID:         in.GuestID,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeReservationBooked,
		ReservationID: res.ID,
		Status:        string(res.Status),
		People:        res.People,
	})
	return res, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

// Update replaces the editable fields of a booked reservation. The new
// values go through the same admission rules as a fresh booking; status is
// never touched here.
func (s *ReservationService) Update(ctx context.Context, id int64, in ReservationInput) (*domain.Reservation, error) {
	people, err := s.validator.Validate(in, s.now())
	if err != nil {
		return nil, err
	}

	updated, err := s.reservations.Update(ctx, &domain.Reservation{
		ID:              id,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		MobileNumber:    in.MobileNumber,
		ReservationDate: in.ReservationDate,
		ReservationTime: in.ReservationTime,
		People:          people,
		GuestID:         in.GuestID,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:          events.TypeReservationUpdated,
		ReservationID: updated.ID,
		Status:        string(updated.Status),
		People:        updated.People,
	})
	return updated, nil
}

func (s *ReservationService) List(ctx context.Context, query ListQuery) ([]domain.Reservation, error) {
	switch {
	case query.Date != "":
		return s.reservations.ListByDate(ctx, query.Date)
	case query.MobileNumber != "":
		return s.reservations.ListByPhone(ctx, digitsOnly(query.MobileNumber))
	case query.Name != "":
		return s.reservations.ListByName(ctx, query.Name)
	default:
		return s.reservations.List(ctx)
	}
}

func (s *ReservationService) publish(ctx context.Context, event events.Event) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event.OccurredAt = s.now()
	key := fmt.Sprintf("reservation:%d", event.ReservationID)
	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		s.logger.Warn().Err(err).Str("type", event.Type).
			Int64("reservation_id", event.ReservationID).
			Msg("failed to publish reservation event")
	}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

var _ ReservationUseCase = (*ReservationService)(nil)
