package guests

import (
	"context"

	"tablebook/internal/domain"
	"tablebook/internal/repository"
)

type GuestUseCase interface {
	Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error)
	Get(ctx context.Context, id int64) (*domain.Guest, error)
	Update(ctx context.Context, id int64, guest *domain.Guest) (*domain.Guest, error)
	List(ctx context.Context) ([]domain.Guest, error)
	Remove(ctx context.Context, id int64) error
}

// GuestService is a thin pass-through over guest storage. Guests carry no
// occupancy semantics.
type GuestService struct {
	guests repository.GuestRepository
}

func NewGuestService(guests repository.GuestRepository) *GuestService {
	return &GuestService{guests: guests}
}

func (s *GuestService) Create(ctx context.Context, guest *domain.Guest) (*domain.Guest, error) {
	if guest.FirstName == "" {
		return nil, domain.Validationf("first_name", "first_name is required")
	}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) Get(ctx context.Context, id int64) (*domain.Guest, error) {
	return s.guests.GetByID(ctx, id)
}

func (s *GuestService) Update(ctx context.Context, id int64, guest *domain.Guest) (*domain.Guest, error) {
	if guest.FirstName == "" {
		return nil, domain.Validationf("first_name", "first_name is required")
	}
	guest.ID = id
	return s.guests.Update(ctx, guest)
}

func (s *GuestService) List(ctx context.Context) ([]domain.Guest, error) {
	return s.guests.List(ctx)
}

func (s *GuestService) Remove(ctx context.Context, id int64) error {
	return s.guests.Remove(ctx, id)
}

var _ GuestUseCase = (*GuestService)(nil)
