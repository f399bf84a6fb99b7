package extra

import (
	"context"
	"errors"
	"strings"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
)

// CreateRequest carries data to create an optional extra.
type CreateRequest struct {
	AccommodationID string
	Name            string
	Description     string
	Price           float64
	PriceType       PriceType
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name        *string
	Description *string
	Price       *float64
	PriceType   *PriceType
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string, isSysAdmin bool) (*OptionalExtra, error)
	GetByID(ctx context.Context, id string) (*OptionalExtra, error)
	GetByIDs(ctx context.Context, ids []string) ([]*OptionalExtra, error)
	List(ctx context.Context, filter Filter) ([]*OptionalExtra, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*OptionalExtra, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
}

type service struct {
	repo       Repository
	accService accommodation.Service
}

func NewService(repo Repository, accService accommodation.Service) Service {
	return &service{repo: repo, accService: accService}
}

func validateAttributes(e *OptionalExtra) error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrNameRequired
	}
	// Zero is valid: complimentary extras are priced at 0.
	if e.Price < 0 {
		return ErrInvalidPrice
	}
	if !e.PriceType.Valid() {
		return ErrInvalidPriceType
	}
	return nil
}

// requireOwner verifies the accommodation exists and the actor manages it.
func (s *service) requireOwner(ctx context.Context, accommodationID, actorID string, isSysAdmin bool) error {
	a, err := s.accService.GetByID(ctx, accommodationID)
	if err != nil {
		if errors.Is(err, accommodation.ErrNotFound) {
			return ErrAccommodationRef
		}
		return err
	}
	if !isSysAdmin && a.OwnerID != actorID {
		return ErrPermissionDenied
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string, isSysAdmin bool) (*OptionalExtra, error) {
	if err := s.requireOwner(ctx, req.AccommodationID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	e := &OptionalExtra{
		AccommodationID: req.AccommodationID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		PriceType:       req.PriceType,
		IsActive:        true,
	}

	if err := validateAttributes(e); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*OptionalExtra, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByIDs(ctx context.Context, ids []string) ([]*OptionalExtra, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*OptionalExtra, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*OptionalExtra, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwner(ctx, e.AccommodationID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.PriceType != nil {
		e.PriceType = *req.PriceType
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := validateAttributes(e); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireOwner(ctx, e.AccommodationID, actorID, isSysAdmin); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
