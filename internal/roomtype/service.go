package roomtype

import (
	"context"
	"errors"
	"strings"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
)

// CreateRequest carries data to create a room type.
type CreateRequest struct {
	AccommodationID string
	Name            string
	Description     string
	PricePerNight   float64
	TotalRooms      int
	MaxGuests       int
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name          *string
	Description   *string
	PricePerNight *float64
	TotalRooms    *int
	MaxGuests     *int
	IsActive      *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actorID string, isSysAdmin bool) (*RoomType, error)
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*RoomType, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
}

type service struct {
	repo       Repository
	accService accommodation.Service
}

func NewService(repo Repository, accService accommodation.Service) Service {
	return &service{repo: repo, accService: accService}
}

func validateAttributes(rt *RoomType) error {
	if strings.TrimSpace(rt.Name) == "" {
		return ErrNameRequired
	}
	if rt.PricePerNight <= 0 {
		return ErrInvalidPrice
	}
	if rt.TotalRooms <= 0 {
		return ErrInvalidTotalRooms
	}
	if rt.MaxGuests <= 0 {
		return ErrInvalidMaxGuests
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

func (s *service) Create(ctx context.Context, req CreateRequest, actorID string, isSysAdmin bool) (*RoomType, error) {
	if err := s.requireOwner(ctx, req.AccommodationID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	rt := &RoomType{
		AccommodationID: req.AccommodationID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		PricePerNight:   req.PricePerNight,
		TotalRooms:      req.TotalRooms,
		MaxGuests:       req.MaxGuests,
		IsActive:        true,
	}

	if err := validateAttributes(rt); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*RoomType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireOwner(ctx, rt.AccommodationID, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	if req.Name != nil {
		rt.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		rt.Description = *req.Description
	}
	if req.PricePerNight != nil {
		rt.PricePerNight = *req.PricePerNight
	}
	if req.TotalRooms != nil {
		rt.TotalRooms = *req.TotalRooms
	}
	if req.MaxGuests != nil {
		rt.MaxGuests = *req.MaxGuests
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := validateAttributes(rt); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, rt.AccommodationID, actorID, isSysAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
