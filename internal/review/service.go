package review

import (
	"context"
	"errors"
	"strings"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
)

// CreateRequest carries data to create a review.
type CreateRequest struct {
	AccommodationID string
	Rating          int
	Comment         string
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Rating  *int
	Comment *string
}

// RatingSummary is the aggregate rating of an accommodation.
type RatingSummary struct {
	AccommodationID string
	Average         float64
	Count           int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, userID string) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Review, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
	Summary(ctx context.Context, accommodationID string) (*RatingSummary, error)
}

type service struct {
	repo       Repository
	accService accommodation.Service
}

func NewService(repo Repository, accService accommodation.Service) Service {
	return &service{repo: repo, accService: accService}
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

func (s *service) Create(ctx context.Context, req CreateRequest, userID string) (*Review, error) {
	if !validRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	if _, err := s.accService.GetByID(ctx, req.AccommodationID); err != nil {
		if errors.Is(err, accommodation.ErrNotFound) {
			return nil, ErrAccommodationRef
		}
		return nil, err
	}

	rv := &Review{
		UserID:          userID,
		AccommodationID: req.AccommodationID,
		Rating:          req.Rating,
		Comment:         strings.TrimSpace(req.Comment),
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && rv.UserID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Rating != nil {
		if !validRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = strings.TrimSpace(*req.Comment)
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isSysAdmin && rv.UserID != actorID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Summary(ctx context.Context, accommodationID string) (*RatingSummary, error) {
	if _, err := s.accService.GetByID(ctx, accommodationID); err != nil {
		if errors.Is(err, accommodation.ErrNotFound) {
			return nil, ErrAccommodationRef
		}
		return nil, err
	}

	avg, count, err := s.repo.AverageRating(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	return &RatingSummary{AccommodationID: accommodationID, Average: avg, Count: count}, nil
}
