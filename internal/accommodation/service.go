package accommodation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/logger"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/storage"
)

// CreateRequest carries data to create an accommodation.
type CreateRequest struct {
	OwnerID     string
	Name        string
	Description string
	Address     string
	City        string
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Accommodation, error)
	GetByID(ctx context.Context, id string) (*Accommodation, error)
	List(ctx context.Context, filter Filter) ([]*Accommodation, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Accommodation, error)
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
	AddPhoto(ctx context.Context, id string, header *multipart.FileHeader, actorID string, isSysAdmin bool) (*Accommodation, error)
	Photo(ctx context.Context, id string, photoName string) (io.ReadCloser, error)
}

const (
	thumbWidth  = 400
	thumbHeight = 300
	thumbSuffix = "_thumb.jpg"
)

// thumbPath derives the thumbnail path from a full photo path.
func thumbPath(path string) string {
	return strings.TrimSuffix(path, ".jpg") + thumbSuffix
}

type service struct {
	repo    Repository
	storage storage.Storage
	photos  *storage.PhotoProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		photos:  storage.NewPhotoProcessor(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Accommodation, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrAddressRequired
	}

	a := &Accommodation{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		PhotoPaths:  []string{},
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Accommodation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Accommodation, int, error) {
	return s.repo.List(ctx, filter)
}

// requireManageable loads the accommodation and checks the actor may
// mutate it (owner or system admin).
func (s *service) requireManageable(ctx context.Context, id, actorID string, isSysAdmin bool) (*Accommodation, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && a.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Accommodation, error) {
	a, err := s.requireManageable(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Address != nil {
		if strings.TrimSpace(*req.Address) == "" {
			return nil, ErrAddressRequired
		}
		a.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		a.City = strings.TrimSpace(*req.City)
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	a, err := s.requireManageable(ctx, id, actorID, isSysAdmin)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort: stored photos are orphaned once the row is gone.
	for _, path := range a.PhotoPaths {
		for _, p := range []string{path, thumbPath(path)} {
			if err := s.storage.Delete(ctx, p); err != nil {
				logger.L().Warn("failed to delete accommodation photo",
					zap.String("accommodation_id", id),
					zap.String("path", p),
					zap.Error(err))
			}
		}
	}
	return nil
}

func (s *service) AddPhoto(ctx context.Context, id string, header *multipart.FileHeader, actorID string, isSysAdmin bool) (*Accommodation, error) {
	if _, err := s.requireManageable(ctx, id, actorID, isSysAdmin); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	rendition, err := s.photos.Rendition(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to process photo: %w", err)
	}

	photoID := uuid.New().String()
	path := fmt.Sprintf("accommodations/%s/%s.jpg", id, photoID)
	if err := s.storage.Save(ctx, path, rendition); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	// Small rendition for list views, stored next to the original.
	thumb, err := s.photos.Thumbnail(bytes.NewReader(raw), thumbWidth, thumbHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to process thumbnail: %w", err)
	}
	if err := s.storage.Save(ctx, thumbPath(path), thumb); err != nil {
		return nil, fmt.Errorf("failed to save thumbnail: %w", err)
	}

	if err := s.repo.AddPhoto(ctx, id, path); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Photo serves a stored photo or its thumbnail. Only names whose full
// rendition is recorded on the accommodation are served.
func (s *service) Photo(ctx context.Context, id string, photoName string) (io.ReadCloser, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("accommodations/%s/%s", id, photoName)
	listed := path
	if strings.HasSuffix(path, thumbSuffix) {
		listed = strings.TrimSuffix(path, thumbSuffix) + ".jpg"
	}
	for _, p := range a.PhotoPaths {
		if p == listed {
			return s.storage.Get(ctx, path)
		}
	}
	return nil, ErrPhotoNotFound
}
