package http

import (
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	userHttp "github.com/dipika-maharjan/tripwise-backend/internal/user/http"
)

// ListAccommodationsRequest defines query parameters for listing accommodations.
type ListAccommodationsRequest struct {
	request.ListParams
	OwnerID  string `form:"owner_id" binding:"omitempty,uuid"`
	City     string `form:"city"`
	Keyword  string `form:"keyword"`
	IsActive *bool  `form:"is_active"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=name city created_at"`
}

type AccommodationResponse struct {
	ID          string           `json:"id"`
	Owner       userHttp.UserTag `json:"owner"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Address     string           `json:"address"`
	City        string           `json:"city"`
	PhotoPaths  []string         `json:"photo_paths"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// AccommodationTag is a brief representation embedded in other responses.
type AccommodationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewAccommodationResponse(a *accommodation.Accommodation) AccommodationResponse {
	photos := a.PhotoPaths
	if photos == nil {
		photos = []string{}
	}
	return AccommodationResponse{
		ID:          a.ID,
		Owner:       userHttp.UserTag{ID: a.OwnerID, Name: a.OwnerName},
		Name:        a.Name,
		Description: a.Description,
		Address:     a.Address,
		City:        a.City,
		PhotoPaths:  photos,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type CreateAccommodationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city"`
}

type UpdateAccommodationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	IsActive    *bool   `json:"is_active"`
}
