package http

import (
	"time"

	accHttp "github.com/dipika-maharjan/tripwise-backend/internal/accommodation/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
)

// ListExtrasRequest defines query parameters for listing optional extras.
type ListExtrasRequest struct {
	request.ListParams
	AccommodationID string `form:"accommodation_id" binding:"omitempty,uuid"`
	PriceType       string `form:"price_type" binding:"omitempty,oneof=per_person per_booking"`
	IsActive        *bool  `form:"is_active"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=name price created_at"`
}

type ExtraResponse struct {
	ID            string                   `json:"id"`
	Accommodation accHttp.AccommodationTag `json:"accommodation"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Price         float64                  `json:"price"`
	PriceType     string                   `json:"price_type"`
	IsActive      bool                     `json:"is_active"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func NewExtraResponse(e *extra.OptionalExtra) ExtraResponse {
	return ExtraResponse{
		ID:            e.ID,
		Accommodation: accHttp.AccommodationTag{ID: e.AccommodationID, Name: e.AccommodationName},
		Name:          e.Name,
		Description:   e.Description,
		Price:         e.Price,
		PriceType:     string(e.PriceType),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type CreateExtraRequest struct {
	AccommodationID string  `json:"accommodation_id" binding:"required,uuid"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"gte=0"`
	PriceType       string  `json:"price_type" binding:"required,oneof=per_person per_booking"`
}

type UpdateExtraRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	PriceType   *string  `json:"price_type" binding:"omitempty,oneof=per_person per_booking"`
	IsActive    *bool    `json:"is_active"`
}
