package http

import (
	"time"

	accHttp "github.com/dipika-maharjan/tripwise-backend/internal/accommodation/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	"github.com/dipika-maharjan/tripwise-backend/internal/roomtype"
)

// ListRoomTypesRequest defines query parameters for listing room types.
type ListRoomTypesRequest struct {
	request.ListParams
	AccommodationID string `form:"accommodation_id" binding:"omitempty,uuid"`
	IsActive        *bool  `form:"is_active"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=name price_per_night created_at"`
}

type RoomTypeResponse struct {
	ID            string                   `json:"id"`
	Accommodation accHttp.AccommodationTag `json:"accommodation"`
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	PricePerNight float64                  `json:"price_per_night"`
	TotalRooms    int                      `json:"total_rooms"`
	MaxGuests     int                      `json:"max_guests"`
	IsActive      bool                     `json:"is_active"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func NewRoomTypeResponse(rt *roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:            rt.ID,
		Accommodation: accHttp.AccommodationTag{ID: rt.AccommodationID, Name: rt.AccommodationName},
		Name:          rt.Name,
		Description:   rt.Description,
		PricePerNight: rt.PricePerNight,
		TotalRooms:    rt.TotalRooms,
		MaxGuests:     rt.MaxGuests,
		IsActive:      rt.IsActive,
		CreatedAt:     rt.CreatedAt,
		UpdatedAt:     rt.UpdatedAt,
	}
}

type CreateRoomTypeRequest struct {
	AccommodationID string  `json:"accommodation_id" binding:"required,uuid"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	PricePerNight   float64 `json:"price_per_night" binding:"required,gt=0"`
	TotalRooms      int     `json:"total_rooms" binding:"required,gt=0"`
	MaxGuests       int     `json:"max_guests" binding:"required,gt=0"`
}

type UpdateRoomTypeRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	PricePerNight *float64 `json:"price_per_night" binding:"omitempty,gt=0"`
	TotalRooms    *int     `json:"total_rooms" binding:"omitempty,gt=0"`
	MaxGuests     *int     `json:"max_guests" binding:"omitempty,gt=0"`
	IsActive      *bool    `json:"is_active"`
}
