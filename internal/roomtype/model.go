package roomtype

import (
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "room type not found")
	ErrInactive          = apperror.New(http.StatusConflict, "room type is not active")
	ErrNameRequired      = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidPrice      = apperror.New(http.StatusBadRequest, "price per night must be positive")
	ErrInvalidTotalRooms = apperror.New(http.StatusBadRequest, "total rooms must be positive")
	ErrInvalidMaxGuests  = apperror.New(http.StatusBadRequest, "max guests must be positive")
	ErrAccommodationRef  = apperror.New(http.StatusNotFound, "accommodation not found")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// RoomType represents a bookable room category of an accommodation
// (e.g. Deluxe Double). TotalRooms is the hard ceiling for the sum of
// rooms committed to overlapping reservations.
type RoomType struct {
	ID                string
	AccommodationID   string
	AccommodationName string
	Name              string
	Description       string
	PricePerNight     float64
	TotalRooms        int
	MaxGuests         int // per room
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Filter defines parameters for listing room types.
type Filter struct {
	AccommodationID string
	IsActive        *bool
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}
