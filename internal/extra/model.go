package extra

import (
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "optional extra not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "extra name is required")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "extra price must not be negative")
	ErrInvalidPriceType = apperror.New(http.StatusBadRequest, "price type must be per_person or per_booking")
	ErrAccommodationRef = apperror.New(http.StatusNotFound, "accommodation not found")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you do not manage this accommodation")
	ErrInactive         = apperror.New(http.StatusConflict, "optional extra is not active")
)

// PriceType determines how an extra's price scales when added to a booking.
type PriceType string

const (
	// PricePerPerson charges the unit price once per guest, per unit of quantity.
	PricePerPerson PriceType = "per_person"
	// PricePerBooking charges the unit price once per unit of quantity.
	PricePerBooking PriceType = "per_booking"
)

func (t PriceType) Valid() bool {
	return t == PricePerPerson || t == PricePerBooking
}

// OptionalExtra is a purchasable add-on offered by an accommodation,
// such as breakfast or airport pickup.
type OptionalExtra struct {
	ID                string
	AccommodationID   string
	AccommodationName string
	Name              string
	Description       string
	Price             float64
	PriceType         PriceType
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Filter struct {
	AccommodationID string
	PriceType       PriceType
	IsActive        *bool
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}
