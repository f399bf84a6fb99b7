package booking

import (
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "booking not found")
	ErrAccommodationRef      = apperror.New(http.StatusNotFound, "accommodation not found")
	ErrRoomTypeRef           = apperror.New(http.StatusNotFound, "room type not found")
	ErrExtraRef              = apperror.New(http.StatusNotFound, "optional extra not found")
	ErrAccommodationInactive = apperror.New(http.StatusConflict, "accommodation is not active")
	ErrRoomTypeInactive      = apperror.New(http.StatusConflict, "room type is not active")
	ErrExtraInactive         = apperror.New(http.StatusConflict, "optional extra is not active")
	ErrRoomTypeMismatch      = apperror.New(http.StatusBadRequest, "room type does not belong to the accommodation")
	ErrExtraMismatch         = apperror.New(http.StatusBadRequest, "optional extra does not belong to the accommodation")
	ErrCheckInPast           = apperror.New(http.StatusBadRequest, "check-in date must not be in the past")
	ErrInvalidDateRange      = apperror.New(http.StatusBadRequest, "check-out date must be after check-in date")
	ErrGuestCapacity         = apperror.New(http.StatusBadRequest, "guest count exceeds the capacity of the booked rooms")
	ErrQuantityRange         = apperror.New(http.StatusBadRequest, "extra quantity must be between 1 and 100")
	ErrInvalidStatus         = apperror.New(http.StatusBadRequest, "invalid booking or payment status")
	ErrCapacity              = apperror.New(http.StatusConflict, "not enough rooms available for the requested dates")
	ErrDuplicateBooking      = apperror.New(http.StatusConflict, "you already have a booking at this accommodation for overlapping dates")
	ErrNotCancellable        = apperror.New(http.StatusConflict, "booking can no longer be cancelled")
	ErrNotEditable           = apperror.New(http.StatusConflict, "booking can no longer be modified")
	ErrPermissionDenied      = apperror.New(http.StatusForbidden, "you do not have access to this booking")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further cancel/edit
// operations. The admin status-update path is not bound by this.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// PaymentStatus tracks whether a booking has been paid for.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// Booking is a reservation of one or more rooms of a room type for a
// half-open [CheckIn, CheckOut) date range. All monetary fields are
// computed once at admission time and stored.
type Booking struct {
	ID                string
	UserID            string
	UserName          string
	AccommodationID   string
	AccommodationName string
	RoomTypeID        string
	RoomTypeName      string
	CheckIn           time.Time
	CheckOut          time.Time
	Guests            int
	RoomsBooked       int
	Nights            int
	BasePriceTotal    float64
	ExtrasTotal       float64
	Tax               float64
	ServiceFee        float64
	TotalPrice        float64
	Status            Status
	PaymentStatus     PaymentStatus
	SpecialRequest    string
	Extras            []BookingExtra
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BookingExtra is a line item owned by a booking. TotalPrice is a
// snapshot taken when the line was created; later changes to the
// underlying extra's price never alter it.
type BookingExtra struct {
	ID         string
	BookingID  string
	ExtraID    string
	ExtraName  string
	Quantity   int
	TotalPrice float64
}

type Filter struct {
	UserID          string
	AccommodationID string
	RoomTypeID      string
	Status          Status
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       string
}
