package payment

import (
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "payment not found")
	ErrBookingRef       = apperror.New(http.StatusNotFound, "booking not found")
	ErrAlreadyPaid      = apperror.New(http.StatusConflict, "booking is already paid")
	ErrBookingCancelled = apperror.New(http.StatusConflict, "cannot pay for a cancelled booking")
	ErrAmountMismatch   = apperror.New(http.StatusBadRequest, "payment amount does not match the booking total")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you do not have access to this payment")
)

// Method is the payment channel used.
type Method string

const (
	MethodCard     Method = "card"
	MethodWallet   Method = "wallet"
	MethodTransfer Method = "bank_transfer"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodWallet, MethodTransfer:
		return true
	}
	return false
}

// Payment records a successful payment against a booking. Recording it
// marks the booking paid and confirmed.
type Payment struct {
	ID             string
	BookingID      string
	UserID         string
	Amount         float64
	Method         Method
	TransactionRef string
	CreatedAt      time.Time
}

type Filter struct {
	BookingID string
	UserID    string
	Page      int
	PageSize  int
}
