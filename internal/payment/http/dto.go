package http

import (
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/payment"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
)

// ListPaymentsRequest defines query parameters for listing payments.
type ListPaymentsRequest struct {
	request.ListParams
	BookingID string `form:"booking_id" binding:"omitempty,uuid"`
}

type PaymentResponse struct {
	ID             string    `json:"id"`
	BookingID      string    `json:"booking_id"`
	UserID         string    `json:"user_id"`
	Amount         float64   `json:"amount"`
	Method         string    `json:"method"`
	TransactionRef string    `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		BookingID:      p.BookingID,
		UserID:         p.UserID,
		Amount:         p.Amount,
		Method:         string(p.Method),
		TransactionRef: p.TransactionRef,
		CreatedAt:      p.CreatedAt,
	}
}

type RecordPaymentRequest struct {
	BookingID      string  `json:"booking_id" binding:"required,uuid"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Method         string  `json:"method" binding:"required,oneof=card wallet bank_transfer"`
	TransactionRef string  `json:"transaction_ref"`
}
