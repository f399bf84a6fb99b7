package payment

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/dipika-maharjan/tripwise-backend/internal/booking"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/logger"
)

// RecordRequest carries a confirmed payment callback for a booking.
type RecordRequest struct {
	BookingID      string
	Amount         float64
	Method         Method
	TransactionRef string
}

type Service interface {
	// Record stores the payment and marks the booking paid and confirmed.
	Record(ctx context.Context, req RecordRequest, actorID string, isSysAdmin bool) (*Payment, error)
	GetByID(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Payment, error)
	List(ctx context.Context, filter Filter, actorID string, isSysAdmin bool) ([]*Payment, int, error)
}

type service struct {
	repo           Repository
	bookingService booking.Service
}

func NewService(repo Repository, bookingService booking.Service) Service {
	return &service{repo: repo, bookingService: bookingService}
}

func (s *service) Record(ctx context.Context, req RecordRequest, actorID string, isSysAdmin bool) (*Payment, error) {
	b, err := s.bookingService.GetByID(ctx, req.BookingID, actorID, isSysAdmin)
	if err != nil {
		return nil, err
	}

	if b.Status == booking.StatusCancelled {
		return nil, ErrBookingCancelled
	}
	if b.PaymentStatus == booking.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if math.Abs(req.Amount-b.TotalPrice) >= 0.01 {
		return nil, ErrAmountMismatch
	}

	p := &Payment{
		BookingID:      b.ID,
		UserID:         b.UserID,
		Amount:         req.Amount,
		Method:         req.Method,
		TransactionRef: req.TransactionRef,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	confirmed := booking.StatusConfirmed
	paid := booking.PaymentPaid
	if err := s.bookingService.UpdateStatuses(ctx, b.ID, booking.StatusUpdate{
		Status:        &confirmed,
		PaymentStatus: &paid,
	}); err != nil {
		// The payment row exists but the booking was not flipped; surface
		// the failure so the caller can retry the status update.
		logger.L().Error("booking status update after payment failed",
			zap.String("booking_id", b.ID),
			zap.String("payment_id", p.ID),
			zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && p.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	return p, nil
}

func (s *service) List(ctx context.Context, filter Filter, actorID string, isSysAdmin bool) ([]*Payment, int, error) {
	if !isSysAdmin {
		filter.UserID = actorID
	}
	return s.repo.List(ctx, filter)
}
