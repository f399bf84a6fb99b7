package http

import (
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/booking"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	AccommodationID string `form:"accommodation_id" binding:"omitempty,uuid"`
	RoomTypeID      string `form:"room_type_id" binding:"omitempty,uuid"`
	Status          string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=check_in check_out total_price created_at"`
}

type ExtraSelectionRequest struct {
	ExtraID  string `json:"extra_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1,max=100"`
}

type CreateBookingRequest struct {
	AccommodationID string                  `json:"accommodation_id" binding:"required,uuid"`
	RoomTypeID      string                  `json:"room_type_id" binding:"required,uuid"`
	CheckIn         string                  `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut        string                  `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests          int                     `json:"guests" binding:"required,gt=0"`
	RoomsBooked     int                     `json:"rooms_booked" binding:"required,gt=0"`
	Extras          []ExtraSelectionRequest `json:"extras" binding:"omitempty,dive"`
	SpecialRequest  string                  `json:"special_request"`
	PaymentStatus   string                  `json:"payment_status" binding:"omitempty,oneof=pending paid"`
}

// UpdateBookingRequest is a full edit; the accommodation is immutable.
type UpdateBookingRequest struct {
	RoomTypeID     string                  `json:"room_type_id" binding:"required,uuid"`
	CheckIn        string                  `json:"check_in" binding:"required,datetime=2006-01-02"`
	CheckOut       string                  `json:"check_out" binding:"required,datetime=2006-01-02"`
	Guests         int                     `json:"guests" binding:"required,gt=0"`
	RoomsBooked    int                     `json:"rooms_booked" binding:"required,gt=0"`
	Extras         []ExtraSelectionRequest `json:"extras" binding:"omitempty,dive"`
	SpecialRequest string                  `json:"special_request"`
}

type UpdateStatusesRequest struct {
	Status        *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=pending paid"`
}

type BookingExtraResponse struct {
	ExtraID    string  `json:"extra_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
}

type BookingResponse struct {
	ID                string                 `json:"id"`
	UserID            string                 `json:"user_id"`
	UserName          string                 `json:"user_name,omitempty"`
	AccommodationID   string                 `json:"accommodation_id"`
	AccommodationName string                 `json:"accommodation_name,omitempty"`
	RoomTypeID        string                 `json:"room_type_id"`
	RoomTypeName      string                 `json:"room_type_name"`
	CheckIn           string                 `json:"check_in"`
	CheckOut          string                 `json:"check_out"`
	Guests            int                    `json:"guests"`
	RoomsBooked       int                    `json:"rooms_booked"`
	Nights            int                    `json:"nights"`
	BasePriceTotal    float64                `json:"base_price_total"`
	ExtrasTotal       float64                `json:"extras_total"`
	Tax               float64                `json:"tax"`
	ServiceFee        float64                `json:"service_fee"`
	TotalPrice        float64                `json:"total_price"`
	Status            string                 `json:"status"`
	PaymentStatus     string                 `json:"payment_status"`
	SpecialRequest    string                 `json:"special_request,omitempty"`
	Extras            []BookingExtraResponse `json:"extras"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	extras := make([]BookingExtraResponse, len(b.Extras))
	for i, e := range b.Extras {
		extras[i] = BookingExtraResponse{
			ExtraID:    e.ExtraID,
			Name:       e.ExtraName,
			Quantity:   e.Quantity,
			TotalPrice: e.TotalPrice,
		}
	}
	return BookingResponse{
		ID:                b.ID,
		UserID:            b.UserID,
		UserName:          b.UserName,
		AccommodationID:   b.AccommodationID,
		AccommodationName: b.AccommodationName,
		RoomTypeID:        b.RoomTypeID,
		RoomTypeName:      b.RoomTypeName,
		CheckIn:           b.CheckIn.Format(dateLayout),
		CheckOut:          b.CheckOut.Format(dateLayout),
		Guests:            b.Guests,
		RoomsBooked:       b.RoomsBooked,
		Nights:            b.Nights,
		BasePriceTotal:    b.BasePriceTotal,
		ExtrasTotal:       b.ExtrasTotal,
		Tax:               b.Tax,
		ServiceFee:        b.ServiceFee,
		TotalPrice:        b.TotalPrice,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		SpecialRequest:    b.SpecialRequest,
		Extras:            extras,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

type PriceSummaryExtra struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

type PriceSummaryResponse struct {
	RoomType       string              `json:"room_type"`
	Nights         int                 `json:"nights"`
	Rooms          int                 `json:"rooms"`
	BasePriceTotal float64             `json:"base_price_total"`
	Extras         []PriceSummaryExtra `json:"extras"`
	ExtrasTotal    float64             `json:"extras_total"`
	Tax            float64             `json:"tax"`
	ServiceFee     float64             `json:"service_fee"`
	TotalPrice     float64             `json:"total_price"`
}

func NewPriceSummaryResponse(p *booking.Breakdown) PriceSummaryResponse {
	extras := make([]PriceSummaryExtra, len(p.Extras))
	for i, line := range p.Extras {
		extras[i] = PriceSummaryExtra{Name: line.Name, Quantity: line.Quantity, Total: line.Total}
	}
	return PriceSummaryResponse{
		RoomType:       p.RoomType,
		Nights:         p.Nights,
		Rooms:          p.Rooms,
		BasePriceTotal: p.BasePriceTotal,
		Extras:         extras,
		ExtrasTotal:    p.ExtrasTotal,
		Tax:            p.Tax,
		ServiceFee:     p.ServiceFee,
		TotalPrice:     p.TotalPrice,
	}
}

// BookingResultResponse is returned from create and update.
type BookingResultResponse struct {
	Booking      BookingResponse      `json:"booking"`
	PriceSummary PriceSummaryResponse `json:"price_summary"`
}

func NewBookingResultResponse(r *booking.Result) BookingResultResponse {
	return BookingResultResponse{
		Booking:      NewBookingResponse(r.Booking),
		PriceSummary: NewPriceSummaryResponse(r.Price),
	}
}
