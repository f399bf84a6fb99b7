package http

import (
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/request"
	"github.com/dipika-maharjan/tripwise-backend/internal/review"
)

// ListReviewsRequest defines query parameters for listing reviews.
type ListReviewsRequest struct {
	request.ListParams
	AccommodationID string `form:"accommodation_id" binding:"omitempty,uuid"`
	UserID          string `form:"user_id" binding:"omitempty,uuid"`
}

type ReviewResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	UserName          string    `json:"user_name,omitempty"`
	AccommodationID   string    `json:"accommodation_id"`
	AccommodationName string    `json:"accommodation_name,omitempty"`
	Rating            int       `json:"rating"`
	Comment           string    `json:"comment"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:                rv.ID,
		UserID:            rv.UserID,
		UserName:          rv.UserName,
		AccommodationID:   rv.AccommodationID,
		AccommodationName: rv.AccommodationName,
		Rating:            rv.Rating,
		Comment:           rv.Comment,
		CreatedAt:         rv.CreatedAt,
		UpdatedAt:         rv.UpdatedAt,
	}
}

type CreateReviewRequest struct {
	AccommodationID string `json:"accommodation_id" binding:"required,uuid"`
	Rating          int    `json:"rating" binding:"required,min=1,max=5"`
	Comment         string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

type RatingSummaryResponse struct {
	AccommodationID string  `json:"accommodation_id"`
	Average         float64 `json:"average"`
	Count           int     `json:"count"`
}
