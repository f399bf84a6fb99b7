package review

import (
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "review not found")
	ErrAccommodationRef = apperror.New(http.StatusNotFound, "accommodation not found")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrAlreadyReviewed  = apperror.New(http.StatusConflict, "you have already reviewed this accommodation")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you do not have access to this review")
)

// Review is a user's rating of an accommodation. One review per user
// per accommodation.
type Review struct {
	ID                string
	UserID            string
	UserName          string
	AccommodationID   string
	AccommodationName string
	Rating            int
	Comment           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Filter struct {
	AccommodationID string
	UserID          string
	Page            int
	PageSize        int
	SortOrder       string
}
