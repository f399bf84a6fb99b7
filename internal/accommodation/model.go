package accommodation

import (
	"net/http"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "accommodation not found")
	ErrPhotoNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrInactive         = apperror.New(http.StatusConflict, "accommodation is not active")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrAddressRequired  = apperror.New(http.StatusBadRequest, "address is required")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Accommodation represents a lodging property (hotel, homestay, lodge)
// listed on the platform.
type Accommodation struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Name        string
	Description string
	Address     string
	City        string
	PhotoPaths  []string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing accommodations.
type Filter struct {
	OwnerID   string
	City      string
	Keyword   string // Search in Name or Address
	IsActive  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
