package review

import (
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
)

type mockRepository struct{ mock.Mock }

func (m *mockRepository) Create(ctx context.Context, rv *Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*Review), args.Int(1), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, rv *Review) error {
	return m.Called(ctx, rv).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) AverageRating(ctx context.Context, accommodationID string) (float64, int, error) {
	args := m.Called(ctx, accommodationID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type mockAccService struct{ mock.Mock }

func (m *mockAccService) Create(ctx context.Context, req accommodation.CreateRequest) (*accommodation.Accommodation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(*accommodation.Accommodation), args.Error(1)
}

func (m *mockAccService) GetByID(ctx context.Context, id string) (*accommodation.Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accommodation.Accommodation), args.Error(1)
}

func (m *mockAccService) List(ctx context.Context, filter accommodation.Filter) ([]*accommodation.Accommodation, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*accommodation.Accommodation), args.Int(1), args.Error(2)
}

func (m *mockAccService) Update(ctx context.Context, id string, req accommodation.UpdateRequest, actorID string, isSysAdmin bool) (*accommodation.Accommodation, error) {
	args := m.Called(ctx, id, req, actorID, isSysAdmin)
	return args.Get(0).(*accommodation.Accommodation), args.Error(1)
}

func (m *mockAccService) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	return m.Called(ctx, id, actorID, isSysAdmin).Error(0)
}

func (m *mockAccService) AddPhoto(ctx context.Context, id string, header *multipart.FileHeader, actorID string, isSysAdmin bool) (*accommodation.Accommodation, error) {
	args := m.Called(ctx, id, header, actorID, isSysAdmin)
	return args.Get(0).(*accommodation.Accommodation), args.Error(1)
}

func (m *mockAccService) Photo(ctx context.Context, id string, photoName string) (io.ReadCloser, error) {
	args := m.Called(ctx, id, photoName)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

const (
	accID    = "11111111-1111-1111-1111-111111111111"
	authorID = "22222222-2222-2222-2222-222222222222"
)

func newService(t *testing.T) (Service, *mockRepository, *mockAccService) {
	t.Helper()
	repo := new(mockRepository)
	acc := new(mockAccService)
	return NewService(repo, acc), repo, acc
}

func TestCreateReview(t *testing.T) {
	svc, repo, acc := newService(t)

	acc.On("GetByID", mock.Anything, accID).Return(&accommodation.Accommodation{ID: accID, IsActive: true}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).Return(nil)

	rv, err := svc.Create(context.Background(), CreateRequest{
		AccommodationID: accID,
		Rating:          4,
		Comment:         "  great stay  ",
	}, authorID)
	require.NoError(t, err)

	assert.Equal(t, 4, rv.Rating)
	assert.Equal(t, "great stay", rv.Comment)
	assert.Equal(t, authorID, rv.UserID)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateRequest{AccommodationID: accID, Rating: 0}, authorID)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(context.Background(), CreateRequest{AccommodationID: accID, Rating: 6}, authorID)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestCreateReviewDuplicate(t *testing.T) {
	svc, repo, acc := newService(t)

	acc.On("GetByID", mock.Anything, accID).Return(&accommodation.Accommodation{ID: accID, IsActive: true}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*review.Review")).Return(ErrAlreadyReviewed)

	_, err := svc.Create(context.Background(), CreateRequest{AccommodationID: accID, Rating: 5}, authorID)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestUpdateReviewPermission(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.On("GetByID", mock.Anything, "rv-1").Return(&Review{ID: "rv-1", UserID: authorID, Rating: 3}, nil)

	rating := 5
	_, err := svc.Update(context.Background(), "rv-1", UpdateRequest{Rating: &rating}, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteReviewAsSysAdmin(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.On("GetByID", mock.Anything, "rv-1").Return(&Review{ID: "rv-1", UserID: authorID}, nil)
	repo.On("Delete", mock.Anything, "rv-1").Return(nil)

	err := svc.Delete(context.Background(), "rv-1", "admin-user", true)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRatingSummary(t *testing.T) {
	svc, repo, acc := newService(t)

	acc.On("GetByID", mock.Anything, accID).Return(&accommodation.Accommodation{ID: accID, IsActive: true}, nil)
	repo.On("AverageRating", mock.Anything, accID).Return(4.25, 8, nil)

	summary, err := svc.Summary(context.Background(), accID)
	require.NoError(t, err)

	assert.Equal(t, 4.25, summary.Average)
	assert.Equal(t, 8, summary.Count)
}
