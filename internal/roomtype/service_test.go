package roomtype

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

func (m *mockRepository) Create(ctx context.Context, rt *RoomType) error {
	return m.Called(ctx, rt).Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RoomType), args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*RoomType), args.Int(1), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, rt *RoomType) error {
	return m.Called(ctx, rt).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
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
	accID   = "11111111-1111-1111-1111-111111111111"
	ownerID = "22222222-2222-2222-2222-222222222222"
)

func newService(t *testing.T) (Service, *mockRepository, *mockAccService) {
	t.Helper()
	repo := new(mockRepository)
	acc := new(mockAccService)
	return NewService(repo, acc), repo, acc
}

func ownedAccommodation() *accommodation.Accommodation {
	return &accommodation.Accommodation{ID: accID, OwnerID: ownerID, Name: "Lakeside Lodge", IsActive: true}
}

func TestCreateRoomType(t *testing.T) {
	svc, repo, acc := newService(t)

	acc.On("GetByID", mock.Anything, accID).Return(ownedAccommodation(), nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*roomtype.RoomType")).Return(nil)

	rt, err := svc.Create(context.Background(), CreateRequest{
		AccommodationID: accID,
		Name:            "Deluxe Double",
		PricePerNight:   120,
		TotalRooms:      4,
		MaxGuests:       2,
	}, ownerID, false)
	require.NoError(t, err)

	assert.True(t, rt.IsActive)
	assert.Equal(t, "Deluxe Double", rt.Name)
	repo.AssertExpectations(t)
}

func TestCreateRoomTypeInvalidAttributes(t *testing.T) {
	svc, _, acc := newService(t)
	acc.On("GetByID", mock.Anything, accID).Return(ownedAccommodation(), nil)

	cases := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"empty name", CreateRequest{AccommodationID: accID, Name: "  ", PricePerNight: 100, TotalRooms: 1, MaxGuests: 1}, ErrNameRequired},
		{"zero price", CreateRequest{AccommodationID: accID, Name: "Single", PricePerNight: 0, TotalRooms: 1, MaxGuests: 1}, ErrInvalidPrice},
		{"zero rooms", CreateRequest{AccommodationID: accID, Name: "Single", PricePerNight: 100, TotalRooms: 0, MaxGuests: 1}, ErrInvalidTotalRooms},
		{"zero guests", CreateRequest{AccommodationID: accID, Name: "Single", PricePerNight: 100, TotalRooms: 1, MaxGuests: 0}, ErrInvalidMaxGuests},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.req, ownerID, false)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateRoomTypePermission(t *testing.T) {
	svc, _, acc := newService(t)
	acc.On("GetByID", mock.Anything, accID).Return(ownedAccommodation(), nil)

	req := CreateRequest{AccommodationID: accID, Name: "Single", PricePerNight: 100, TotalRooms: 1, MaxGuests: 1}

	_, err := svc.Create(context.Background(), req, "not-the-owner", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateRoomTypeSysAdminBypassesOwnership(t *testing.T) {
	svc, repo, acc := newService(t)
	acc.On("GetByID", mock.Anything, accID).Return(ownedAccommodation(), nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*roomtype.RoomType")).Return(nil)

	req := CreateRequest{AccommodationID: accID, Name: "Single", PricePerNight: 100, TotalRooms: 1, MaxGuests: 1}

	_, err := svc.Create(context.Background(), req, "admin-user", true)
	assert.NoError(t, err)
}

func TestCreateRoomTypeMissingAccommodation(t *testing.T) {
	svc, _, acc := newService(t)
	acc.On("GetByID", mock.Anything, accID).Return(nil, accommodation.ErrNotFound)

	req := CreateRequest{AccommodationID: accID, Name: "Single", PricePerNight: 100, TotalRooms: 1, MaxGuests: 1}

	_, err := svc.Create(context.Background(), req, ownerID, false)
	assert.ErrorIs(t, err, ErrAccommodationRef)
}

func TestUpdateRoomTypePartialFields(t *testing.T) {
	svc, repo, acc := newService(t)

	existing := &RoomType{
		ID:              "rt-1",
		AccommodationID: accID,
		Name:            "Deluxe Double",
		PricePerNight:   120,
		TotalRooms:      4,
		MaxGuests:       2,
		IsActive:        true,
	}
	repo.On("GetByID", mock.Anything, "rt-1").Return(existing, nil)
	acc.On("GetByID", mock.Anything, accID).Return(ownedAccommodation(), nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*roomtype.RoomType")).Return(nil)

	newPrice := 150.0
	rt, err := svc.Update(context.Background(), "rt-1", UpdateRequest{PricePerNight: &newPrice}, ownerID, false)
	require.NoError(t, err)

	assert.Equal(t, 150.0, rt.PricePerNight)
	assert.Equal(t, "Deluxe Double", rt.Name)
	assert.Equal(t, 4, rt.TotalRooms)
}
