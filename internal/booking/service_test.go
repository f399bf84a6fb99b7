package booking

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/lock"
	"github.com/dipika-maharjan/tripwise-backend/internal/roomtype"
)

// fakeRepo is an in-memory Repository so availability sums reflect
// previously admitted bookings.
type fakeRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*Booking)}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = fmt.Sprintf("booking-%d", r.seq)
	for i := range b.Extras {
		b.Extras[i].BookingID = b.ID
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		clone := *b
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) UpdateStatuses(_ context.Context, id string, status *Status, paymentStatus *PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	if status != nil {
		b.Status = *status
	}
	if paymentStatus != nil {
		b.PaymentStatus = *paymentStatus
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) SumOverlappingRooms(_ context.Context, roomTypeID string, checkIn, checkOut time.Time, excludeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := 0
	for _, b := range r.bookings {
		if b.RoomTypeID != roomTypeID || b.Status == StatusCancelled || b.ID == excludeID {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			sum += b.RoomsBooked
		}
	}
	return sum, nil
}

func (r *fakeRepo) UserHasOverlap(_ context.Context, userID, accommodationID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID != userID || b.AccommodationID != accommodationID || b.Status == StatusCancelled || b.ID == excludeID {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
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

type mockRoomTypeService struct{ mock.Mock }

func (m *mockRoomTypeService) Create(ctx context.Context, req roomtype.CreateRequest, actorID string, isSysAdmin bool) (*roomtype.RoomType, error) {
	args := m.Called(ctx, req, actorID, isSysAdmin)
	return args.Get(0).(*roomtype.RoomType), args.Error(1)
}

func (m *mockRoomTypeService) GetByID(ctx context.Context, id string) (*roomtype.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*roomtype.RoomType), args.Error(1)
}

func (m *mockRoomTypeService) List(ctx context.Context, filter roomtype.Filter) ([]*roomtype.RoomType, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*roomtype.RoomType), args.Int(1), args.Error(2)
}

func (m *mockRoomTypeService) Update(ctx context.Context, id string, req roomtype.UpdateRequest, actorID string, isSysAdmin bool) (*roomtype.RoomType, error) {
	args := m.Called(ctx, id, req, actorID, isSysAdmin)
	return args.Get(0).(*roomtype.RoomType), args.Error(1)
}

func (m *mockRoomTypeService) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	return m.Called(ctx, id, actorID, isSysAdmin).Error(0)
}

type mockExtraService struct{ mock.Mock }

func (m *mockExtraService) Create(ctx context.Context, req extra.CreateRequest, actorID string, isSysAdmin bool) (*extra.OptionalExtra, error) {
	args := m.Called(ctx, req, actorID, isSysAdmin)
	return args.Get(0).(*extra.OptionalExtra), args.Error(1)
}

func (m *mockExtraService) GetByID(ctx context.Context, id string) (*extra.OptionalExtra, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extra.OptionalExtra), args.Error(1)
}

func (m *mockExtraService) GetByIDs(ctx context.Context, ids []string) ([]*extra.OptionalExtra, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*extra.OptionalExtra), args.Error(1)
}

func (m *mockExtraService) List(ctx context.Context, filter extra.Filter) ([]*extra.OptionalExtra, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*extra.OptionalExtra), args.Int(1), args.Error(2)
}

func (m *mockExtraService) Update(ctx context.Context, id string, req extra.UpdateRequest, actorID string, isSysAdmin bool) (*extra.OptionalExtra, error) {
	args := m.Called(ctx, id, req, actorID, isSysAdmin)
	return args.Get(0).(*extra.OptionalExtra), args.Error(1)
}

func (m *mockExtraService) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	return m.Called(ctx, id, actorID, isSysAdmin).Error(0)
}

const (
	testAccID  = "11111111-1111-1111-1111-111111111111"
	testRoomID = "22222222-2222-2222-2222-222222222222"
	testUserID = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	repo    *fakeRepo
	acc     *mockAccService
	rt      *mockRoomTypeService
	extras  *mockExtraService
	service Service
}

func newFixture(t *testing.T, totalRooms, maxGuests int) *fixture {
	t.Helper()

	repo := newFakeRepo()
	acc := new(mockAccService)
	rt := new(mockRoomTypeService)
	extras := new(mockExtraService)

	acc.On("GetByID", mock.Anything, testAccID).Return(&accommodation.Accommodation{
		ID:       testAccID,
		OwnerID:  "owner",
		Name:     "Lakeside Lodge",
		IsActive: true,
	}, nil)
	rt.On("GetByID", mock.Anything, testRoomID).Return(&roomtype.RoomType{
		ID:              testRoomID,
		AccommodationID: testAccID,
		Name:            "Deluxe Double",
		PricePerNight:   100,
		TotalRooms:      totalRooms,
		MaxGuests:       maxGuests,
		IsActive:        true,
	}, nil)

	return &fixture{
		repo:    repo,
		acc:     acc,
		rt:      rt,
		extras:  extras,
		service: NewService(repo, acc, rt, extras, lock.NewMemoryProvider(), 13, 0),
	}
}

func futureDate(days int) time.Time {
	return dateOnly(time.Now().AddDate(0, 0, days))
}

func createReq(user string, checkInDays, checkOutDays, guests, rooms int) CreateRequest {
	return CreateRequest{
		AccommodationID: testAccID,
		RoomTypeID:      testRoomID,
		CheckIn:         futureDate(checkInDays),
		CheckOut:        futureDate(checkOutDays),
		Guests:          guests,
		RoomsBooked:     rooms,
	}
}

func TestCreateBookingComputesPrice(t *testing.T) {
	f := newFixture(t, 1, 2)

	result, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, result.Booking.Status)
	assert.Equal(t, PaymentPending, result.Booking.PaymentStatus)
	assert.Equal(t, 2, result.Booking.Nights)
	assert.Equal(t, 200.0, result.Price.BasePriceTotal)
	assert.Equal(t, 26.0, result.Price.Tax)
	assert.Equal(t, 226.0, result.Price.TotalPrice)
	assert.Equal(t, "Deluxe Double", result.Price.RoomType)
}

func TestCreateBookingCapacityConflict(t *testing.T) {
	f := newFixture(t, 1, 2)

	_, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)

	// Jan2-Jan4 style overlap against Jan1-Jan3: one shared night.
	_, err = f.service.Create(context.Background(), createReq("another-user", 11, 13, 1, 1), "another-user")
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestCreateBookingAdjacentRangesDoNotConflict(t *testing.T) {
	f := newFixture(t, 1, 2)

	_, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)

	// Check-in on the other booking's check-out day is fine.
	_, err = f.service.Create(context.Background(), createReq("another-user", 12, 14, 1, 1), "another-user")
	assert.NoError(t, err)
}

func TestCreateBookingDuplicateGuard(t *testing.T) {
	f := newFixture(t, 5, 2)

	_, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), createReq(testUserID, 11, 13, 1, 1), testUserID)
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestCreateBookingGuestCapacity(t *testing.T) {
	f := newFixture(t, 5, 2)

	_, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 5, 2), testUserID)
	assert.ErrorIs(t, err, ErrGuestCapacity)
}

func TestCreateBookingDateValidation(t *testing.T) {
	f := newFixture(t, 5, 2)

	_, err := f.service.Create(context.Background(), createReq(testUserID, -1, 2, 1, 1), testUserID)
	assert.ErrorIs(t, err, ErrCheckInPast)

	_, err = f.service.Create(context.Background(), createReq(testUserID, 12, 10, 1, 1), testUserID)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.service.Create(context.Background(), createReq(testUserID, 10, 10, 1, 1), testUserID)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBookingWithExtras(t *testing.T) {
	f := newFixture(t, 5, 2)

	breakfastID := "44444444-4444-4444-4444-444444444444"
	f.extras.On("GetByIDs", mock.Anything, []string{breakfastID}).Return([]*extra.OptionalExtra{
		{
			ID:              breakfastID,
			AccommodationID: testAccID,
			Name:            "Breakfast",
			Price:           20,
			PriceType:       extra.PricePerPerson,
			IsActive:        true,
		},
	}, nil)

	req := createReq(testUserID, 10, 11, 3, 2)
	req.Extras = []ExtraSelection{{ExtraID: breakfastID, Quantity: 2}}

	result, err := f.service.Create(context.Background(), req, testUserID)
	require.NoError(t, err)

	// per_person: 20 * 3 guests * 2 = 120
	require.Len(t, result.Booking.Extras, 1)
	assert.Equal(t, 120.0, result.Booking.Extras[0].TotalPrice)
	assert.Equal(t, 120.0, result.Price.ExtrasTotal)
}

func TestCreateBookingExtraFromOtherAccommodation(t *testing.T) {
	f := newFixture(t, 5, 2)

	otherID := "55555555-5555-5555-5555-555555555555"
	f.extras.On("GetByIDs", mock.Anything, []string{otherID}).Return([]*extra.OptionalExtra{
		{
			ID:              otherID,
			AccommodationID: "99999999-9999-9999-9999-999999999999",
			Name:            "Spa",
			Price:           50,
			PriceType:       extra.PricePerBooking,
			IsActive:        true,
		},
	}, nil)

	req := createReq(testUserID, 10, 11, 1, 1)
	req.Extras = []ExtraSelection{{ExtraID: otherID, Quantity: 1}}

	_, err := f.service.Create(context.Background(), req, testUserID)
	assert.ErrorIs(t, err, ErrExtraMismatch)
}

func TestConcurrentCreateNoOverbooking(t *testing.T) {
	const capacity = 3
	const attempts = 20

	f := newFixture(t, capacity, 2)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n)
			_, _ = f.service.Create(context.Background(), createReq(user, 10, 12, 1, 1), user)
		}(i)
	}
	wg.Wait()

	sum, err := f.repo.SumOverlappingRooms(context.Background(), testRoomID, futureDate(10), futureDate(12), "")
	require.NoError(t, err)
	assert.LessOrEqual(t, sum, capacity)
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t, 5, 2)

	result, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)
	id := result.Booking.ID

	require.NoError(t, f.service.Cancel(context.Background(), id, testUserID, false))

	b, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)

	// Cancellation is one-way.
	err = f.service.Cancel(context.Background(), id, testUserID, false)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancelBookingCheckInToday(t *testing.T) {
	f := newFixture(t, 5, 2)

	b := &Booking{
		UserID:          testUserID,
		AccommodationID: testAccID,
		RoomTypeID:      testRoomID,
		CheckIn:         futureDate(0),
		CheckOut:        futureDate(2),
		Guests:          1,
		RoomsBooked:     1,
		Status:          StatusConfirmed,
		PaymentStatus:   PaymentPaid,
	}
	require.NoError(t, f.repo.Create(context.Background(), b))

	err := f.service.Cancel(context.Background(), b.ID, testUserID, false)
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestCancelBookingPermission(t *testing.T) {
	f := newFixture(t, 5, 2)

	result, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)

	err = f.service.Cancel(context.Background(), result.Booking.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateBookingExcludesSelfFromAvailability(t *testing.T) {
	f := newFixture(t, 1, 2)

	result, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)

	// Shift by one day within the only room; its own reservation must
	// not count against availability.
	updated, err := f.service.Update(context.Background(), result.Booking.ID, UpdateRequest{
		RoomTypeID:  testRoomID,
		CheckIn:     futureDate(11),
		CheckOut:    futureDate(13),
		Guests:      2,
		RoomsBooked: 1,
	}, testUserID, false)
	require.NoError(t, err)

	assert.Equal(t, futureDate(11), updated.Booking.CheckIn)
	assert.Equal(t, 2, updated.Booking.Nights)
}

func TestUpdateBookingTerminalState(t *testing.T) {
	f := newFixture(t, 5, 2)

	result, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)
	require.NoError(t, f.service.Cancel(context.Background(), result.Booking.ID, testUserID, false))

	_, err = f.service.Update(context.Background(), result.Booking.ID, UpdateRequest{
		RoomTypeID:  testRoomID,
		CheckIn:     futureDate(11),
		CheckOut:    futureDate(13),
		Guests:      2,
		RoomsBooked: 1,
	}, testUserID, false)
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestUpdateBookingReplacesExtras(t *testing.T) {
	f := newFixture(t, 5, 2)

	breakfastID := "44444444-4444-4444-4444-444444444444"
	spaID := "55555555-5555-5555-5555-555555555555"
	f.extras.On("GetByIDs", mock.Anything, []string{breakfastID}).Return([]*extra.OptionalExtra{
		{ID: breakfastID, AccommodationID: testAccID, Name: "Breakfast", Price: 20, PriceType: extra.PricePerPerson, IsActive: true},
	}, nil)
	f.extras.On("GetByIDs", mock.Anything, []string{spaID}).Return([]*extra.OptionalExtra{
		{ID: spaID, AccommodationID: testAccID, Name: "Spa", Price: 50, PriceType: extra.PricePerBooking, IsActive: true},
	}, nil)

	req := createReq(testUserID, 10, 12, 2, 1)
	req.Extras = []ExtraSelection{{ExtraID: breakfastID, Quantity: 1}}
	result, err := f.service.Create(context.Background(), req, testUserID)
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), result.Booking.ID, UpdateRequest{
		RoomTypeID:  testRoomID,
		CheckIn:     futureDate(10),
		CheckOut:    futureDate(12),
		Guests:      2,
		RoomsBooked: 1,
		Extras:      []ExtraSelection{{ExtraID: spaID, Quantity: 1}},
	}, testUserID, false)
	require.NoError(t, err)

	require.Len(t, updated.Booking.Extras, 1)
	assert.Equal(t, spaID, updated.Booking.Extras[0].ExtraID)
	assert.Equal(t, 50.0, updated.Booking.Extras[0].TotalPrice)
}

func TestUpdateStatusesUnguarded(t *testing.T) {
	f := newFixture(t, 5, 2)

	result, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)
	id := result.Booking.ID

	completed := StatusCompleted
	require.NoError(t, f.service.UpdateStatuses(context.Background(), id, StatusUpdate{Status: &completed}))

	// Free-form override: completed back to pending is allowed here.
	pending := StatusPending
	paid := PaymentPaid
	require.NoError(t, f.service.UpdateStatuses(context.Background(), id, StatusUpdate{Status: &pending, PaymentStatus: &paid}))

	b, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, PaymentPaid, b.PaymentStatus)
}

func TestDeleteBookingCascades(t *testing.T) {
	f := newFixture(t, 5, 2)

	breakfastID := "44444444-4444-4444-4444-444444444444"
	f.extras.On("GetByIDs", mock.Anything, []string{breakfastID}).Return([]*extra.OptionalExtra{
		{ID: breakfastID, AccommodationID: testAccID, Name: "Breakfast", Price: 20, PriceType: extra.PricePerPerson, IsActive: true},
	}, nil)

	req := createReq(testUserID, 10, 12, 2, 1)
	req.Extras = []ExtraSelection{{ExtraID: breakfastID, Quantity: 1}}
	result, err := f.service.Create(context.Background(), req, testUserID)
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), result.Booking.ID, testUserID, false))

	_, err = f.repo.GetByID(context.Background(), result.Booking.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListScopedToOwnBookings(t *testing.T) {
	f := newFixture(t, 5, 2)

	_, err := f.service.Create(context.Background(), createReq(testUserID, 10, 12, 2, 1), testUserID)
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), createReq("another-user", 20, 22, 1, 1), "another-user")
	require.NoError(t, err)

	own, _, err := f.service.List(context.Background(), Filter{}, testUserID, false)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, testUserID, own[0].UserID)

	all, _, err := f.service.List(context.Background(), Filter{}, "admin", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
