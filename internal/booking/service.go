package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/lock"
	"github.com/dipika-maharjan/tripwise-backend/internal/roomtype"
)

// ExtraSelection is one requested extra on a create/update request.
type ExtraSelection struct {
	ExtraID  string
	Quantity int
}

// CreateRequest carries validated input for booking admission.
type CreateRequest struct {
	AccommodationID string
	RoomTypeID      string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	RoomsBooked     int
	Extras          []ExtraSelection
	SpecialRequest  string
	PaymentStatus   PaymentStatus
}

// UpdateRequest is a full edit: the new room type, date range, guest and
// room counts, and the complete replacement extras list.
type UpdateRequest struct {
	RoomTypeID     string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	RoomsBooked    int
	Extras         []ExtraSelection
	SpecialRequest string
}

// StatusUpdate is the administrative status override. Nil fields are
// left unchanged. There is deliberately no transition guard here.
type StatusUpdate struct {
	Status        *Status
	PaymentStatus *PaymentStatus
}

// Result pairs a persisted booking with its price breakdown.
type Result struct {
	Booking *Booking
	Price   *Breakdown
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, userID string) (*Result, error)
	GetByID(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter, actorID string, isSysAdmin bool) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Result, error)
	Cancel(ctx context.Context, id string, actorID string, isSysAdmin bool) error
	UpdateStatuses(ctx context.Context, id string, req StatusUpdate) error
	Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error
}

type service struct {
	repo         Repository
	accService   accommodation.Service
	rtService    roomtype.Service
	extraService extra.Service
	locks        lock.Provider
	taxPercent   float64
	serviceFee   float64
}

func NewService(
	repo Repository,
	accService accommodation.Service,
	rtService roomtype.Service,
	extraService extra.Service,
	locks lock.Provider,
	taxPercent, serviceFee float64,
) Service {
	return &service{
		repo:         repo,
		accService:   accService,
		rtService:    rtService,
		extraService: extraService,
		locks:        locks,
		taxPercent:   taxPercent,
		serviceFee:   serviceFee,
	}
}

// dateOnly strips the time-of-day component, in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func today() time.Time {
	return dateOnly(time.Now())
}

func nightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// admissionKey serializes concurrent admission attempts on the same
// room type and date range.
func admissionKey(roomTypeID string, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("%s:%s:%s", roomTypeID, checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))
}

func (s *service) Create(ctx context.Context, req CreateRequest, userID string) (*Result, error) {
	checkIn := dateOnly(req.CheckIn)
	checkOut := dateOnly(req.CheckOut)

	release, err := s.locks.TryAcquire(ctx, admissionKey(req.RoomTypeID, checkIn, checkOut))
	if err != nil {
		return nil, err
	}
	defer release()

	dup, err := s.repo.UserHasOverlap(ctx, userID, req.AccommodationID, checkIn, checkOut, "")
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateBooking
	}

	acc, rt, breakdown, extras, err := s.admit(ctx, req.AccommodationID, req.RoomTypeID, checkIn, checkOut, req.Guests, req.RoomsBooked, req.Extras, "")
	if err != nil {
		return nil, err
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentPending
	}
	if !paymentStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	b := &Booking{
		UserID:            userID,
		AccommodationID:   req.AccommodationID,
		AccommodationName: acc.Name,
		RoomTypeID:        req.RoomTypeID,
		RoomTypeName:      rt.Name,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		Guests:            req.Guests,
		RoomsBooked:       req.RoomsBooked,
		Nights:            breakdown.Nights,
		BasePriceTotal:    breakdown.BasePriceTotal,
		ExtrasTotal:       breakdown.ExtrasTotal,
		Tax:               breakdown.Tax,
		ServiceFee:        breakdown.ServiceFee,
		TotalPrice:        breakdown.TotalPrice,
		Status:            StatusPending,
		PaymentStatus:     paymentStatus,
		SpecialRequest:    req.SpecialRequest,
		Extras:            extras,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return &Result{Booking: b, Price: breakdown}, nil
}

// admit runs the shared admission pipeline: resolve and check the
// accommodation and room type, validate dates and guest capacity, check
// availability, resolve extras, and compute the price. excludeID keeps
// an edited booking's own reservation out of the availability sum.
func (s *service) admit(
	ctx context.Context,
	accommodationID, roomTypeID string,
	checkIn, checkOut time.Time,
	guests, roomsBooked int,
	selections []ExtraSelection,
	excludeID string,
) (*accommodation.Accommodation, *roomtype.RoomType, *Breakdown, []BookingExtra, error) {
	acc, err := s.accService.GetByID(ctx, accommodationID)
	if err != nil {
		if errors.Is(err, accommodation.ErrNotFound) {
			return nil, nil, nil, nil, ErrAccommodationRef
		}
		return nil, nil, nil, nil, err
	}
	if !acc.IsActive {
		return nil, nil, nil, nil, ErrAccommodationInactive
	}

	rt, err := s.rtService.GetByID(ctx, roomTypeID)
	if err != nil {
		if errors.Is(err, roomtype.ErrNotFound) {
			return nil, nil, nil, nil, ErrRoomTypeRef
		}
		return nil, nil, nil, nil, err
	}
	if rt.AccommodationID != accommodationID {
		return nil, nil, nil, nil, ErrRoomTypeMismatch
	}
	if !rt.IsActive {
		return nil, nil, nil, nil, ErrRoomTypeInactive
	}

	if checkIn.Before(today()) {
		return nil, nil, nil, nil, ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return nil, nil, nil, nil, ErrInvalidDateRange
	}
	nights := nightsBetween(checkIn, checkOut)
	if nights < 1 {
		return nil, nil, nil, nil, ErrInvalidDateRange
	}

	if guests > rt.MaxGuests*roomsBooked {
		return nil, nil, nil, nil, ErrGuestCapacity
	}

	committed, err := s.repo.SumOverlappingRooms(ctx, roomTypeID, checkIn, checkOut, excludeID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if roomsBooked > rt.TotalRooms-committed {
		return nil, nil, nil, nil, ErrCapacity
	}

	priced, err := s.resolveExtras(ctx, accommodationID, selections)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	breakdown, err := CalculatePrice(rt.PricePerNight, nights, roomsBooked, guests, priced, s.taxPercent, s.serviceFee)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	breakdown.RoomType = rt.Name

	extras := make([]BookingExtra, len(breakdown.Extras))
	for i, line := range breakdown.Extras {
		extras[i] = BookingExtra{
			ExtraID:    line.ExtraID,
			ExtraName:  line.Name,
			Quantity:   line.Quantity,
			TotalPrice: line.Total,
		}
	}

	return acc, rt, breakdown, extras, nil
}

// resolveExtras loads the requested extras and snapshots their current
// price and type. Each must exist, be active, and belong to the booked
// accommodation.
func (s *service) resolveExtras(ctx context.Context, accommodationID string, selections []ExtraSelection) ([]PricedExtra, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	ids := make([]string, len(selections))
	for i, sel := range selections {
		ids[i] = sel.ExtraID
	}

	found, err := s.extraService.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*extra.OptionalExtra, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	priced := make([]PricedExtra, len(selections))
	for i, sel := range selections {
		e, ok := byID[sel.ExtraID]
		if !ok {
			return nil, ErrExtraRef
		}
		if !e.IsActive {
			return nil, ErrExtraInactive
		}
		if e.AccommodationID != accommodationID {
			return nil, ErrExtraMismatch
		}
		priced[i] = PricedExtra{
			ExtraID:   e.ID,
			Name:      e.Name,
			Price:     e.Price,
			PriceType: e.PriceType,
			Quantity:  sel.Quantity,
		}
	}
	return priced, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, isSysAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter, actorID string, isSysAdmin bool) ([]*Booking, int, error) {
	// Regular users only see their own bookings.
	if !isSysAdmin {
		filter.UserID = actorID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isSysAdmin bool) (*Result, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isSysAdmin && b.UserID != actorID {
		return nil, ErrPermissionDenied
	}
	if b.Status.Terminal() {
		return nil, ErrNotEditable
	}
	if !dateOnly(b.CheckIn).After(today()) {
		return nil, ErrNotEditable
	}

	checkIn := dateOnly(req.CheckIn)
	checkOut := dateOnly(req.CheckOut)

	release, err := s.locks.TryAcquire(ctx, admissionKey(req.RoomTypeID, checkIn, checkOut))
	if err != nil {
		return nil, err
	}
	defer release()

	dup, err := s.repo.UserHasOverlap(ctx, b.UserID, b.AccommodationID, checkIn, checkOut, b.ID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateBooking
	}

	_, rt, breakdown, extras, err := s.admit(ctx, b.AccommodationID, req.RoomTypeID, checkIn, checkOut, req.Guests, req.RoomsBooked, req.Extras, b.ID)
	if err != nil {
		return nil, err
	}

	b.RoomTypeID = req.RoomTypeID
	b.RoomTypeName = rt.Name
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.Guests = req.Guests
	b.RoomsBooked = req.RoomsBooked
	b.Nights = breakdown.Nights
	b.BasePriceTotal = breakdown.BasePriceTotal
	b.ExtrasTotal = breakdown.ExtrasTotal
	b.Tax = breakdown.Tax
	b.ServiceFee = breakdown.ServiceFee
	b.TotalPrice = breakdown.TotalPrice
	b.SpecialRequest = req.SpecialRequest
	b.Extras = extras

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return &Result{Booking: b, Price: breakdown}, nil
}

func (s *service) Cancel(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isSysAdmin && b.UserID != actorID {
		return ErrPermissionDenied
	}
	if b.Status.Terminal() {
		return ErrNotCancellable
	}
	if !dateOnly(b.CheckIn).After(today()) {
		return ErrNotCancellable
	}

	cancelled := StatusCancelled
	return s.repo.UpdateStatuses(ctx, id, &cancelled, nil)
}

func (s *service) UpdateStatuses(ctx context.Context, id string, req StatusUpdate) error {
	if req.Status == nil && req.PaymentStatus == nil {
		return ErrInvalidStatus
	}
	if req.Status != nil && !req.Status.Valid() {
		return ErrInvalidStatus
	}
	if req.PaymentStatus != nil && !req.PaymentStatus.Valid() {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatuses(ctx, id, req.Status, req.PaymentStatus)
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isSysAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isSysAdmin && b.UserID != actorID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, b.ID)
}
