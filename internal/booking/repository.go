package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for bookings and their extra
// line items. Extras are owned by the booking row: Create and Update
// persist them in the same transaction, Delete removes them first.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error
	UpdateStatuses(ctx context.Context, id string, status *Status, paymentStatus *PaymentStatus) error
	Delete(ctx context.Context, id string) error

	// SumOverlappingRooms totals rooms_booked over non-cancelled bookings
	// of the room type whose [check_in, check_out) range overlaps the
	// given one. excludeID, when non-empty, leaves that booking out of
	// the sum so an edit does not count against itself.
	SumOverlappingRooms(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time, excludeID string) (int, error)

	// UserHasOverlap reports whether the user already holds a
	// non-cancelled booking at the accommodation overlapping the range.
	UserHasOverlap(ctx context.Context, userID, accommodationID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.user_id", "COALESCE(u.display_name, u.email)",
	"b.accommodation_id", "a.name", "b.room_type_id", "rt.name",
	"b.check_in", "b.check_out", "b.guests", "b.rooms_booked", "b.nights",
	"b.base_price_total", "b.extras_total", "b.tax", "b.service_fee", "b.total_price",
	"b.status", "b.payment_status", "b.special_request",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, b *Booking, extraDest ...any) error {
	dest := []any{
		&b.ID, &b.UserID, &b.UserName,
		&b.AccommodationID, &b.AccommodationName, &b.RoomTypeID, &b.RoomTypeName,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.RoomsBooked, &b.Nights,
		&b.BasePriceTotal, &b.ExtrasTotal, &b.Tax, &b.ServiceFee, &b.TotalPrice,
		&b.Status, &b.PaymentStatus, &b.SpecialRequest,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extraDest...)
	return row.Scan(dest...)
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"user_id", "accommodation_id", "room_type_id",
			"check_in", "check_out", "guests", "rooms_booked", "nights",
			"base_price_total", "extras_total", "tax", "service_fee", "total_price",
			"status", "payment_status", "special_request",
		).
		Values(
			b.UserID, b.AccommodationID, b.RoomTypeID,
			b.CheckIn, b.CheckOut, b.Guests, b.RoomsBooked, b.Nights,
			b.BasePriceTotal, b.ExtrasTotal, b.Tax, b.ServiceFee, b.TotalPrice,
			string(b.Status), string(b.PaymentStatus), b.SpecialRequest,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := insertExtras(ctx, tx, b.ID, b.Extras); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	for i := range b.Extras {
		b.Extras[i].BookingID = b.ID
	}
	return nil
}

func insertExtras(ctx context.Context, tx pgx.Tx, bookingID string, extras []BookingExtra) error {
	if len(extras) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.booking_extras").
		Columns("booking_id", "extra_id", "extra_name", "quantity", "total_price")
	for _, e := range extras {
		insert = insert.Values(bookingID, e.ExtraID, e.ExtraName, e.Quantity, e.TotalPrice)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking extras query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert booking extras failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.accommodations a ON b.accommodation_id = a.id").
		Join("public.room_types rt ON b.room_type_id = rt.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	extras, err := r.getExtras(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Extras = extras
	return &b, nil
}

func (r *pgxRepository) getExtras(ctx context.Context, bookingID string) ([]BookingExtra, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booking_id", "extra_id", "extra_name", "quantity", "total_price").
		From("public.booking_extras").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("extra_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking extras query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get booking extras failed: %w", err)
	}
	defer rows.Close()

	var result []BookingExtra
	for rows.Next() {
		var e BookingExtra
		if err := rows.Scan(&e.ID, &e.BookingID, &e.ExtraID, &e.ExtraName, &e.Quantity, &e.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan booking extra failed: %w", err)
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.accommodations a ON b.accommodation_id = a.id").
		Join("public.room_types rt ON b.room_type_id = rt.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.AccommodationID != "" {
		query = query.Where(squirrel.Eq{"b.accommodation_id": filter.AccommodationID})
	}
	if filter.RoomTypeID != "" {
		query = query.Where(squirrel.Eq{"b.room_type_id": filter.RoomTypeID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": string(filter.Status)})
	}

	// Sorting
	orderBy := "b.created_at"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var result []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		result = append(result, &b)
	}

	return result, total, nil
}

// Update replaces the booking's editable and derived fields and
// wholesale-replaces its extra line items (delete all, reinsert).
func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("room_type_id", b.RoomTypeID).
		Set("check_in", b.CheckIn).
		Set("check_out", b.CheckOut).
		Set("guests", b.Guests).
		Set("rooms_booked", b.RoomsBooked).
		Set("nights", b.Nights).
		Set("base_price_total", b.BasePriceTotal).
		Set("extras_total", b.ExtrasTotal).
		Set("tax", b.Tax).
		Set("service_fee", b.ServiceFee).
		Set("total_price", b.TotalPrice).
		Set("special_request", b.SpecialRequest).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	deleteQuery, deleteArgs, err := psql.Delete("public.booking_extras").
		Where(squirrel.Eq{"booking_id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking extras query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete booking extras failed: %w", err)
	}

	if err := insertExtras(ctx, tx, b.ID, b.Extras); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update booking tx failed: %w", err)
	}
	for i := range b.Extras {
		b.Extras[i].BookingID = b.ID
	}
	return nil
}

func (r *pgxRepository) UpdateStatuses(ctx context.Context, id string, status *Status, paymentStatus *PaymentStatus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	update := psql.Update("public.bookings").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if status != nil {
		update = update.Set("status", string(*status))
	}
	if paymentStatus != nil {
		update = update.Set("payment_status", string(*paymentStatus))
	}

	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build update booking statuses query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking statuses failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes the booking and its extra line items.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	extrasQuery, extrasArgs, err := psql.Delete("public.booking_extras").
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking extras query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, extrasQuery, extrasArgs...); err != nil {
		return fmt.Errorf("delete booking extras failed: %w", err)
	}

	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) SumOverlappingRooms(ctx context.Context, roomTypeID string, checkIn, checkOut time.Time, excludeID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("COALESCE(SUM(rooms_booked), 0)").
		From("public.bookings").
		Where(squirrel.Eq{"room_type_id": roomTypeID}).
		Where(squirrel.NotEq{"status": string(StatusCancelled)}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum overlapping rooms query failed: %w", err)
	}

	var sum int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum overlapping rooms failed: %w", err)
	}
	return sum, nil
}

func (r *pgxRepository) UserHasOverlap(ctx context.Context, userID, accommodationID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"accommodation_id": accommodationID}).
		Where(squirrel.NotEq{"status": string(StatusCancelled)}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn})

	if excludeID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build user overlap query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("check user overlap failed: %w", err)
	}
	return count > 0, nil
}
