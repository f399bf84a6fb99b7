package roomtype

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for room types.
type Repository interface {
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, rt *RoomType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_types").
		Columns("accommodation_id", "name", "description", "price_per_night", "total_rooms", "max_guests", "is_active").
		Values(rt.AccommodationID, rt.Name, rt.Description, rt.PricePerNight, rt.TotalRooms, rt.MaxGuests, rt.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room type query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"rt.id", "rt.accommodation_id", "a.name", "rt.name", "rt.description",
		"rt.price_per_night", "rt.total_rooms", "rt.max_guests", "rt.is_active",
		"rt.created_at", "rt.updated_at",
	).
		From("public.room_types rt").
		Join("public.accommodations a ON rt.accommodation_id = a.id").
		Where(squirrel.Eq{"rt.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room type query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var rt RoomType
	if err := row.Scan(
		&rt.ID, &rt.AccommodationID, &rt.AccommodationName, &rt.Name, &rt.Description,
		&rt.PricePerNight, &rt.TotalRooms, &rt.MaxGuests, &rt.IsActive,
		&rt.CreatedAt, &rt.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"rt.id", "rt.accommodation_id", "a.name", "rt.name", "rt.description",
		"rt.price_per_night", "rt.total_rooms", "rt.max_guests", "rt.is_active",
		"rt.created_at", "rt.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.room_types rt").
		Join("public.accommodations a ON rt.accommodation_id = a.id")

	if filter.AccommodationID != "" {
		query = query.Where(squirrel.Eq{"rt.accommodation_id": filter.AccommodationID})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"rt.is_active": *filter.IsActive})
	}

	orderBy := "rt.created_at"
	if filter.SortBy != "" {
		orderBy = "rt." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list room types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var result []*RoomType
	var total int

	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.AccommodationID, &rt.AccommodationName, &rt.Name, &rt.Description,
			&rt.PricePerNight, &rt.TotalRooms, &rt.MaxGuests, &rt.IsActive,
			&rt.CreatedAt, &rt.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room type failed: %w", err)
		}
		result = append(result, &rt)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.room_types").
		Set("name", rt.Name).
		Set("description", rt.Description).
		Set("price_per_night", rt.PricePerNight).
		Set("total_rooms", rt.TotalRooms).
		Set("max_guests", rt.MaxGuests).
		Set("is_active", rt.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
