package extra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for optional extras.
type Repository interface {
	Create(ctx context.Context, e *OptionalExtra) error
	GetByID(ctx context.Context, id string) (*OptionalExtra, error)
	GetByIDs(ctx context.Context, ids []string) ([]*OptionalExtra, error)
	List(ctx context.Context, filter Filter) ([]*OptionalExtra, int, error)
	Update(ctx context.Context, e *OptionalExtra) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *OptionalExtra) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.optional_extras").
		Columns("accommodation_id", "name", "description", "price", "price_type", "is_active").
		Values(e.AccommodationID, e.Name, e.Description, e.Price, string(e.PriceType), e.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create extra query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create extra failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*OptionalExtra, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"e.id", "e.accommodation_id", "a.name",
		"e.name", "e.description", "e.price", "e.price_type",
		"e.is_active", "e.created_at", "e.updated_at",
	).
		From("public.optional_extras e").
		Join("public.accommodations a ON e.accommodation_id = a.id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get extra query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var e OptionalExtra
	if err := scanExtra(row, &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get extra failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) GetByIDs(ctx context.Context, ids []string) ([]*OptionalExtra, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"e.id", "e.accommodation_id", "a.name",
		"e.name", "e.description", "e.price", "e.price_type",
		"e.is_active", "e.created_at", "e.updated_at",
	).
		From("public.optional_extras e").
		Join("public.accommodations a ON e.accommodation_id = a.id").
		Where(squirrel.Eq{"e.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get extras query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get extras failed: %w", err)
	}
	defer rows.Close()

	var result []*OptionalExtra
	for rows.Next() {
		var e OptionalExtra
		if err := scanExtra(rows, &e); err != nil {
			return nil, fmt.Errorf("scan extra failed: %w", err)
		}
		result = append(result, &e)
	}
	return result, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*OptionalExtra, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"e.id", "e.accommodation_id", "a.name",
		"e.name", "e.description", "e.price", "e.price_type",
		"e.is_active", "e.created_at", "e.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.optional_extras e").
		Join("public.accommodations a ON e.accommodation_id = a.id")

	if filter.AccommodationID != "" {
		query = query.Where(squirrel.Eq{"e.accommodation_id": filter.AccommodationID})
	}
	if filter.PriceType != "" {
		query = query.Where(squirrel.Eq{"e.price_type": string(filter.PriceType)})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"e.is_active": *filter.IsActive})
	}

	// Sorting
	orderBy := "e.created_at"
	if filter.SortBy != "" {
		orderBy = "e." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list extras query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list extras failed: %w", err)
	}
	defer rows.Close()

	var result []*OptionalExtra
	var total int

	for rows.Next() {
		var e OptionalExtra
		if err := rows.Scan(
			&e.ID, &e.AccommodationID, &e.AccommodationName,
			&e.Name, &e.Description, &e.Price, &e.PriceType,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan extra failed: %w", err)
		}
		result = append(result, &e)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *OptionalExtra) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.optional_extras").
		Set("name", e.Name).
		Set("description", e.Description).
		Set("price", e.Price).
		Set("price_type", string(e.PriceType)).
		Set("is_active", e.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update extra query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update extra failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.optional_extras").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete extra query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete extra failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExtra(row pgx.Row, e *OptionalExtra) error {
	return row.Scan(
		&e.ID, &e.AccommodationID, &e.AccommodationName,
		&e.Name, &e.Description, &e.Price, &e.PriceType,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
}
