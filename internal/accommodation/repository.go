package accommodation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for accommodations.
type Repository interface {
	Create(ctx context.Context, a *Accommodation) error
	GetByID(ctx context.Context, id string) (*Accommodation, error)
	List(ctx context.Context, filter Filter) ([]*Accommodation, int, error)
	Update(ctx context.Context, a *Accommodation) error
	Delete(ctx context.Context, id string) error
	AddPhoto(ctx context.Context, id string, path string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Accommodation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.accommodations").
		Columns("owner_id", "name", "description", "address", "city", "photo_paths", "is_active").
		Values(a.OwnerID, a.Name, a.Description, a.Address, a.City, a.PhotoPaths, a.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create accommodation query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create accommodation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Accommodation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.owner_id", "COALESCE(u.display_name, u.email)",
		"a.name", "a.description", "a.address", "a.city", "a.photo_paths",
		"a.is_active", "a.created_at", "a.updated_at",
	).
		From("public.accommodations a").
		Join("public.users u ON a.owner_id = u.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get accommodation query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var a Accommodation
	if err := row.Scan(
		&a.ID, &a.OwnerID, &a.OwnerName,
		&a.Name, &a.Description, &a.Address, &a.City, &a.PhotoPaths,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get accommodation failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Accommodation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"a.id", "a.owner_id", "COALESCE(u.display_name, u.email)",
		"a.name", "a.description", "a.address", "a.city", "a.photo_paths",
		"a.is_active", "a.created_at", "a.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.accommodations a").
		Join("public.users u ON a.owner_id = u.id")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"a.owner_id": filter.OwnerID})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"a.city": filter.City})
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"a.name": kw},
			squirrel.ILike{"a.address": kw},
		})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"a.is_active": *filter.IsActive})
	}

	// Sorting
	orderBy := "a.created_at"
	if filter.SortBy != "" {
		orderBy = "a." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list accommodations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accommodations failed: %w", err)
	}
	defer rows.Close()

	var result []*Accommodation
	var total int

	for rows.Next() {
		var a Accommodation
		if err := rows.Scan(
			&a.ID, &a.OwnerID, &a.OwnerName,
			&a.Name, &a.Description, &a.Address, &a.City, &a.PhotoPaths,
			&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan accommodation failed: %w", err)
		}
		result = append(result, &a)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Accommodation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.accommodations").
		Set("name", a.Name).
		Set("description", a.Description).
		Set("address", a.Address).
		Set("city", a.City).
		Set("is_active", a.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update accommodation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update accommodation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.accommodations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete accommodation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete accommodation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddPhoto(ctx context.Context, id string, path string) error {
	const query = `
		UPDATE public.accommodations
		SET photo_paths = array_append(photo_paths, $1), updated_at = now()
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, path, id)
	if err != nil {
		return fmt.Errorf("add accommodation photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
