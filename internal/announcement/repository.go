package announcement

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func selectAnnouncements() sq.SelectBuilder {
	return psql.Select(
		"a.id", "a.title", "a.content", "a.audience",
		"a.posted_by", "COALESCE(u.display_name, u.email) AS posted_by_name",
		"a.created_at", "a.updated_at",
	).
		From("public.announcements a").
		Join("public.users u ON u.id = a.posted_by")
}

func (r *pgxRepository) Create(ctx context.Context, a *Announcement) error {
	query, args, err := psql.Insert("public.announcements").
		Columns("title", "content", "audience", "posted_by").
		Values(a.Title, a.Content, a.Audience, a.PostedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create announcement query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("create announcement failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	query, args, err := selectAnnouncements().Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get announcement query failed: %w", err)
	}

	var a Announcement
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Title, &a.Content, &a.Audience,
		&a.PostedBy, &a.PostedByName,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get announcement failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	builder := selectAnnouncements().Column("count(*) OVER() AS total_count")

	if len(filter.Audiences) > 0 {
		builder = builder.Where(sq.Eq{"a.audience": filter.Audiences})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize

	builder = builder.
		OrderBy("a.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list announcements query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list announcements failed: %w", err)
	}
	defer rows.Close()

	var announcements []*Announcement
	var total int

	for rows.Next() {
		var a Announcement
		err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.Audience,
			&a.PostedBy, &a.PostedByName,
			&a.CreatedAt, &a.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan announcement failed: %w", err)
		}
		announcements = append(announcements, &a)
	}

	return announcements, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Announcement) error {
	query, args, err := psql.Update("public.announcements").
		Set("title", a.Title).
		Set("content", a.Content).
		Set("audience", a.Audience).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update announcement query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.announcements WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete announcement failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
