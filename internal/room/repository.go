package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	const query = `
		INSERT INTO public.rooms (name, building, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, rm.Name, rm.Building, rm.Capacity).
		Scan(&rm.ID, &rm.CreatedAt)
	if err != nil {
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	const query = `
		SELECT id, name, building, capacity, created_at
		FROM public.rooms
		WHERE id = $1
	`
	var rm Room
	if err := r.pool.QueryRow(ctx, query, id).
		Scan(&rm.ID, &rm.Name, &rm.Building, &rm.Capacity, &rm.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	var args []any
	query := `
		SELECT id, name, building, capacity, created_at, count(*) OVER() AS total_count
		FROM public.rooms
		WHERE 1=1
	`
	if filter.Building != "" {
		args = append(args, filter.Building)
		query += fmt.Sprintf(" AND building = $%d", len(args))
	}

	query += " ORDER BY building, name"

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize

	args = append(args, filter.PageSize, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int

	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Building, &rm.Capacity, &rm.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	const query = `
		UPDATE public.rooms
		SET name = $1, building = $2, capacity = $3
		WHERE id = $4
	`
	ct, err := r.pool.Exec(ctx, query, rm.Name, rm.Building, rm.Capacity, rm.ID)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.rooms WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
