package lecturer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, l *Lecturer) error
	GetByID(ctx context.Context, id string) (*Lecturer, error)
	GetByUserID(ctx context.Context, userID string) (*Lecturer, error)
	List(ctx context.Context, filter Filter) ([]*Lecturer, int, error)
	Update(ctx context.Context, l *Lecturer) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Lecturer) error {
	const query = `
		INSERT INTO public.lecturers (user_id, first_name, last_name, department, office)
		VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, l.UserID, l.FirstName, l.LastName, l.Department, l.Office).
		Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("create lecturer failed: %w", err)
	}
	return nil
}

const lecturerColumns = `id, COALESCE(user_id::text, ''), first_name, last_name, department, office, created_at`

func (r *pgxRepository) getBy(ctx context.Context, column, value string) (*Lecturer, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.lecturers WHERE %s = $1`, lecturerColumns, column)

	var l Lecturer
	err := r.pool.QueryRow(ctx, query, value).
		Scan(&l.ID, &l.UserID, &l.FirstName, &l.LastName, &l.Department, &l.Office, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lecturer failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Lecturer, error) {
	return r.getBy(ctx, "id", id)
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Lecturer, error) {
	return r.getBy(ctx, "user_id", userID)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Lecturer, int, error) {
	var args []any
	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		FROM public.lecturers
		WHERE 1=1
	`, lecturerColumns)

	if filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND department = $%d", len(args))
	}

	query += " ORDER BY last_name, first_name"

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
		return nil, 0, fmt.Errorf("list lecturers failed: %w", err)
	}
	defer rows.Close()

	var lecturers []*Lecturer
	var total int

	for rows.Next() {
		var l Lecturer
		if err := rows.Scan(&l.ID, &l.UserID, &l.FirstName, &l.LastName, &l.Department, &l.Office, &l.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan lecturer failed: %w", err)
		}
		lecturers = append(lecturers, &l)
	}

	return lecturers, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Lecturer) error {
	const query = `
		UPDATE public.lecturers
		SET user_id = NULLIF($1, '')::uuid, first_name = $2, last_name = $3, department = $4, office = $5
		WHERE id = $6
	`
	ct, err := r.pool.Exec(ctx, query, l.UserID, l.FirstName, l.LastName, l.Department, l.Office, l.ID)
	if err != nil {
		return fmt.Errorf("update lecturer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.lecturers WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lecturer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
