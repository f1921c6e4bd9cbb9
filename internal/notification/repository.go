package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Upsert(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, n *Notification) error {
	const query = `
		INSERT INTO public.notifications (user_id, type, title, message, related_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, n.UserID, n.Type, n.Title, n.Message, n.RelatedID).
		Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification failed: %w", err)
	}
	return nil
}

// Upsert refreshes the existing row for the same (user, type, related id)
// instead of stacking a new one, so repeated status changes on one subject
// keep a single unread entry. Falls back to an insert when no row exists.
func (r *pgxRepository) Upsert(ctx context.Context, n *Notification) error {
	const query = `
		UPDATE public.notifications
		SET title = $1, message = $2, is_read = false, created_at = now()
		WHERE user_id = $3 AND type = $4 AND related_id = NULLIF($5, '')::uuid
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, n.Title, n.Message, n.UserID, n.Type, n.RelatedID).
		Scan(&n.ID, &n.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.Create(ctx, n)
	}
	if err != nil {
		return fmt.Errorf("upsert notification failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error) {
	args := []any{userID}
	query := `
		SELECT id, user_id, type, title, message, COALESCE(related_id::text, ''), is_read, created_at,
		       count(*) OVER() AS total_count
		FROM public.notifications
		WHERE user_id = $1
	`
	if filter.UnreadOnly {
		query += " AND is_read = false"
	}

	query += " ORDER BY created_at DESC"

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
		return nil, 0, fmt.Errorf("list notifications failed: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	var total int

	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan notification failed: %w", err)
		}
		notifications = append(notifications, &n)
	}

	return notifications, total, nil
}

func (r *pgxRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	const query = `SELECT count(*) FROM public.notifications WHERE user_id = $1 AND is_read = false`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) MarkRead(ctx context.Context, userID, id string) error {
	const query = `
		UPDATE public.notifications
		SET is_read = true
		WHERE id = $1 AND user_id = $2
	`
	ct, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) MarkAllRead(ctx context.Context, userID string) error {
	const query = `
		UPDATE public.notifications
		SET is_read = true
		WHERE user_id = $1 AND is_read = false
	`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("mark all notifications read failed: %w", err)
	}
	return nil
}
