package maintenance

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, int, error)
	UpdateStatus(ctx context.Context, id string, status Status, feedback string) error

	AddPhoto(ctx context.Context, p *Photo) error
	GetPhoto(ctx context.Context, id string) (*Photo, error)
	ListPhotos(ctx context.Context, requestID string) ([]*Photo, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func selectRequests() sq.SelectBuilder {
	return psql.Select(
		"m.id", "m.room_id", "rm.name AS room_name",
		"m.requester_id", "COALESCE(u.display_name, u.email) AS requester_name",
		"m.description", "m.priority", "m.status", "m.admin_feedback",
		"m.created_at", "m.updated_at",
	).
		From("public.maintenance_requests m").
		Join("public.rooms rm ON rm.id = m.room_id").
		Join("public.users u ON u.id = m.requester_id")
}

func scanRequest(row pgx.Row, req *Request) error {
	return row.Scan(
		&req.ID, &req.RoomID, &req.RoomName,
		&req.RequesterID, &req.RequesterName,
		&req.Description, &req.Priority, &req.Status, &req.AdminFeedback,
		&req.CreatedAt, &req.UpdatedAt,
	)
}

func (r *pgxRepository) Create(ctx context.Context, req *Request) error {
	query, args, err := psql.Insert("public.maintenance_requests").
		Columns("room_id", "requester_id", "description", "priority", "status", "admin_feedback").
		Values(req.RoomID, req.RequesterID, req.Description, req.Priority, req.Status, req.AdminFeedback).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create maintenance request query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return fmt.Errorf("create maintenance request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Request, error) {
	query, args, err := selectRequests().Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get maintenance request query failed: %w", err)
	}

	var req Request
	if err := scanRequest(r.pool.QueryRow(ctx, query, args...), &req); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get maintenance request failed: %w", err)
	}

	photos, err := r.ListPhotos(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Photos = photos

	return &req, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Request, int, error) {
	builder := selectRequests().Column("count(*) OVER() AS total_count")

	if filter.RoomID != "" {
		builder = builder.Where(sq.Eq{"m.room_id": filter.RoomID})
	}
	if filter.RequesterID != "" {
		builder = builder.Where(sq.Eq{"m.requester_id": filter.RequesterID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"m.status": filter.Status})
	}
	if filter.Priority != "" {
		builder = builder.Where(sq.Eq{"m.priority": filter.Priority})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize

	builder = builder.
		OrderBy("m.created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list maintenance requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenance requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	var total int

	for rows.Next() {
		var req Request
		err := rows.Scan(
			&req.ID, &req.RoomID, &req.RoomName,
			&req.RequesterID, &req.RequesterName,
			&req.Description, &req.Priority, &req.Status, &req.AdminFeedback,
			&req.CreatedAt, &req.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan maintenance request failed: %w", err)
		}
		requests = append(requests, &req)
	}

	return requests, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, feedback string) error {
	query, args, err := psql.Update("public.maintenance_requests").
		Set("status", status).
		Set("admin_feedback", feedback).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update maintenance status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update maintenance status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddPhoto(ctx context.Context, p *Photo) error {
	const query = `
		INSERT INTO public.maintenance_photos (id, request_id, filename, storage_path, thumbnail_path, content_type, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query, p.ID, p.RequestID, p.Filename, p.StoragePath, p.ThumbnailPath, p.ContentType, p.Size).
		Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("add maintenance photo failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetPhoto(ctx context.Context, id string) (*Photo, error) {
	const query = `
		SELECT id, request_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.maintenance_photos
		WHERE id = $1
	`
	var p Photo
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.RequestID, &p.Filename, &p.StoragePath, &p.ThumbnailPath, &p.ContentType, &p.Size, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("get maintenance photo failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListPhotos(ctx context.Context, requestID string) ([]*Photo, error) {
	const query = `
		SELECT id, request_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.maintenance_photos
		WHERE request_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance photos failed: %w", err)
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.RequestID, &p.Filename, &p.StoragePath, &p.ThumbnailPath, &p.ContentType, &p.Size, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan maintenance photo failed: %w", err)
		}
		photos = append(photos, &p)
	}

	return photos, nil
}
