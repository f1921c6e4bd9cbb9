package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateIfFree atomically re-checks for conflicts and inserts the
	// reservation. It returns the conflicting reservations (and no
	// insert) when the slot is taken; on success it fills in the
	// server-assigned id and timestamps.
	CreateIfFree(ctx context.Context, r *Reservation) ([]*Reservation, error)

	// FindOverlapping returns the pending/approved reservations on the
	// same resource and date whose intervals intersect iv. Read-only,
	// usable as a pre-check for user feedback.
	FindOverlapping(ctx context.Context, kind Kind, resourceID, date string, iv Interval) ([]*Reservation, error)

	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// UpdateStatus moves the reservation to status only while it is
	// still in expected, so a transition committed after the caller's
	// read cannot be overwritten. Returns the new updated_at;
	// ErrNotFound for a missing id, ErrIllegalTransition for a lost
	// race.
	UpdateStatus(ctx context.Context, id string, status, expected Status) (time.Time, error)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the overlap
// query can run standalone or inside the commit transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const reservationColumns = `
	res.id, res.resource_kind, res.resource_id,
	COALESCE(rm.name, concat_ws(' ', lc.first_name, lc.last_name)) AS resource_name,
	res.requester_id, COALESCE(u.display_name, u.email) AS requester_name,
	res.date, res.start_time, res.end_time,
	res.purpose, res.status, res.created_at, res.updated_at`

func selectReservations() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(reservationColumns).
		From("public.reservations res").
		Join("public.users u ON res.requester_id = u.id").
		LeftJoin("public.rooms rm ON res.resource_kind = 'room' AND res.resource_id = rm.id").
		LeftJoin("public.lecturers lc ON res.resource_kind = 'consultation' AND res.resource_id = lc.id")
}

func scanReservation(row pgx.Row) (*Reservation, error) {
	var (
		r          Reservation
		date       time.Time
		start, end pgtype.Time
	)
	if err := row.Scan(
		&r.ID, &r.ResourceKind, &r.ResourceID, &r.ResourceName,
		&r.RequesterID, &r.RequesterName,
		&date, &start, &end,
		&r.Purpose, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Date = date.Format(DateLayout)
	r.Start = TimeOfDayFromMicroseconds(start.Microseconds)
	r.End = TimeOfDayFromMicroseconds(end.Microseconds)
	return &r, nil
}

func pgTime(t TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

// findOverlapping applies the shared overlap predicate
// (start < queryEnd AND end > queryStart) against occupying statuses.
func (repo *pgxRepository) findOverlapping(ctx context.Context, q querier, kind Kind, resourceID string, date time.Time, iv Interval) ([]*Reservation, error) {
	query, args, err := selectReservations().
		Where(squirrel.Eq{
			"res.resource_kind": string(kind),
			"res.resource_id":   resourceID,
			"res.date":          date,
			"res.status":        []string{string(StatusPending), string(StatusApproved)},
		}).
		Where(squirrel.Lt{"res.start_time": pgTime(iv.End)}).
		Where(squirrel.Gt{"res.end_time": pgTime(iv.Start)}).
		OrderBy("res.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query overlapping reservations failed: %w", err)
	}
	defer rows.Close()

	var conflicts []*Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		conflicts = append(conflicts, r)
	}
	return conflicts, rows.Err()
}

func (repo *pgxRepository) FindOverlapping(ctx context.Context, kind Kind, resourceID, date string, iv Interval) ([]*Reservation, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return repo.findOverlapping(ctx, repo.pool, kind, resourceID, day, iv)
}

func (repo *pgxRepository) CreateIfFree(ctx context.Context, r *Reservation) ([]*Reservation, error) {
	day, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	tx, err := repo.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reservation tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent attempts on the same (kind, resource, date)
	// so the conflict check and the insert form one atomic unit. The
	// lock is transaction-scoped and released on commit or rollback.
	lockKey := fmt.Sprintf("%s:%s:%s", r.ResourceKind, r.ResourceID, r.Date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return nil, fmt.Errorf("acquire reservation lock failed: %w", err)
	}

	conflicts, err := repo.findOverlapping(ctx, tx, r.ResourceKind, r.ResourceID, day, r.Interval())
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("resource_kind", "resource_id", "requester_id", "date", "start_time", "end_time", "purpose", "status").
		Values(string(r.ResourceKind), r.ResourceID, r.RequesterID, day, pgTime(r.Start), pgTime(r.End), r.Purpose, string(r.Status)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create reservation failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reservation failed: %w", err)
	}
	return nil, nil
}

func (repo *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := selectReservations().
		Where(squirrel.Eq{"res.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	r, err := scanReservation(repo.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return r, nil
}

func (repo *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := selectReservations().Column("count(*) OVER() AS total_count")

	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"res.requester_id": filter.RequesterID})
	}
	if filter.ResourceKind != "" {
		query = query.Where(squirrel.Eq{"res.resource_kind": filter.ResourceKind})
	}
	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"res.resource_id": filter.ResourceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"res.status": filter.Status})
	}
	if filter.Date != "" {
		day, err := time.Parse(DateLayout, filter.Date)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		query = query.Where(squirrel.Eq{"res.date": day})
	}

	query = query.OrderBy("res.date DESC", "res.start_time ASC")

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
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := repo.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var (
		reservations []*Reservation
		total        int
	)
	for rows.Next() {
		var (
			r          Reservation
			date       time.Time
			start, end pgtype.Time
		)
		if err := rows.Scan(
			&r.ID, &r.ResourceKind, &r.ResourceID, &r.ResourceName,
			&r.RequesterID, &r.RequesterName,
			&date, &start, &end,
			&r.Purpose, &r.Status, &r.CreatedAt, &r.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		r.Date = date.Format(DateLayout)
		r.Start = TimeOfDayFromMicroseconds(start.Microseconds)
		r.End = TimeOfDayFromMicroseconds(end.Microseconds)
		reservations = append(reservations, &r)
	}

	return reservations, total, rows.Err()
}

func (repo *pgxRepository) UpdateStatus(ctx context.Context, id string, status, expected Status) (time.Time, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": string(expected)}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("build update reservation status query failed: %w", err)
	}

	var updatedAt time.Time
	err = repo.pool.QueryRow(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row matched: either the id is unknown or the status moved
		// on since the caller read it.
		var exists bool
		const check = `SELECT EXISTS (SELECT 1 FROM public.reservations WHERE id = $1)`
		if err := repo.pool.QueryRow(ctx, check, id).Scan(&exists); err != nil {
			return time.Time{}, fmt.Errorf("check reservation exists failed: %w", err)
		}
		if !exists {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, ErrIllegalTransition
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("update reservation status failed: %w", err)
	}
	return updatedAt, nil
}
