package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campus-services-backend/internal/reservation"
)

type Repository interface {
	Create(ctx context.Context, cl *Class) error
	GetByID(ctx context.Context, id string) (*Class, error)
	List(ctx context.Context, filter Filter) ([]*Class, int, error)
	Update(ctx context.Context, cl *Class) error
	Delete(ctx context.Context, id string) error

	Enroll(ctx context.Context, classID, studentID string) error
	Unenroll(ctx context.Context, classID, studentID string) error
	ListByStudent(ctx context.Context, studentID string) ([]*Class, error)
	ListByLecturer(ctx context.Context, lecturerID string) ([]*Class, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func pgTime(t reservation.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

func selectClasses() sq.SelectBuilder {
	return psql.Select(
		"c.id", "c.name", "c.day_of_week", "c.start_time", "c.end_time",
		"c.room_id", "rm.name AS room_name",
		"c.lecturer_id", "concat_ws(' ', lc.first_name, lc.last_name) AS lecturer_name",
		"c.created_at",
	).
		From("public.classes c").
		Join("public.rooms rm ON rm.id = c.room_id").
		Join("public.lecturers lc ON lc.id = c.lecturer_id")
}

func scanClass(row pgx.Row, cl *Class) error {
	var (
		day        int
		start, end pgtype.Time
	)
	err := row.Scan(
		&cl.ID, &cl.Name, &day, &start, &end,
		&cl.RoomID, &cl.RoomName,
		&cl.LecturerID, &cl.LecturerName,
		&cl.CreatedAt,
	)
	if err != nil {
		return err
	}

	cl.DayOfWeek = time.Weekday(day)
	cl.Start = reservation.TimeOfDayFromMicroseconds(start.Microseconds)
	cl.End = reservation.TimeOfDayFromMicroseconds(end.Microseconds)
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, cl *Class) error {
	query, args, err := psql.Insert("public.classes").
		Columns("name", "day_of_week", "start_time", "end_time", "room_id", "lecturer_id").
		Values(cl.Name, int(cl.DayOfWeek), pgTime(cl.Start), pgTime(cl.End), cl.RoomID, cl.LecturerID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create class query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cl.ID, &cl.CreatedAt); err != nil {
		return fmt.Errorf("create class failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Class, error) {
	query, args, err := selectClasses().Where(sq.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get class query failed: %w", err)
	}

	var cl Class
	if err := scanClass(r.pool.QueryRow(ctx, query, args...), &cl); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get class failed: %w", err)
	}
	return &cl, nil
}

func (r *pgxRepository) queryClasses(ctx context.Context, builder sq.SelectBuilder) ([]*Class, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list classes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list classes failed: %w", err)
	}
	defer rows.Close()

	var classes []*Class
	for rows.Next() {
		var cl Class
		if err := scanClass(rows, &cl); err != nil {
			return nil, fmt.Errorf("scan class failed: %w", err)
		}
		classes = append(classes, &cl)
	}

	return classes, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Class, int, error) {
	builder := selectClasses()

	if filter.DayOfWeek != nil {
		builder = builder.Where(sq.Eq{"c.day_of_week": int(*filter.DayOfWeek)})
	}
	if filter.RoomID != "" {
		builder = builder.Where(sq.Eq{"c.room_id": filter.RoomID})
	}
	if filter.LecturerID != "" {
		builder = builder.Where(sq.Eq{"c.lecturer_id": filter.LecturerID})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	offset := (filter.Page - 1) * filter.PageSize

	builder = builder.
		OrderBy("c.day_of_week", "c.start_time").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	classes, err := r.queryClasses(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	// Separate count query; the shared scan path has a fixed column set.
	countBuilder := psql.Select("count(*)").From("public.classes c")
	if filter.DayOfWeek != nil {
		countBuilder = countBuilder.Where(sq.Eq{"c.day_of_week": int(*filter.DayOfWeek)})
	}
	if filter.RoomID != "" {
		countBuilder = countBuilder.Where(sq.Eq{"c.room_id": filter.RoomID})
	}
	if filter.LecturerID != "" {
		countBuilder = countBuilder.Where(sq.Eq{"c.lecturer_id": filter.LecturerID})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count classes query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count classes failed: %w", err)
	}

	return classes, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, cl *Class) error {
	query, args, err := psql.Update("public.classes").
		Set("name", cl.Name).
		Set("day_of_week", int(cl.DayOfWeek)).
		Set("start_time", pgTime(cl.Start)).
		Set("end_time", pgTime(cl.End)).
		Set("room_id", cl.RoomID).
		Set("lecturer_id", cl.LecturerID).
		Where(sq.Eq{"id": cl.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update class query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update class failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.classes WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete class failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Enroll(ctx context.Context, classID, studentID string) error {
	const query = `
		INSERT INTO public.enrollments (class_id, student_id)
		VALUES ($1, $2)
	`
	if _, err := r.pool.Exec(ctx, query, classID, studentID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyEnrolled
		}
		return fmt.Errorf("enroll student failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Unenroll(ctx context.Context, classID, studentID string) error {
	const query = `DELETE FROM public.enrollments WHERE class_id = $1 AND student_id = $2`
	ct, err := r.pool.Exec(ctx, query, classID, studentID)
	if err != nil {
		return fmt.Errorf("unenroll student failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotEnrolled
	}
	return nil
}

func (r *pgxRepository) ListByStudent(ctx context.Context, studentID string) ([]*Class, error) {
	builder := selectClasses().
		Join("public.enrollments e ON e.class_id = c.id").
		Where(sq.Eq{"e.student_id": studentID}).
		OrderBy("c.day_of_week", "c.start_time")

	return r.queryClasses(ctx, builder)
}

func (r *pgxRepository) ListByLecturer(ctx context.Context, lecturerID string) ([]*Class, error) {
	builder := selectClasses().
		Where(sq.Eq{"c.lecturer_id": lecturerID}).
		OrderBy("c.day_of_week", "c.start_time")

	return r.queryClasses(ctx, builder)
}
