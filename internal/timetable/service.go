package timetable

import (
	"context"
	"strings"
	"time"

	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/reservation"
	"github.com/campushub/campus-services-backend/internal/room"
)

type CreateClassRequest struct {
	Name       string
	DayOfWeek  int
	StartTime  string
	EndTime    string
	RoomID     string
	LecturerID string
}

type UpdateClassRequest struct {
	Name       *string
	DayOfWeek  *int
	StartTime  *string
	EndTime    *string
	RoomID     *string
	LecturerID *string
}

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*Class, error)
	GetClass(ctx context.Context, id string) (*Class, error)
	ListClasses(ctx context.Context, filter Filter) ([]*Class, int, error)
	UpdateClass(ctx context.Context, id string, req UpdateClassRequest) (*Class, error)
	DeleteClass(ctx context.Context, id string) error

	Enroll(ctx context.Context, classID, studentID string) error
	Unenroll(ctx context.Context, classID, studentID string) error
	StudentTimetable(ctx context.Context, studentID string) ([]*Class, error)
	LecturerSchedule(ctx context.Context, lecturerID string) ([]*Class, error)
}

type service struct {
	repo      Repository
	rooms     room.Service
	lecturers lecturer.Service
}

func NewService(repo Repository, rooms room.Service, lecturers lecturer.Service) Service {
	return &service{repo: repo, rooms: rooms, lecturers: lecturers}
}

func parseSlot(dayOfWeek int, startTime, endTime string) (time.Weekday, reservation.Interval, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return 0, reservation.Interval{}, ErrInvalidDay
	}

	start, err := reservation.ParseTimeOfDay(startTime)
	if err != nil {
		return 0, reservation.Interval{}, ErrInvalidInterval
	}
	end, err := reservation.ParseTimeOfDay(endTime)
	if err != nil {
		return 0, reservation.Interval{}, ErrInvalidInterval
	}

	iv := reservation.Interval{Start: start, End: end}
	if !iv.Valid() {
		return 0, reservation.Interval{}, ErrInvalidInterval
	}

	return time.Weekday(dayOfWeek), iv, nil
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*Class, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	day, iv, err := parseSlot(req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}
	if _, err := s.lecturers.GetByID(ctx, req.LecturerID); err != nil {
		return nil, err
	}

	cl := &Class{
		Name:       strings.TrimSpace(req.Name),
		DayOfWeek:  day,
		Start:      iv.Start,
		End:        iv.End,
		RoomID:     req.RoomID,
		LecturerID: req.LecturerID,
	}
	if err := s.repo.Create(ctx, cl); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, cl.ID)
}

func (s *service) GetClass(ctx context.Context, id string) (*Class, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListClasses(ctx context.Context, filter Filter) ([]*Class, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateClass(ctx context.Context, id string, req UpdateClassRequest) (*Class, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		cl.Name = strings.TrimSpace(*req.Name)
	}

	day := int(cl.DayOfWeek)
	startTime := cl.Start.String()
	endTime := cl.End.String()
	if req.DayOfWeek != nil {
		day = *req.DayOfWeek
	}
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	weekday, iv, err := parseSlot(day, startTime, endTime)
	if err != nil {
		return nil, err
	}
	cl.DayOfWeek = weekday
	cl.Start = iv.Start
	cl.End = iv.End

	if req.RoomID != nil {
		if _, err := s.rooms.GetByID(ctx, *req.RoomID); err != nil {
			return nil, err
		}
		cl.RoomID = *req.RoomID
	}
	if req.LecturerID != nil {
		if _, err := s.lecturers.GetByID(ctx, *req.LecturerID); err != nil {
			return nil, err
		}
		cl.LecturerID = *req.LecturerID
	}

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteClass(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Enroll(ctx context.Context, classID, studentID string) error {
	if _, err := s.repo.GetByID(ctx, classID); err != nil {
		return err
	}
	return s.repo.Enroll(ctx, classID, studentID)
}

func (s *service) Unenroll(ctx context.Context, classID, studentID string) error {
	if _, err := s.repo.GetByID(ctx, classID); err != nil {
		return err
	}
	return s.repo.Unenroll(ctx, classID, studentID)
}

func (s *service) StudentTimetable(ctx context.Context, studentID string) ([]*Class, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *service) LecturerSchedule(ctx context.Context, lecturerID string) ([]*Class, error) {
	return s.repo.ListByLecturer(ctx, lecturerID)
}
