package timetable

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/room"
)

type fakeRepo struct {
	nextID      int
	classes     map[string]*Class
	enrollments map[string]map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		classes:     make(map[string]*Class),
		enrollments: make(map[string]map[string]bool),
	}
}

func (f *fakeRepo) Create(ctx context.Context, cl *Class) error {
	f.nextID++
	cl.ID = fmt.Sprintf("class-%d", f.nextID)
	cp := *cl
	f.classes[cl.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Class, error) {
	cl, ok := f.classes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *cl
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Class, int, error) {
	var out []*Class
	for _, cl := range f.classes {
		cp := *cl
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, cl *Class) error {
	if _, ok := f.classes[cl.ID]; !ok {
		return ErrNotFound
	}
	cp := *cl
	f.classes[cl.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.classes[id]; !ok {
		return ErrNotFound
	}
	delete(f.classes, id)
	return nil
}

func (f *fakeRepo) Enroll(ctx context.Context, classID, studentID string) error {
	if f.enrollments[classID] == nil {
		f.enrollments[classID] = make(map[string]bool)
	}
	if f.enrollments[classID][studentID] {
		return ErrAlreadyEnrolled
	}
	f.enrollments[classID][studentID] = true
	return nil
}

func (f *fakeRepo) Unenroll(ctx context.Context, classID, studentID string) error {
	if !f.enrollments[classID][studentID] {
		return ErrNotEnrolled
	}
	delete(f.enrollments[classID], studentID)
	return nil
}

func (f *fakeRepo) ListByStudent(ctx context.Context, studentID string) ([]*Class, error) {
	var out []*Class
	for classID, students := range f.enrollments {
		if students[studentID] {
			cp := *f.classes[classID]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByLecturer(ctx context.Context, lecturerID string) ([]*Class, error) {
	var out []*Class
	for _, cl := range f.classes {
		if cl.LecturerID == lecturerID {
			cp := *cl
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (f *fakeRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

func (f *fakeRoomService) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	panic("not used")
}

func (f *fakeRoomService) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) Delete(ctx context.Context, id string) error {
	panic("not used")
}

type fakeLecturerService struct {
	lecturers map[string]*lecturer.Lecturer
}

func (f *fakeLecturerService) Create(ctx context.Context, req lecturer.CreateRequest) (*lecturer.Lecturer, error) {
	panic("not used")
}

func (f *fakeLecturerService) GetByID(ctx context.Context, id string) (*lecturer.Lecturer, error) {
	l, ok := f.lecturers[id]
	if !ok {
		return nil, lecturer.ErrNotFound
	}
	return l, nil
}

func (f *fakeLecturerService) GetByUserID(ctx context.Context, userID string) (*lecturer.Lecturer, error) {
	for _, l := range f.lecturers {
		if l.UserID == userID {
			return l, nil
		}
	}
	return nil, lecturer.ErrNotFound
}

func (f *fakeLecturerService) List(ctx context.Context, filter lecturer.Filter) ([]*lecturer.Lecturer, int, error) {
	panic("not used")
}

func (f *fakeLecturerService) Update(ctx context.Context, id string, req lecturer.UpdateRequest) (*lecturer.Lecturer, error) {
	panic("not used")
}

func (f *fakeLecturerService) Delete(ctx context.Context, id string) error {
	panic("not used")
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		"room-1": {ID: "room-1", Name: "A101"},
	}}
	lecturers := &fakeLecturerService{lecturers: map[string]*lecturer.Lecturer{
		"lec-1": {ID: "lec-1", UserID: "user-9", FirstName: "Ada", LastName: "Lovelace"},
	}}
	return NewService(repo, rooms, lecturers), repo
}

func validCreate() CreateClassRequest {
	return CreateClassRequest{
		Name:       "Algorithms",
		DayOfWeek:  int(time.Monday),
		StartTime:  "09:00",
		EndTime:    "11:00",
		RoomID:     "room-1",
		LecturerID: "lec-1",
	}
}

func TestCreateClass(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := newTestService()
		cl, err := svc.CreateClass(ctx, validCreate())
		require.NoError(t, err)
		assert.Equal(t, time.Monday, cl.DayOfWeek)
		assert.Equal(t, "09:00", cl.Start.String())
		assert.Equal(t, "11:00", cl.End.String())
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newTestService()

		req := validCreate()
		req.Name = "  "
		_, err := svc.CreateClass(ctx, req)
		assert.ErrorIs(t, err, ErrEmptyName)

		req = validCreate()
		req.DayOfWeek = 7
		_, err = svc.CreateClass(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDay)

		req = validCreate()
		req.StartTime = "11:00"
		req.EndTime = "09:00"
		_, err = svc.CreateClass(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInterval)

		req = validCreate()
		req.RoomID = "room-404"
		_, err = svc.CreateClass(ctx, req)
		assert.ErrorIs(t, err, room.ErrNotFound)

		req = validCreate()
		req.LecturerID = "lec-404"
		_, err = svc.CreateClass(ctx, req)
		assert.ErrorIs(t, err, lecturer.ErrNotFound)
	})
}

func TestEnrollment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	cl, err := svc.CreateClass(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.Enroll(ctx, cl.ID, "student-1"))

	t.Run("double enroll conflicts", func(t *testing.T) {
		err := svc.Enroll(ctx, cl.ID, "student-1")
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	})

	t.Run("student timetable lists enrolled classes", func(t *testing.T) {
		classes, err := svc.StudentTimetable(ctx, "student-1")
		require.NoError(t, err)
		require.Len(t, classes, 1)
		assert.Equal(t, cl.ID, classes[0].ID)
	})

	t.Run("lecturer schedule lists taught classes", func(t *testing.T) {
		classes, err := svc.LecturerSchedule(ctx, "lec-1")
		require.NoError(t, err)
		require.Len(t, classes, 1)
	})

	t.Run("unenroll", func(t *testing.T) {
		require.NoError(t, svc.Unenroll(ctx, cl.ID, "student-1"))
		err := svc.Unenroll(ctx, cl.ID, "student-1")
		assert.ErrorIs(t, err, ErrNotEnrolled)

		classes, err := svc.StudentTimetable(ctx, "student-1")
		require.NoError(t, err)
		assert.Empty(t, classes)
	})

	t.Run("enroll into unknown class", func(t *testing.T) {
		err := svc.Enroll(ctx, "missing", "student-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
