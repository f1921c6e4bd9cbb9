package maintenance

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-services-backend/internal/notification"
	"github.com/campushub/campus-services-backend/internal/room"
)

type fakeRepo struct {
	nextID int
	items  map[string]*Request
	photos map[string]*Photo
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:  make(map[string]*Request),
		photos: make(map[string]*Photo),
	}
}

func (f *fakeRepo) Create(ctx context.Context, req *Request) error {
	f.nextID++
	req.ID = fmt.Sprintf("mnt-%d", f.nextID)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	cp := *req
	f.items[req.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Request, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Request, int, error) {
	var out []*Request
	for _, m := range f.items {
		if filter.RequesterID != "" && m.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != "" && string(m.Status) != filter.Status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status, feedback string) error {
	m, ok := f.items[id]
	if !ok {
		return ErrNotFound
	}
	m.Status = status
	m.AdminFeedback = feedback
	m.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRepo) AddPhoto(ctx context.Context, p *Photo) error {
	cp := *p
	f.photos[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetPhoto(ctx context.Context, id string) (*Photo, error) {
	p, ok := f.photos[id]
	if !ok {
		return nil, ErrPhotoNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListPhotos(ctx context.Context, requestID string) ([]*Photo, error) {
	var out []*Photo
	for _, p := range f.photos {
		if p.RequestID == requestID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRoomService struct{}

func (fakeRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	panic("not used")
}

func (fakeRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	if id != "room-1" {
		return nil, room.ErrNotFound
	}
	return &room.Room{ID: "room-1", Name: "A101"}, nil
}

func (fakeRoomService) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	panic("not used")
}

func (fakeRoomService) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	panic("not used")
}

func (fakeRoomService) Delete(ctx context.Context, id string) error {
	panic("not used")
}

type captureNotifications struct {
	created []notification.CreateRequest
}

func (c *captureNotifications) Create(ctx context.Context, req notification.CreateRequest) (*notification.Notification, error) {
	c.created = append(c.created, req)
	return &notification.Notification{ID: "n-1", UserID: req.UserID}, nil
}

func (c *captureNotifications) Upsert(ctx context.Context, req notification.CreateRequest) (*notification.Notification, error) {
	return c.Create(ctx, req)
}

func (c *captureNotifications) ListByUser(ctx context.Context, userID string, filter notification.Filter) ([]*notification.Notification, int, error) {
	panic("not used")
}

func (c *captureNotifications) CountUnread(ctx context.Context, userID string) (int, error) {
	panic("not used")
}

func (c *captureNotifications) MarkRead(ctx context.Context, userID, id string) error {
	panic("not used")
}

func (c *captureNotifications) MarkAllRead(ctx context.Context, userID string) error {
	panic("not used")
}

type nopStorage struct{}

func (nopStorage) Save(ctx context.Context, path string, content io.Reader) error { return nil }
func (nopStorage) Get(ctx context.Context, path string) (io.ReadCloser, error)   { return nil, nil }
func (nopStorage) Delete(ctx context.Context, path string) error                 { return nil }

func newTestService() (Service, *captureNotifications) {
	notifications := &captureNotifications{}
	svc := NewService(newFakeRepo(), fakeRoomService{}, notifications, nopStorage{})
	return svc, notifications
}

func TestMaintenanceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults to pending and medium priority", func(t *testing.T) {
		svc, _ := newTestService()

		m, err := svc.Create(ctx, CreateRequest{
			RoomID:      "room-1",
			RequesterID: "student-1",
			Description: "Projector broken",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, m.Status)
		assert.Equal(t, PriorityMedium, m.Priority)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Create(ctx, CreateRequest{RoomID: "room-1", RequesterID: "s", Description: "  "})
		assert.ErrorIs(t, err, ErrEmptyDescription)

		_, err = svc.Create(ctx, CreateRequest{RoomID: "room-1", RequesterID: "s", Description: "d", Priority: "urgent"})
		assert.ErrorIs(t, err, ErrInvalidPriority)

		_, err = svc.Create(ctx, CreateRequest{RoomID: "room-404", RequesterID: "s", Description: "d"})
		assert.ErrorIs(t, err, room.ErrNotFound)
	})
}

func TestMaintenanceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, notifications := newTestService()

	m, err := svc.Create(ctx, CreateRequest{
		RoomID:      "room-1",
		RequesterID: "student-1",
		Description: "Broken chair",
		Priority:    PriorityLow,
	})
	require.NoError(t, err)

	t.Run("status change notifies the requester", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, m.ID, UpdateStatusRequest{
			Status:        StatusResolved,
			AdminFeedback: "Chair replaced",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusResolved, updated.Status)

		require.Len(t, notifications.created, 1)
		assert.Equal(t, "student-1", notifications.created[0].UserID)
		assert.Equal(t, notification.TypeMaintenance, notifications.created[0].Type)
		assert.Contains(t, notifications.created[0].Message, "Chair replaced")
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, m.ID, UpdateStatusRequest{Status: "done"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "missing", UpdateStatusRequest{Status: StatusResolved})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
