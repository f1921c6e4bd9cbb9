package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository whose CreateIfFree holds a mutex
// across the check and the insert, mirroring the transactional
// behavior of the Postgres implementation.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int
	items  map[string]*Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Reservation)}
}

func (f *fakeRepo) overlappingLocked(kind Kind, resourceID, date string, iv Interval) []*Reservation {
	var out []*Reservation
	for _, r := range f.items {
		if r.ResourceKind != kind || r.ResourceID != resourceID || r.Date != date {
			continue
		}
		if !r.Status.Occupies() {
			continue
		}
		if r.Interval().Overlaps(iv) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeRepo) CreateIfFree(ctx context.Context, r *Reservation) ([]*Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if conflicts := f.overlappingLocked(r.ResourceKind, r.ResourceID, r.Date, r.Interval()); len(conflicts) > 0 {
		return conflicts, nil
	}

	f.nextID++
	r.ID = fmt.Sprintf("res-%d", f.nextID)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt

	cp := *r
	f.items[r.ID] = &cp
	return nil, nil
}

func (f *fakeRepo) FindOverlapping(ctx context.Context, kind Kind, resourceID, date string, iv Interval) ([]*Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlappingLocked(kind, resourceID, date, iv), nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Reservation
	for _, r := range f.items {
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status, expected Status) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	if r.Status != expected {
		return time.Time{}, ErrIllegalTransition
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return r.UpdatedAt, nil
}

// fakeDirectory resolves from a fixed resource set.
type fakeDirectory struct {
	resources map[string]*Resource
}

func (d *fakeDirectory) Find(ctx context.Context, kind Kind, id string) (*Resource, error) {
	res, ok := d.resources[id]
	if !ok || res.Kind != kind {
		return nil, ErrResourceNotFound
	}
	return res, nil
}

// captureNotifier records every notification it receives.
type captureNotifier struct {
	mu      sync.Mutex
	created []string
	changed []string
}

func (n *captureNotifier) ReservationCreated(ctx context.Context, r *Reservation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, r.ID)
	return nil
}

func (n *captureNotifier) ReservationStatusChanged(ctx context.Context, r *Reservation, previous Status) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, fmt.Sprintf("%s:%s->%s", r.ID, previous, r.Status))
	return nil
}

func newTestService() (Service, *fakeRepo, *captureNotifier) {
	repo := newFakeRepo()
	dir := &fakeDirectory{resources: map[string]*Resource{
		"room-1": {ID: "room-1", Kind: KindRoom, Name: "A101"},
		"room-2": {ID: "room-2", Kind: KindRoom, Name: "B202"},
		"lec-1":  {ID: "lec-1", Kind: KindConsultation, Name: "Ada Lovelace", OwnerUserID: "lecturer-1"},
	}}
	notifier := &captureNotifier{}
	return NewService(repo, dir, notifier), repo, notifier
}

func roomRequest() CreateRequest {
	return CreateRequest{
		RequesterID:  "student-1",
		ResourceKind: "room",
		ResourceID:   "room-1",
		Date:         "2026-09-15",
		StartTime:    "10:00",
		EndTime:      "12:00",
		Purpose:      "group study",
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _, notifier := newTestService()

		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, r.ID)
		assert.Equal(t, StatusPending, r.Status)
		assert.Equal(t, "A101", r.ResourceName)
		assert.Equal(t, mustTime(t, "10:00"), r.Start)
		assert.Equal(t, mustTime(t, "12:00"), r.End)
		assert.Equal(t, []string{r.ID}, notifier.created)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _, _ := newTestService()

		for _, mutate := range []func(*CreateRequest){
			func(r *CreateRequest) { r.RequesterID = "" },
			func(r *CreateRequest) { r.ResourceID = "  " },
			func(r *CreateRequest) { r.Date = "" },
			func(r *CreateRequest) { r.StartTime = "" },
			func(r *CreateRequest) { r.EndTime = "" },
		} {
			req := roomRequest()
			mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrMissingField)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := roomRequest()
		req.Date = "15/09/2026"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("invalid interval", func(t *testing.T) {
		svc, _, _ := newTestService()

		req := roomRequest()
		req.StartTime = "12:00"
		req.EndTime = "10:00"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInterval)

		req = roomRequest()
		req.StartTime = "10:00"
		req.EndTime = "10:00"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInterval, "empty interval")

		req = roomRequest()
		req.EndTime = "25:00"
		_, err = svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("unknown resource", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := roomRequest()
		req.ResourceID = "room-404"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		svc, _, _ := newTestService()
		req := roomRequest()
		req.ResourceKind = "courtyard"
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("conflict carries the blocking reservations", func(t *testing.T) {
		svc, _, _ := newTestService()

		first, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		req := roomRequest()
		req.RequesterID = "student-2"
		req.StartTime = "11:00"
		req.EndTime = "13:00"
		_, err = svc.Create(ctx, req)

		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		require.Len(t, conflict.Conflicts, 1)
		assert.Equal(t, first.ID, conflict.Conflicts[0].ID)
	})

	t.Run("back to back slots do not conflict", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		req := roomRequest()
		req.StartTime = "12:00"
		req.EndTime = "14:00"
		_, err = svc.Create(ctx, req)
		assert.NoError(t, err, "touching intervals must both be accepted")
	})

	t.Run("same slot on another resource or date is free", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		otherRoom := roomRequest()
		otherRoom.ResourceID = "room-2"
		_, err = svc.Create(ctx, otherRoom)
		assert.NoError(t, err)

		otherDay := roomRequest()
		otherDay.Date = "2026-09-16"
		_, err = svc.Create(ctx, otherDay)
		assert.NoError(t, err)
	})

	t.Run("cancelled and rejected do not occupy the slot", func(t *testing.T) {
		svc, repo, _ := newTestService()

		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)
		_, err = repo.UpdateStatus(ctx, r.ID, StatusRejected, r.Status)
		require.NoError(t, err)

		again, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err, "rejected reservation must free the slot")
		_, err = repo.UpdateStatus(ctx, again.ID, StatusCancelled, again.Status)
		require.NoError(t, err)

		_, err = svc.Create(ctx, roomRequest())
		assert.NoError(t, err, "cancelled reservation must free the slot")
	})
}

func TestServiceCreateRace(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := roomRequest()
			req.RequesterID = fmt.Sprintf("student-%d", i)
			_, errs[i] = svc.Create(ctx, req)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			var ce *ConflictError
			require.ErrorAs(t, err, &ce)
			conflicts++
		}
	}

	assert.Equal(t, 1, wins, "exactly one racing request must win the slot")
	assert.Equal(t, attempts-1, conflicts)
}

func TestServiceCheckConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, roomRequest())
	require.NoError(t, err)

	t.Run("overlapping query returns the reservation", func(t *testing.T) {
		conflicts, err := svc.CheckConflicts(ctx, ConflictQuery{
			ResourceKind: "room",
			ResourceID:   "room-1",
			Date:         "2026-09-15",
			StartTime:    "11:00",
			EndTime:      "13:00",
		})
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.Equal(t, created.ID, conflicts[0].ID)
	})

	t.Run("free slot returns empty", func(t *testing.T) {
		conflicts, err := svc.CheckConflicts(ctx, ConflictQuery{
			ResourceKind: "room",
			ResourceID:   "room-1",
			Date:         "2026-09-15",
			StartTime:    "12:00",
			EndTime:      "13:00",
		})
		require.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("padded fields are trimmed like on create", func(t *testing.T) {
		conflicts, err := svc.CheckConflicts(ctx, ConflictQuery{
			ResourceKind: "room",
			ResourceID:   " room-1 ",
			Date:         " 2026-09-15 ",
			StartTime:    " 11:00 ",
			EndTime:      " 13:00 ",
		})
		require.NoError(t, err)
		require.Len(t, conflicts, 1)
		assert.Equal(t, created.ID, conflicts[0].ID)
	})

	t.Run("passing the check reserves nothing", func(t *testing.T) {
		_, err := svc.CheckConflicts(ctx, ConflictQuery{
			ResourceKind: "room",
			ResourceID:   "room-1",
			Date:         "2026-09-15",
			StartTime:    "14:00",
			EndTime:      "15:00",
		})
		require.NoError(t, err)

		req := roomRequest()
		req.StartTime = "14:00"
		req.EndTime = "15:00"
		_, err = svc.Create(ctx, req)
		assert.NoError(t, err)
	})
}

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	admin := Actor{UserID: "admin-1", IsAdmin: true}

	t.Run("admin approves and requester cannot cancel afterwards", func(t *testing.T) {
		svc, _, notifier := newTestService()
		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, r.ID, StatusApproved, admin)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, updated.Status)
		assert.Contains(t, notifier.changed, fmt.Sprintf("%s:pending->approved", r.ID))

		_, err = svc.Cancel(ctx, r.ID, Actor{UserID: "student-1"})
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("owning lecturer approves consultation", func(t *testing.T) {
		svc, _, _ := newTestService()

		req := roomRequest()
		req.ResourceKind = "consultation"
		req.ResourceID = "lec-1"
		r, err := svc.Create(ctx, req)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, r.ID, StatusApproved, Actor{UserID: "lecturer-1"})
		assert.NoError(t, err)
	})

	t.Run("requester cannot approve", func(t *testing.T) {
		svc, _, _ := newTestService()
		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, r.ID, StatusApproved, Actor{UserID: "student-1"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("requester cancels pending", func(t *testing.T) {
		svc, _, _ := newTestService()
		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		cancelled, err := svc.Cancel(ctx, r.ID, Actor{UserID: "student-1"})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, cancelled.Status)
	})

	t.Run("rejecting frees the slot for a new request", func(t *testing.T) {
		svc, _, _ := newTestService()
		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, r.ID, StatusRejected, admin)
		require.NoError(t, err)

		req := roomRequest()
		req.RequesterID = "student-2"
		_, err = svc.Create(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.UpdateStatus(ctx, "missing", StatusApproved, admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid target status", func(t *testing.T) {
		svc, _, _ := newTestService()
		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		_, err = svc.UpdateStatus(ctx, r.ID, Status("archived"), admin)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("response carries the written updated_at", func(t *testing.T) {
		svc, repo, _ := newTestService()
		r, err := svc.Create(ctx, roomRequest())
		require.NoError(t, err)

		updated, err := svc.UpdateStatus(ctx, r.ID, StatusApproved, admin)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.UpdatedAt, updated.UpdatedAt)
		assert.True(t, updated.UpdatedAt.After(r.CreatedAt))
	})
}

// approveBetweenReads approves the stored reservation right after a
// snapshot is handed out, like a concurrent admin request landing in
// the window between the guard's read and the status write.
type approveBetweenReads struct {
	*fakeRepo
	once sync.Once
}

func (r *approveBetweenReads) GetByID(ctx context.Context, id string) (*Reservation, error) {
	snapshot, err := r.fakeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.once.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.items[id].Status = StatusApproved
		r.items[id].UpdatedAt = time.Now()
	})
	return snapshot, nil
}

func TestServiceUpdateStatusStaleSnapshot(t *testing.T) {
	ctx := context.Background()

	base := newFakeRepo()
	repo := &approveBetweenReads{fakeRepo: base}
	dir := &fakeDirectory{resources: map[string]*Resource{
		"room-1": {ID: "room-1", Kind: KindRoom, Name: "A101"},
	}}
	svc := NewService(repo, dir)

	r, err := svc.Create(ctx, roomRequest())
	require.NoError(t, err)

	// The cancel authorizes against a pending snapshot while the
	// stored row is already approved; the conditional write loses and
	// the approval stays in place.
	_, err = svc.Cancel(ctx, r.ID, Actor{UserID: "student-1"})
	assert.ErrorIs(t, err, ErrIllegalTransition)

	stored, err := base.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}

func TestNotifierFailureDoesNotUndoCommit(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dir := &fakeDirectory{resources: map[string]*Resource{
		"room-1": {ID: "room-1", Kind: KindRoom, Name: "A101"},
	}}
	svc := NewService(repo, dir, failingNotifier{})

	r, err := svc.Create(ctx, roomRequest())
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
}

type failingNotifier struct{}

func (failingNotifier) ReservationCreated(ctx context.Context, r *Reservation) error {
	return errors.New("broker down")
}

func (failingNotifier) ReservationStatusChanged(ctx context.Context, r *Reservation, previous Status) error {
	return errors.New("broker down")
}
