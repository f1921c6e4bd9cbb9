package announcement

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-services-backend/internal/user"
)

type fakeRepo struct {
	nextID int
	items  map[string]*Announcement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Announcement)}
}

func (f *fakeRepo) Create(ctx context.Context, a *Announcement) error {
	f.nextID++
	a.ID = fmt.Sprintf("ann-%d", f.nextID)
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*Announcement, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	allowed := make(map[Audience]bool)
	for _, a := range filter.Audiences {
		allowed[a] = true
	}

	var out []*Announcement
	for _, a := range f.items {
		if len(allowed) > 0 && !allowed[a.Audience] {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, a *Announcement) error {
	if _, ok := f.items[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	f.items[a.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func TestAnnouncementService(t *testing.T) {
	ctx := context.Background()

	post := func(t *testing.T, svc Service, title string, audience Audience) *Announcement {
		t.Helper()
		a, err := svc.Create(ctx, CreateRequest{
			Title:    title,
			Content:  "content",
			Audience: audience,
			PostedBy: "admin-1",
		})
		require.NoError(t, err)
		return a
	}

	t.Run("create validates fields", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(ctx, CreateRequest{Title: "  ", Content: "c", PostedBy: "admin-1"})
		assert.ErrorIs(t, err, ErrEmptyTitle)

		_, err = svc.Create(ctx, CreateRequest{Title: "t", Content: "", PostedBy: "admin-1"})
		assert.ErrorIs(t, err, ErrEmptyContent)

		_, err = svc.Create(ctx, CreateRequest{Title: "t", Content: "c", Audience: "staff", PostedBy: "admin-1"})
		assert.ErrorIs(t, err, ErrInvalidAudience)
	})

	t.Run("audience defaults to all", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		a := post(t, svc, "Welcome", "")
		assert.Equal(t, AudienceAll, a.Audience)
	})

	t.Run("role narrows the feed", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		post(t, svc, "Everyone", AudienceAll)
		post(t, svc, "Exam schedule", AudienceStudents)
		post(t, svc, "Grading deadline", AudienceLecturers)

		titles := func(items []*Announcement) []string {
			var out []string
			for _, a := range items {
				out = append(out, a.Title)
			}
			return out
		}

		students, _, err := svc.ListForRole(ctx, user.RoleStudent, 1, 50)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Everyone", "Exam schedule"}, titles(students))

		lecturers, _, err := svc.ListForRole(ctx, user.RoleLecturer, 1, 50)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Everyone", "Grading deadline"}, titles(lecturers))

		admins, total, err := svc.ListForRole(ctx, user.RoleAdmin, 1, 50)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, admins, 3)
	})

	t.Run("update and delete", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		a := post(t, svc, "Old title", AudienceAll)

		newTitle := "New title"
		updated, err := svc.Update(ctx, a.ID, UpdateRequest{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, newTitle, updated.Title)

		empty := "  "
		_, err = svc.Update(ctx, a.ID, UpdateRequest{Title: &empty})
		assert.ErrorIs(t, err, ErrEmptyTitle)

		require.NoError(t, svc.Delete(ctx, a.ID))
		_, err = svc.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
