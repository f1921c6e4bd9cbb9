package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-services-backend/internal/auth"
)

type fakeRepo struct {
	nextID int
	byID   map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[string]*User)}
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (f *fakeRepo) List(ctx context.Context, filter UserFilter) ([]*User, int, error) {
	var out []*User
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	// Low cost keeps the test fast.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults to student role", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "Alice@Campus.EDU", "password123", "Alice")
		require.NoError(t, err)

		assert.Equal(t, "alice@campus.edu", u.Email, "email is normalized")
		assert.Equal(t, RoleStudent, u.Role)
		assert.True(t, u.IsActive)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "a@b.c", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects empty email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "   ", "password123", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "a@b.c", "password123", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "A@B.C", "password456", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (Service, *fakeRepo, *User) {
		t.Helper()
		svc, repo := newTestService()
		u, err := svc.Register(ctx, "a@b.c", "password123", "Alice")
		require.NoError(t, err)
		return svc, repo, u
	}

	t.Run("success records last login", func(t *testing.T) {
		svc, _, _ := setup(t)

		u, err := svc.Login(ctx, "a@b.c", "password123")
		require.NoError(t, err)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.Login(ctx, "a@b.c", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email does not leak existence", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.Login(ctx, "nobody@b.c", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, _, u := setup(t)

		inactive := false
		_, err := svc.Update(ctx, u.ID, UpdateRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "a@b.c", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, "a@b.c", "password123", "")
	require.NoError(t, err)

	t.Run("promote to lecturer", func(t *testing.T) {
		role := "lecturer"
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, RoleLecturer, updated.Role)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		role := "superuser"
		_, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
