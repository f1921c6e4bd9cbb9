package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeTransition(t *testing.T) {
	admin := Actor{UserID: "admin-1", IsAdmin: true}
	requester := Actor{UserID: "student-1"}
	stranger := Actor{UserID: "student-2"}
	owner := Actor{UserID: "lecturer-1"}

	pendingRoom := func() *Reservation {
		return &Reservation{ID: "r1", ResourceKind: KindRoom, RequesterID: "student-1", Status: StatusPending}
	}
	pendingConsultation := func() *Reservation {
		return &Reservation{ID: "r2", ResourceKind: KindConsultation, RequesterID: "student-1", Status: StatusPending}
	}

	roomRes := &Resource{ID: "room-1", Kind: KindRoom, Name: "A101"}
	consultationRes := &Resource{ID: "lec-1", Kind: KindConsultation, Name: "Ada Lovelace", OwnerUserID: "lecturer-1"}
	unlinkedConsultation := &Resource{ID: "lec-2", Kind: KindConsultation, Name: "Grace Hopper"}

	t.Run("admin approves pending", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(pendingRoom(), StatusApproved, admin, roomRes))
	})

	t.Run("admin rejects pending", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(pendingRoom(), StatusRejected, admin, roomRes))
	})

	t.Run("owning lecturer approves consultation", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(pendingConsultation(), StatusApproved, owner, consultationRes))
	})

	t.Run("owning lecturer rejects consultation", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(pendingConsultation(), StatusRejected, owner, consultationRes))
	})

	t.Run("lecturer cannot approve room reservation", func(t *testing.T) {
		err := AuthorizeTransition(pendingRoom(), StatusApproved, owner, roomRes)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("requester cannot approve own reservation", func(t *testing.T) {
		err := AuthorizeTransition(pendingRoom(), StatusApproved, requester, roomRes)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unlinked consultation requires admin", func(t *testing.T) {
		err := AuthorizeTransition(pendingConsultation(), StatusApproved, owner, unlinkedConsultation)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin approves when resource is gone", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(pendingRoom(), StatusApproved, admin, nil))
	})

	t.Run("requester cancels pending", func(t *testing.T) {
		assert.NoError(t, AuthorizeTransition(pendingRoom(), StatusCancelled, requester, roomRes))
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		err := AuthorizeTransition(pendingRoom(), StatusCancelled, stranger, roomRes)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin cannot cancel on behalf of requester", func(t *testing.T) {
		err := AuthorizeTransition(pendingRoom(), StatusCancelled, admin, roomRes)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("terminal states reject every transition", func(t *testing.T) {
		for _, from := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
			for _, target := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
				r := pendingRoom()
				r.Status = from
				err := AuthorizeTransition(r, target, admin, roomRes)
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", from, target)
			}
		}
	})

	t.Run("nothing transitions back to pending", func(t *testing.T) {
		err := AuthorizeTransition(pendingRoom(), StatusPending, admin, roomRes)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("unknown target status", func(t *testing.T) {
		err := AuthorizeTransition(pendingRoom(), Status("archived"), admin, roomRes)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
