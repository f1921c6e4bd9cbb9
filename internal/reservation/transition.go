package reservation

// Actor is the identity attempting a status transition, made explicit
// instead of being read from request state.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// AuthorizeTransition enforces the reservation status state machine:
// pending is the only non-terminal state. pending -> approved/rejected
// requires an admin or, for consultation resources, the owning
// lecturer. pending -> cancelled requires the original requester.
// Everything else is illegal. res may be nil when the resource no
// longer resolves; the admin paths still apply.
func AuthorizeTransition(r *Reservation, target Status, actor Actor, res *Resource) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}

	switch target {
	case StatusApproved, StatusRejected:
		if r.Status != StatusPending {
			return ErrIllegalTransition
		}
		if actor.IsAdmin {
			return nil
		}
		if res != nil && res.Kind == KindConsultation && res.OwnerUserID != "" && res.OwnerUserID == actor.UserID {
			return nil
		}
		return ErrForbidden

	case StatusCancelled:
		if r.Status != StatusPending {
			return ErrIllegalTransition
		}
		if actor.UserID != r.RequesterID {
			return ErrForbidden
		}
		return nil

	default:
		// Nothing transitions back to pending.
		return ErrIllegalTransition
	}
}
