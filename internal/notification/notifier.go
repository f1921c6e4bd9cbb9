package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/reservation"
)

// ReservationNotifier fans reservation events out into per-user inbox
// entries. It satisfies reservation.Notifier.
type ReservationNotifier struct {
	service   Service
	lecturers lecturer.Service
}

func NewReservationNotifier(service Service, lecturers lecturer.Service) *ReservationNotifier {
	return &ReservationNotifier{service: service, lecturers: lecturers}
}

// ReservationCreated tells the owning lecturer about a new consultation
// request. Room requests wait for an admin decision, so nobody is
// notified until the status changes.
func (n *ReservationNotifier) ReservationCreated(ctx context.Context, r *reservation.Reservation) error {
	if r.ResourceKind != reservation.KindConsultation {
		return nil
	}

	lec, err := n.lecturers.GetByID(ctx, r.ResourceID)
	if err != nil {
		if errors.Is(err, lecturer.ErrNotFound) {
			return nil
		}
		return err
	}
	if lec.UserID == "" {
		return nil
	}

	_, err = n.service.Create(ctx, CreateRequest{
		UserID:    lec.UserID,
		Type:      TypeReservation,
		Title:     "New consultation request",
		Message:   fmt.Sprintf("%s requested a consultation on %s from %s to %s.", r.RequesterName, r.Date, r.Start, r.End),
		RelatedID: r.ID,
	})
	return err
}

func (n *ReservationNotifier) ReservationStatusChanged(ctx context.Context, r *reservation.Reservation, previous reservation.Status) error {
	// The requester triggered the cancellation themselves.
	if r.Status == reservation.StatusCancelled {
		return nil
	}

	_, err := n.service.Upsert(ctx, CreateRequest{
		UserID:    r.RequesterID,
		Type:      TypeReservation,
		Title:     fmt.Sprintf("Reservation %s", r.Status),
		Message:   fmt.Sprintf("Your reservation for %s on %s from %s to %s is now %s.", r.ResourceName, r.Date, r.Start, r.End, r.Status),
		RelatedID: r.ID,
	})
	return err
}
