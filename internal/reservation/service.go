package reservation

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// CreateRequest is a proposed reservation before normalization.
type CreateRequest struct {
	RequesterID  string
	ResourceKind string
	ResourceID   string
	Date         string
	StartTime    string
	EndTime      string
	Purpose      string
}

// ConflictQuery describes a read-only availability check.
type ConflictQuery struct {
	ResourceKind string
	ResourceID   string
	Date         string
	StartTime    string
	EndTime      string
}

// Notifier is told about committed reservation changes. Calls happen
// after the commit; a notifier failure is logged and never undoes the
// reservation.
type Notifier interface {
	ReservationCreated(ctx context.Context, r *Reservation) error
	ReservationStatusChanged(ctx context.Context, r *Reservation, previous Status) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	CheckConflicts(ctx context.Context, q ConflictQuery) ([]*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, target Status, actor Actor) (*Reservation, error)
	Cancel(ctx context.Context, id string, actor Actor) (*Reservation, error)
}

type service struct {
	repo      Repository
	dir       ResourceDirectory
	notifiers []Notifier
}

func NewService(repo Repository, dir ResourceDirectory, notifiers ...Notifier) Service {
	return &service{
		repo:      repo,
		dir:       dir,
		notifiers: notifiers,
	}
}

// normalize validates and range-checks a create request. Pure apart
// from the single read-only directory lookup.
func (s *service) normalize(ctx context.Context, req CreateRequest) (*Reservation, *Resource, error) {
	req.ResourceID = strings.TrimSpace(req.ResourceID)
	req.Date = strings.TrimSpace(req.Date)
	req.StartTime = strings.TrimSpace(req.StartTime)
	req.EndTime = strings.TrimSpace(req.EndTime)

	if req.RequesterID == "" || req.ResourceID == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, nil, ErrMissingField
	}

	iv, date, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}

	kind := Kind(req.ResourceKind)
	res, err := s.dir.Find(ctx, kind, req.ResourceID)
	if err != nil {
		return nil, nil, err
	}

	r := &Reservation{
		ResourceKind: kind,
		ResourceID:   req.ResourceID,
		ResourceName: res.Name,
		RequesterID:  req.RequesterID,
		Date:         date,
		Start:        iv.Start,
		End:          iv.End,
		Purpose:      strings.TrimSpace(req.Purpose),
		Status:       StatusPending,
	}
	return r, res, nil
}

func parseSlot(date, startTime, endTime string) (Interval, string, error) {
	day, err := parseDate(date)
	if err != nil {
		return Interval{}, "", err
	}

	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return Interval{}, "", ErrInvalidInterval
	}
	end, err := ParseTimeOfDay(endTime)
	if err != nil {
		return Interval{}, "", ErrInvalidInterval
	}

	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, "", ErrInvalidInterval
	}
	return iv, day, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	r, _, err := s.normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	// The repository re-runs the conflict check inside the commit
	// transaction, so a pre-check passing earlier gives no guarantee
	// here. Exactly one of two racing requests wins.
	conflicts, err := s.repo.CreateIfFree(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	for _, n := range s.notifiers {
		if err := n.ReservationCreated(ctx, r); err != nil {
			log.Printf("reservation %s created notification failed: %v", r.ID, err)
		}
	}
	return r, nil
}

func (s *service) CheckConflicts(ctx context.Context, q ConflictQuery) ([]*Reservation, error) {
	q.ResourceID = strings.TrimSpace(q.ResourceID)
	q.Date = strings.TrimSpace(q.Date)
	q.StartTime = strings.TrimSpace(q.StartTime)
	q.EndTime = strings.TrimSpace(q.EndTime)
	if q.ResourceID == "" || q.Date == "" || q.StartTime == "" || q.EndTime == "" {
		return nil, ErrMissingField
	}

	iv, date, err := parseSlot(q.Date, q.StartTime, q.EndTime)
	if err != nil {
		return nil, err
	}

	kind := Kind(q.ResourceKind)
	if _, err := s.dir.Find(ctx, kind, q.ResourceID); err != nil {
		return nil, err
	}

	return s.repo.FindOverlapping(ctx, kind, q.ResourceID, date, iv)
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, target Status, actor Actor) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The resource may have been removed since the reservation was
	// made; admins can still resolve the reservation in that case.
	res, err := s.dir.Find(ctx, r.ResourceKind, r.ResourceID)
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		return nil, err
	}

	if err := AuthorizeTransition(r, target, actor, res); err != nil {
		return nil, err
	}

	// The guard ran against a snapshot. Conditioning the write on that
	// snapshot's status keeps a transition that committed in between
	// from being overwritten; the loser gets ErrIllegalTransition.
	updatedAt, err := s.repo.UpdateStatus(ctx, id, target, r.Status)
	if err != nil {
		return nil, err
	}

	previous := r.Status
	r.Status = target
	r.UpdatedAt = updatedAt

	for _, n := range s.notifiers {
		if err := n.ReservationStatusChanged(ctx, r, previous); err != nil {
			log.Printf("reservation %s status notification failed: %v", r.ID, err)
		}
	}
	return r, nil
}

func (s *service) Cancel(ctx context.Context, id string, actor Actor) (*Reservation, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled, actor)
}

func parseDate(s string) (string, error) {
	day, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return day.Format(DateLayout), nil
}
