package reservation

import (
	"context"
	"errors"

	"github.com/campushub/campus-services-backend/internal/lecturer"
	"github.com/campushub/campus-services-backend/internal/room"
)

// Resource is the directory's view of a bookable entity.
type Resource struct {
	ID   string
	Kind Kind
	Name string
	// OwnerUserID is the account allowed to approve or reject
	// reservations on the resource besides admins. Only set for
	// consultation resources with a linked lecturer account.
	OwnerUserID string
}

// ResourceDirectory resolves a resource id against the owning module.
// It is the validator's single read-only external lookup.
type ResourceDirectory interface {
	Find(ctx context.Context, kind Kind, id string) (*Resource, error)
}

type directory struct {
	rooms     room.Service
	lecturers lecturer.Service
}

// NewDirectory builds a ResourceDirectory backed by the room and
// lecturer modules.
func NewDirectory(rooms room.Service, lecturers lecturer.Service) ResourceDirectory {
	return &directory{rooms: rooms, lecturers: lecturers}
}

func (d *directory) Find(ctx context.Context, kind Kind, id string) (*Resource, error) {
	switch kind {
	case KindRoom:
		rm, err := d.rooms.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, room.ErrNotFound) {
				return nil, ErrResourceNotFound
			}
			return nil, err
		}
		return &Resource{ID: rm.ID, Kind: KindRoom, Name: rm.Name}, nil

	case KindConsultation:
		lec, err := d.lecturers.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, lecturer.ErrNotFound) {
				return nil, ErrResourceNotFound
			}
			return nil, err
		}
		return &Resource{
			ID:          lec.ID,
			Kind:        KindConsultation,
			Name:        lec.FullName(),
			OwnerUserID: lec.UserID,
		}, nil

	default:
		return nil, ErrResourceNotFound
	}
}
