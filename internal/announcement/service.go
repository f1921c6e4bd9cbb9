package announcement

import (
	"context"
	"strings"

	"github.com/campushub/campus-services-backend/internal/user"
)

type CreateRequest struct {
	Title    string
	Content  string
	Audience Audience
	PostedBy string
}

type UpdateRequest struct {
	Title    *string
	Content  *string
	Audience *Audience
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
	List(ctx context.Context, filter Filter) ([]*Announcement, int, error)
	ListForRole(ctx context.Context, role user.Role, page, pageSize int) ([]*Announcement, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}
	if req.Audience == "" {
		req.Audience = AudienceAll
	}
	if !req.Audience.Valid() {
		return nil, ErrInvalidAudience
	}

	a := &Announcement{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Audience: req.Audience,
		PostedBy: req.PostedBy,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, a.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Announcement, int, error) {
	return s.repo.List(ctx, filter)
}

// ListForRole narrows the feed to announcements the caller's role is
// meant to see. Admins see everything.
func (s *service) ListForRole(ctx context.Context, role user.Role, page, pageSize int) ([]*Announcement, int, error) {
	filter := Filter{Page: page, PageSize: pageSize}

	switch role {
	case user.RoleStudent:
		filter.Audiences = []Audience{AudienceAll, AudienceStudents}
	case user.RoleLecturer:
		filter.Audiences = []Audience{AudienceAll, AudienceLecturers}
	}

	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitle
		}
		a.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, ErrEmptyContent
		}
		a.Content = *req.Content
	}
	if req.Audience != nil {
		if !req.Audience.Valid() {
			return nil, ErrInvalidAudience
		}
		a.Audience = *req.Audience
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
