package lecturer

import (
	"context"
	"strings"
)

type CreateRequest struct {
	UserID     string
	FirstName  string
	LastName   string
	Department string
	Office     string
}

type UpdateRequest struct {
	UserID     *string
	FirstName  *string
	LastName   *string
	Department *string
	Office     *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Lecturer, error)
	GetByID(ctx context.Context, id string) (*Lecturer, error)
	GetByUserID(ctx context.Context, userID string) (*Lecturer, error)
	List(ctx context.Context, filter Filter) ([]*Lecturer, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Lecturer, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Lecturer, error) {
	l := &Lecturer{
		UserID:     strings.TrimSpace(req.UserID),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Department: strings.TrimSpace(req.Department),
		Office:     strings.TrimSpace(req.Office),
	}
	if l.FirstName == "" && l.LastName == "" {
		return nil, ErrEmptyName
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Lecturer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID string) (*Lecturer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Lecturer, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Lecturer, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		l.UserID = strings.TrimSpace(*req.UserID)
	}
	if req.FirstName != nil {
		l.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		l.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Department != nil {
		l.Department = strings.TrimSpace(*req.Department)
	}
	if req.Office != nil {
		l.Office = strings.TrimSpace(*req.Office)
	}

	if l.FirstName == "" && l.LastName == "" {
		return nil, ErrEmptyName
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
