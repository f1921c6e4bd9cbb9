package notification

import (
	"context"
)

type CreateRequest struct {
	UserID    string
	Type      Type
	Title     string
	Message   string
	RelatedID string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Notification, error)
	Upsert(ctx context.Context, req CreateRequest) (*Notification, error)
	ListByUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Notification, error) {
	n := &Notification{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		RelatedID: req.RelatedID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Upsert writes a notification, replacing an unread-or-read entry that
// already exists for the same user, type and related id.
func (s *service) Upsert(ctx context.Context, req CreateRequest) (*Notification, error) {
	n := &Notification{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		RelatedID: req.RelatedID,
	}
	if err := s.repo.Upsert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) ListByUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *service) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}
