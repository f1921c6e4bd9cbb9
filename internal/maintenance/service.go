package maintenance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/campushub/campus-services-backend/internal/notification"
	"github.com/campushub/campus-services-backend/internal/pkg/storage"
	"github.com/campushub/campus-services-backend/internal/room"
)

type CreateRequest struct {
	RoomID      string
	RequesterID string
	Description string
	Priority    Priority
}

type UpdateStatusRequest struct {
	Status        Status
	AdminFeedback string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Request, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, int, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Request, error)

	UploadPhoto(ctx context.Context, requestID, userID string, isAdmin bool, header *multipart.FileHeader) (*Photo, error)
	DownloadPhoto(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error)
	DownloadThumbnail(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error)
}

type service struct {
	repo          Repository
	rooms         room.Service
	notifications notification.Service
	storage       storage.Storage
	imgProc       *storage.ImageProcessor
}

func NewService(repo Repository, rooms room.Service, notifications notification.Service, store storage.Storage) Service {
	return &service{
		repo:          repo,
		rooms:         rooms,
		notifications: notifications,
		storage:       store,
		imgProc:       storage.NewImageProcessor(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Request, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyDescription
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	m := &Request{
		RoomID:      req.RoomID,
		RequesterID: req.RequesterID,
		Description: strings.TrimSpace(req.Description),
		Priority:    req.Priority,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, m.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Request, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Request, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, req.AdminFeedback); err != nil {
		return nil, err
	}

	m.Status = req.Status
	m.AdminFeedback = req.AdminFeedback

	message := fmt.Sprintf("Your maintenance request for %s is now %s.", m.RoomName, m.Status)
	if m.AdminFeedback != "" {
		message += " Feedback: " + m.AdminFeedback
	}
	_, err = s.notifications.Upsert(ctx, notification.CreateRequest{
		UserID:    m.RequesterID,
		Type:      notification.TypeMaintenance,
		Title:     "Maintenance request updated",
		Message:   message,
		RelatedID: m.ID,
	})
	if err != nil {
		log.Printf("maintenance: notify status change for %s: %v", m.ID, err)
	}

	return m, nil
}

// UploadPhoto stores the original image plus a JPEG thumbnail under a
// sharded path, then records the attachment. Only the requester or an
// admin may attach photos.
func (s *service) UploadPhoto(ctx context.Context, requestID, userID string, isAdmin bool, header *multipart.FileHeader) (*Photo, error) {
	m, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && m.RequesterID != userID {
		return nil, ErrForbidden
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))

	photoID := uuid.New().String()
	shard := photoID[:2]
	storagePath := fmt.Sprintf("maintenance/%s/%s%s", shard, photoID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save photo to storage: %w", err)
	}

	var thumbnailPath *string
	if strings.HasPrefix(contentType, "image/") {
		thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200)
		if err == nil {
			tPath := fmt.Sprintf("maintenance/%s/%s_thumb.jpg", shard, photoID)
			if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
				thumbnailPath = &tPath
			}
		}
	}

	p := &Photo{
		ID:            photoID,
		RequestID:     requestID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
	}

	if err := s.repo.AddPhoto(ctx, p); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return p, nil
}

func (s *service) DownloadPhoto(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve photo from storage: %w", err)
	}
	return stream, p, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, photoID string) (io.ReadCloser, *Photo, error) {
	p, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, nil, err
	}
	if p.ThumbnailPath == nil {
		return nil, nil, ErrNoThumbnail
	}

	stream, err := s.storage.Get(ctx, *p.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, p, nil
}
