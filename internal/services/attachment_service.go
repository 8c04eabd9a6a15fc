package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrInvalidAttachment  = errors.New("attachment filename and storage key are required")
)

// PresignedUpload is a short-lived direct-upload grant for object storage.
type PresignedUpload struct {
	UploadURL string
	Key       string
	ExpiresIn time.Duration
}

// ObjectStore abstracts the object storage backend attachments live in.
type ObjectStore interface {
	// PresignUpload returns a presigned PUT URL the client uploads to
	// directly; the API never proxies file bytes.
	PresignUpload(ctx context.Context, filename, contentType string) (*PresignedUpload, error)

	// RemoveObject deletes a stored object by key.
	RemoveObject(ctx context.Context, key string) error
}

// AttachmentService provides business logic for card attachments. Rows hold
// metadata only; bytes are uploaded by the client straight to the store.
type AttachmentService struct {
	attachmentRepo repository.AttachmentRepository
	cardRepo       repository.CardRepository
	listRepo       repository.ListRepository
	store          ObjectStore
	logger         *zap.Logger
}

// NewAttachmentService creates a new AttachmentService.
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	store ObjectStore,
	logger *zap.Logger,
) *AttachmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		cardRepo:       cardRepo,
		listRepo:       listRepo,
		store:          store,
		logger:         logger,
	}
}

// PresignUpload issues a direct-upload grant for a new attachment.
func (s *AttachmentService) PresignUpload(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, ErrInvalidAttachment
	}
	grant, err := s.store.PresignUpload(ctx, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	return grant, nil
}

// CreateAttachmentInput records metadata for an object the client already
// uploaded under a presigned key.
type CreateAttachmentInput struct {
	Filename         string
	OriginalFilename string
	ContentType      string
	Size             int64
	StorageKey       string
}

// CreateAttachment registers an uploaded object against a card.
func (s *AttachmentService) CreateAttachment(boardID, cardID, userID string, input CreateAttachmentInput) (*models.Attachment, error) {
	if strings.TrimSpace(input.Filename) == "" || strings.TrimSpace(input.StorageKey) == "" {
		return nil, ErrInvalidAttachment
	}
	if err := s.verifyCardOnBoard(boardID, cardID); err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		ID:               utils.NewID(utils.PrefixAttachment),
		CardID:           cardID,
		UserID:           userID,
		Filename:         input.Filename,
		OriginalFilename: input.OriginalFilename,
		ContentType:      input.ContentType,
		Size:             input.Size,
		StorageKey:       input.StorageKey,
	}
	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}
	return attachment, nil
}

// ListAttachments returns a card's attachments, newest first.
func (s *AttachmentService) ListAttachments(boardID, cardID string) ([]models.Attachment, error) {
	if err := s.verifyCardOnBoard(boardID, cardID); err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.ListByCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes the metadata row, then best-effort removes the
// stored object. A storage failure after the row is gone is logged, not
// surfaced; the row is the source of truth.
func (s *AttachmentService) DeleteAttachment(ctx context.Context, boardID, attachmentID string) error {
	attachment, err := s.attachmentRepo.FindByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}
	if err := s.verifyCardOnBoard(boardID, attachment.CardID); err != nil {
		return ErrAttachmentNotFound
	}

	if err := s.attachmentRepo.Delete(attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	if err := s.store.RemoveObject(ctx, attachment.StorageKey); err != nil {
		s.logger.Warn("failed to remove attachment object",
			zap.String("attachment_id", attachmentID),
			zap.String("storage_key", attachment.StorageKey),
			zap.Error(err),
		)
	}
	return nil
}

func (s *AttachmentService) verifyCardOnBoard(boardID, cardID string) error {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to find card: %w", err)
	}
	list, err := s.listRepo.FindByID(card.ListID)
	if err != nil {
		return fmt.Errorf("failed to find card's list: %w", err)
	}
	if list.BoardID != boardID {
		return ErrCardNotFound
	}
	return nil
}
