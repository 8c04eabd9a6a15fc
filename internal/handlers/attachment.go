package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// AttachmentHandler coordinates attachment HTTP handlers. Uploads go
// straight from the client to object storage via presigned URLs; this API
// only issues grants and tracks metadata.
type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// PresignUpload issues a short-lived direct-upload grant.
func (h *AttachmentHandler) PresignUpload(c *gin.Context) {
	type PresignRequest struct {
		Filename    string `json:"filename" binding:"required,min=1,max=500"`
		ContentType string `json:"content_type" binding:"max=255"`
	}

	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	grant, err := h.attachmentService.PresignUpload(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"upload_url": grant.UploadURL,
		"key":        grant.Key,
		"expires_in": int(grant.ExpiresIn.Seconds()),
	})
}

// CreateAttachment registers an uploaded object against a card.
func (h *AttachmentHandler) CreateAttachment(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateAttachmentRequest struct {
		Filename         string `json:"filename" binding:"required,min=1,max=500"`
		OriginalFilename string `json:"original_filename" binding:"max=500"`
		ContentType      string `json:"content_type" binding:"max=255"`
		Size             int64  `json:"size" binding:"min=0"`
		StorageKey       string `json:"storage_key" binding:"required,min=1,max=500"`
	}

	var req CreateAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	attachment, err := h.attachmentService.CreateAttachment(boardID, cardID, userID, services.CreateAttachmentInput{
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		ContentType:      req.ContentType,
		Size:             req.Size,
		StorageKey:       req.StorageKey,
	})
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// ListAttachments returns a card's attachments, newest first.
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	attachments, err := h.attachmentService.ListAttachments(boardID, cardID)
	if err != nil {
		respondAttachmentError(c, err)
		return
	}

	attachmentDTOs := make([]dto.AttachmentDTO, len(attachments))
	for i, a := range attachments {
		attachmentDTOs[i] = dto.ToAttachmentDTO(a)
	}

	c.JSON(http.StatusOK, gin.H{
		"attachments": attachmentDTOs,
	})
}

// DeleteAttachment removes an attachment.
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	boardID := c.Param("boardId")
	attachmentID := c.Param("attachmentId")

	if err := h.attachmentService.DeleteAttachment(c.Request.Context(), boardID, attachmentID); err != nil {
		respondAttachmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attachment deleted successfully",
	})
}

func respondAttachmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAttachmentNotFound),
		errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidAttachment):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
