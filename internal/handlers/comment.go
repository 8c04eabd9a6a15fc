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

// CommentHandler coordinates comment HTTP handlers.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// CreateComment adds a comment to a card.
func (h *CommentHandler) CreateComment(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCommentRequest struct {
		Content string `json:"content" binding:"required,min=1,max=5000"`
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.CreateComment(boardID, cardID, userID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns a card's comments, newest first.
func (h *CommentHandler) ListComments(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	comments, err := h.commentService.ListComments(boardID, cardID)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	commentDTOs := make([]dto.CommentDTO, len(comments))
	for i, cm := range comments {
		commentDTOs[i] = dto.ToCommentDTO(cm)
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": commentDTOs,
	})
}

// UpdateComment edits a comment. Only the author may edit.
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	boardID := c.Param("boardId")
	commentID := c.Param("commentId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateCommentRequest struct {
		Content string `json:"content" binding:"required,min=1,max=5000"`
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	comment, err := h.commentService.UpdateComment(boardID, commentID, userID, req.Content)
	if err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// DeleteComment removes a comment. Only the author may delete.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	boardID := c.Param("boardId")
	commentID := c.Param("commentId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.commentService.DeleteComment(boardID, commentID, userID); err != nil {
		respondCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

func respondCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyComment):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotCommentAuthor):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
