package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// CardHandler coordinates card HTTP handlers, including placement, labels
// and assignments.
type CardHandler struct {
	cardService *services.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// CreateCard appends a new card at the end of a list.
func (h *CardHandler) CreateCard(c *gin.Context) {
	boardID := c.Param("boardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCardRequest struct {
		ListID string `json:"list_id" binding:"required"`
		Title  string `json:"title" binding:"required,min=1,max=500"`
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.CreateCard(boardID, req.ListID, userID, req.Title)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardDTO(*card))
}

// GetCard returns the full card view.
func (h *CardHandler) GetCard(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	detail, err := h.cardService.GetCardDetail(boardID, cardID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDetailDTO(*detail))
}

// UpdateCard applies a partial update to card attributes.
func (h *CardHandler) UpdateCard(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	type UpdateCardRequest struct {
		Title       *string    `json:"title" binding:"omitempty,min=1,max=500"`
		Description *string    `json:"description" binding:"omitempty,max=5000"`
		DueDate     *time.Time `json:"due_date"`
		ClearDue    bool       `json:"clear_due"`
		CoverColor  *string    `json:"cover_color" binding:"omitempty,max=50"`
		IsArchived  *bool      `json:"is_archived"`
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.cardService.UpdateCard(boardID, cardID, services.UpdateCardInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
		CoverColor:  req.CoverColor,
		IsArchived:  req.IsArchived,
	})
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardDTO(*card))
}

// DeleteCard removes a card and all of its child rows.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	if err := h.cardService.DeleteCard(boardID, cardID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card deleted successfully",
	})
}

// MoveCards applies a drag's placement triples.
func (h *CardHandler) MoveCards(c *gin.Context) {
	boardID := c.Param("boardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type MoveCardsRequest struct {
		Cards []services.CardMove `json:"cards" binding:"required,dive"`
	}

	var req MoveCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cardService.MoveCards(boardID, userID, req.Cards); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cards moved successfully",
	})
}

// AddLabel applies a board label to a card.
func (h *CardHandler) AddLabel(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	type AddLabelRequest struct {
		LabelID string `json:"label_id" binding:"required"`
	}

	var req AddLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.cardService.AddLabel(boardID, cardID, req.LabelID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Label added to card",
	})
}

// RemoveLabel takes a label off a card.
func (h *CardHandler) RemoveLabel(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")
	labelID := c.Param("labelId")

	if err := h.cardService.RemoveLabel(boardID, cardID, labelID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Label removed from card",
	})
}

// AssignMember assigns a board member to a card.
func (h *CardHandler) AssignMember(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	type AssignMemberRequest struct {
		UserID string `json:"user_id" binding:"required"`
	}

	var req AssignMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.cardService.AssignMember(boardID, cardID, req.UserID)
	if err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      member.ID,
		"card_id": member.CardID,
		"user_id": member.UserID,
	})
}

// UnassignMember removes a user's assignment from a card.
func (h *CardHandler) UnassignMember(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")
	targetUserID := c.Param("userId")

	if err := h.cardService.UnassignMember(boardID, cardID, targetUserID); err != nil {
		respondCardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member unassigned",
	})
}

func respondCardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCardNotFound),
		errors.Is(err, services.ErrListNotFound),
		errors.Is(err, services.ErrLabelNotFound),
		errors.Is(err, services.ErrCardMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidCardTitle),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrEmptyReorder),
		errors.Is(err, services.ErrUnknownListID),
		errors.Is(err, services.ErrUnknownCardID),
		errors.Is(err, services.ErrAssigneeNotOnBoard):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrLabelAlreadyOnCard),
		errors.Is(err, services.ErrAlreadyCardMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrLabelNotOnCard):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
