package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// ChecklistHandler coordinates checklist and checklist item HTTP handlers.
type ChecklistHandler struct {
	checklistService *services.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler.
func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

// CreateChecklist appends a checklist to a card.
func (h *ChecklistHandler) CreateChecklist(c *gin.Context) {
	boardID := c.Param("boardId")
	cardID := c.Param("cardId")

	type CreateChecklistRequest struct {
		Title string `json:"title" binding:"required,min=1,max=500"`
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checklist, err := h.checklistService.CreateChecklist(boardID, cardID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChecklistDTO(*checklist))
}

// RenameChecklist changes a checklist's title.
func (h *ChecklistHandler) RenameChecklist(c *gin.Context) {
	boardID := c.Param("boardId")
	checklistID := c.Param("checklistId")

	type RenameChecklistRequest struct {
		Title string `json:"title" binding:"required,min=1,max=500"`
	}

	var req RenameChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	checklist, err := h.checklistService.RenameChecklist(boardID, checklistID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChecklistDTO(*checklist))
}

// DeleteChecklist removes a checklist and its items.
func (h *ChecklistHandler) DeleteChecklist(c *gin.Context) {
	boardID := c.Param("boardId")
	checklistID := c.Param("checklistId")

	if err := h.checklistService.DeleteChecklist(boardID, checklistID); err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checklist deleted successfully",
	})
}

// CreateItem appends an item to a checklist.
func (h *ChecklistHandler) CreateItem(c *gin.Context) {
	boardID := c.Param("boardId")
	checklistID := c.Param("checklistId")

	type CreateItemRequest struct {
		Title string `json:"title" binding:"required,min=1,max=500"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.CreateItem(boardID, checklistID, req.Title)
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ChecklistItemDTO{
		ID:        item.ID,
		Title:     item.Title,
		IsChecked: item.IsChecked,
		Position:  item.Position,
	})
}

// UpdateItem renames or toggles a checklist item.
func (h *ChecklistHandler) UpdateItem(c *gin.Context) {
	boardID := c.Param("boardId")
	checklistID := c.Param("checklistId")
	itemID := c.Param("itemId")

	type UpdateItemRequest struct {
		Title     *string `json:"title" binding:"omitempty,min=1,max=500"`
		IsChecked *bool   `json:"is_checked"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.checklistService.UpdateItem(boardID, checklistID, itemID, services.UpdateItemInput{
		Title:     req.Title,
		IsChecked: req.IsChecked,
	})
	if err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChecklistItemDTO{
		ID:        item.ID,
		Title:     item.Title,
		IsChecked: item.IsChecked,
		Position:  item.Position,
	})
}

// DeleteItem removes a single checklist item.
func (h *ChecklistHandler) DeleteItem(c *gin.Context) {
	boardID := c.Param("boardId")
	checklistID := c.Param("checklistId")
	itemID := c.Param("itemId")

	if err := h.checklistService.DeleteItem(boardID, checklistID, itemID); err != nil {
		respondChecklistError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checklist item deleted successfully",
	})
}

func respondChecklistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChecklistNotFound),
		errors.Is(err, services.ErrChecklistItemNotFound),
		errors.Is(err, services.ErrCardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidChecklistTitle),
		errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
