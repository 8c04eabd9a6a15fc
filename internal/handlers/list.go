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

// ListHandler coordinates list HTTP handlers.
type ListHandler struct {
	listService *services.ListService
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{
		listService: listService,
	}
}

// CreateList appends a new list at the end of the board.
func (h *ListHandler) CreateList(c *gin.Context) {
	boardID := c.Param("boardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateListRequest struct {
		Title string `json:"title" binding:"required,min=1,max=200"`
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.listService.CreateList(boardID, userID, req.Title)
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToListDTO(*list))
}

// UpdateList renames or (un)archives a list.
func (h *ListHandler) UpdateList(c *gin.Context) {
	boardID := c.Param("boardId")
	listID := c.Param("listId")

	type UpdateListRequest struct {
		Title      *string `json:"title" binding:"omitempty,min=1,max=200"`
		IsArchived *bool   `json:"is_archived"`
	}

	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	list, err := h.listService.UpdateList(boardID, listID, services.UpdateListInput{
		Title:      req.Title,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDTO(*list))
}

// DeleteList removes a list together with its cards.
func (h *ListHandler) DeleteList(c *gin.Context) {
	boardID := c.Param("boardId")
	listID := c.Param("listId")

	if err := h.listService.DeleteList(boardID, listID); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "List deleted successfully",
	})
}

// ReorderLists applies a complete new ordering of the board's lists.
func (h *ListHandler) ReorderLists(c *gin.Context) {
	boardID := c.Param("boardId")

	type ReorderRequest struct {
		ListIDs []string `json:"list_ids" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.listService.Reorder(boardID, req.ListIDs); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Lists reordered successfully",
	})
}

func respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidListTitle),
		errors.Is(err, services.ErrNoFieldsToUpdate),
		errors.Is(err, services.ErrEmptyReorder),
		errors.Is(err, services.ErrUnknownListID),
		errors.Is(err, services.ErrIncompleteOrder):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
