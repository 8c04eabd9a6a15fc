package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// LabelHandler coordinates board label HTTP handlers.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// CreateLabel adds a label to the board's palette.
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	boardID := c.Param("boardId")

	type CreateLabelRequest struct {
		Name  string `json:"name" binding:"required,min=1,max=100"`
		Color string `json:"color" binding:"required,min=1,max=50"`
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.CreateLabel(boardID, req.Name, req.Color)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

// ListLabels returns the board's label palette.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	boardID := c.Param("boardId")

	labels, err := h.labelService.ListLabels(boardID)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	labelDTOs := make([]dto.LabelDTO, len(labels))
	for i, l := range labels {
		labelDTOs[i] = dto.ToLabelDTO(l)
	}

	c.JSON(http.StatusOK, gin.H{
		"labels": labelDTOs,
	})
}

// UpdateLabel renames or recolors a label.
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	boardID := c.Param("boardId")
	labelID := c.Param("labelId")

	type UpdateLabelRequest struct {
		Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
		Color *string `json:"color" binding:"omitempty,min=1,max=50"`
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	label, err := h.labelService.UpdateLabel(boardID, labelID, services.UpdateLabelInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel removes a label from the board and every card carrying it.
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	boardID := c.Param("boardId")
	labelID := c.Param("labelId")

	if err := h.labelService.DeleteLabel(boardID, labelID); err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Label deleted successfully",
	})
}

func respondLabelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidLabel),
		errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
