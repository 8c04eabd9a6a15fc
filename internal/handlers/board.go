package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-board-api/internal/dto"
	apierrors "github.com/yukikurage/kanban-board-api/internal/errors"
	"github.com/yukikurage/kanban-board-api/internal/middleware"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
	"github.com/yukikurage/kanban-board-api/internal/utils"
)

// BoardHandler coordinates board and membership HTTP handlers.
type BoardHandler struct {
	boardService    *services.BoardService
	activityService *services.ActivityService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService, activityService *services.ActivityService) *BoardHandler {
	return &BoardHandler{
		boardService:    boardService,
		activityService: activityService,
	}
}

// CreateBoard creates a new board owned by the caller.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		Name        string `json:"name" binding:"required,min=1,max=100"`
		Description string `json:"description" binding:"max=500"`
		Background  string `json:"background" binding:"max=50"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Background:  req.Background,
		OwnerID:     userID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDTO(*board))
}

// ListBoards returns boards the caller owns or has joined.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	summaries, err := h.boardService.ListBoardsForUser(userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	boards := make([]dto.BoardSummaryDTO, len(summaries))
	for i, s := range summaries {
		boards[i] = dto.ToBoardSummaryDTO(s)
	}

	c.JSON(http.StatusOK, gin.H{
		"boards": boards,
	})
}

// GetBoard returns the full nested board view.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID := c.Param("boardId")

	detail, err := h.boardService.GetBoardDetail(boardID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	role, _ := middleware.GetBoardRole(c)
	c.JSON(http.StatusOK, dto.ToBoardDetailDTO(*detail, role))
}

// UpdateBoard applies a partial update to board attributes.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID := c.Param("boardId")

	type UpdateBoardRequest struct {
		Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
		Description *string `json:"description" binding:"omitempty,max=500"`
		Background  *string `json:"background" binding:"omitempty,max=50"`
		IsClosed    *bool   `json:"is_closed"`
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoard(boardID, services.UpdateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Background:  req.Background,
		IsClosed:    req.IsClosed,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(*board))
}

// DeleteBoard removes a board. This route is not behind the access gate:
// the owner check happens against the stored row so a closed board can
// still be deleted by its owner.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	boardID := c.Param("boardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.boardService.DeleteBoard(boardID, userID); err != nil {
		// Missing and not-owned boards answer alike so this ungated
		// route cannot be probed for board existence.
		if errors.Is(err, services.ErrBoardNotFound) || errors.Is(err, services.ErrNotBoardOwner) {
			apierrors.Forbidden(c, "Only the board owner can delete a board")
			return
		}
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}

// ListMembers returns the board's roster including the owner.
func (h *BoardHandler) ListMembers(c *gin.Context) {
	boardID := c.Param("boardId")

	members, owner, err := h.boardService.ListMembers(boardID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	memberDTOs := make([]dto.BoardMemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = dto.ToBoardMemberDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"owner":   dto.ToUserDTO(*owner),
		"members": memberDTOs,
	})
}

// AddMember invites a user to the board by email.
func (h *BoardHandler) AddMember(c *gin.Context) {
	boardID := c.Param("boardId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type AddMemberRequest struct {
		Email string           `json:"email" binding:"required,email"`
		Role  models.BoardRole `json:"role" binding:"omitempty,oneof=admin member viewer"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.boardService.AddMember(boardID, userID, services.AddMemberInput{
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardMemberDTO(*member))
}

// RemoveMember removes a member from the board.
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	boardID := c.Param("boardId")
	targetUserID := c.Param("userId")

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.boardService.RemoveMember(boardID, userID, targetUserID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// ListActivity returns a page of the board's activity feed.
func (h *BoardHandler) ListActivity(c *gin.Context) {
	boardID := c.Param("boardId")
	params := utils.GetPaginationParams(c)

	activities, total, err := h.activityService.List(boardID, params.Limit, params.Offset)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch activity")
		return
	}

	activityDTOs := make([]dto.ActivityDTO, len(activities))
	for i, a := range activities {
		activityDTOs[i] = dto.ToActivityDTO(a)
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activityDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidBoardName),
		errors.Is(err, services.ErrNoFieldsToUpdate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotBoardOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyBoardMember),
		errors.Is(err, services.ErrMemberIsOwner):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
