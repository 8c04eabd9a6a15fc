package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrListNotFound     = errors.New("list not found")
	ErrInvalidListTitle = errors.New("list title cannot be empty")
)

// ListService provides business logic for board lists.
type ListService struct {
	listRepo  repository.ListRepository
	sequencer *PositionSequencer
	activity  *ActivityService
}

// NewListService creates a new ListService.
func NewListService(listRepo repository.ListRepository, sequencer *PositionSequencer, activity *ActivityService) *ListService {
	return &ListService{
		listRepo:  listRepo,
		sequencer: sequencer,
		activity:  activity,
	}
}

// CreateList appends a new list at the end of the board.
func (s *ListService) CreateList(boardID, actorID, title string) (*models.List, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidListTitle
	}

	position, err := s.sequencer.NextListPosition(boardID)
	if err != nil {
		return nil, err
	}

	list := &models.List{
		ID:       utils.NewID(utils.PrefixList),
		BoardID:  boardID,
		Title:    title,
		Position: position,
	}
	if err := s.listRepo.Create(list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.activity.Record(boardID, "", actorID, models.ActivityListCreated, title)

	return list, nil
}

// UpdateListInput carries the optional fields of a list update.
type UpdateListInput struct {
	Title      *string
	IsArchived *bool
}

// UpdateList renames or (un)archives a list. Archiving keeps the stored
// position so the list can be restored where it was.
func (s *ListService) UpdateList(boardID, listID string, input UpdateListInput) (*models.List, error) {
	if input.Title == nil && input.IsArchived == nil {
		return nil, ErrNoFieldsToUpdate
	}

	list, err := s.findOnBoard(boardID, listID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidListTitle
		}
		list.Title = *input.Title
	}
	if input.IsArchived != nil {
		list.IsArchived = *input.IsArchived
	}

	if err := s.listRepo.Update(list); err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return list, nil
}

// DeleteList removes a list together with its cards and their children.
func (s *ListService) DeleteList(boardID, listID string) error {
	if _, err := s.findOnBoard(boardID, listID); err != nil {
		return err
	}
	if err := s.listRepo.Delete(listID); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// Reorder applies a complete new ordering of the board's non-archived lists.
func (s *ListService) Reorder(boardID string, orderedIDs []string) error {
	return s.sequencer.ReorderLists(boardID, orderedIDs)
}

func (s *ListService) findOnBoard(boardID, listID string) (*models.List, error) {
	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	if list.BoardID != boardID {
		return nil, ErrListNotFound
	}
	return list, nil
}
