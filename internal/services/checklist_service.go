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
	ErrChecklistNotFound     = errors.New("checklist not found")
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	ErrInvalidChecklistTitle = errors.New("checklist title cannot be empty")
)

// ChecklistService provides business logic for card checklists and items.
type ChecklistService struct {
	checklistRepo repository.ChecklistRepository
	cardRepo      repository.CardRepository
	listRepo      repository.ListRepository
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(
	checklistRepo repository.ChecklistRepository,
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
) *ChecklistService {
	return &ChecklistService{
		checklistRepo: checklistRepo,
		cardRepo:      cardRepo,
		listRepo:      listRepo,
	}
}

// CreateChecklist appends a checklist to a card.
func (s *ChecklistService) CreateChecklist(boardID, cardID, title string) (*models.Checklist, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidChecklistTitle
	}
	if err := s.verifyCardOnBoard(boardID, cardID); err != nil {
		return nil, err
	}

	max, err := s.checklistRepo.MaxPosition(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to read max checklist position: %w", err)
	}

	checklist := &models.Checklist{
		ID:       utils.NewID(utils.PrefixChecklist),
		CardID:   cardID,
		Title:    title,
		Position: max + 1,
	}
	if err := s.checklistRepo.Create(checklist); err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}
	return checklist, nil
}

// RenameChecklist changes a checklist's title.
func (s *ChecklistService) RenameChecklist(boardID, checklistID, title string) (*models.Checklist, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidChecklistTitle
	}
	checklist, err := s.findOnBoard(boardID, checklistID)
	if err != nil {
		return nil, err
	}
	checklist.Title = title
	if err := s.checklistRepo.Update(checklist); err != nil {
		return nil, fmt.Errorf("failed to update checklist: %w", err)
	}
	return checklist, nil
}

// DeleteChecklist removes a checklist and its items.
func (s *ChecklistService) DeleteChecklist(boardID, checklistID string) error {
	if _, err := s.findOnBoard(boardID, checklistID); err != nil {
		return err
	}
	if err := s.checklistRepo.Delete(checklistID); err != nil {
		return fmt.Errorf("failed to delete checklist: %w", err)
	}
	return nil
}

// CreateItem appends an item to a checklist.
func (s *ChecklistService) CreateItem(boardID, checklistID, title string) (*models.ChecklistItem, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidChecklistTitle
	}
	if _, err := s.findOnBoard(boardID, checklistID); err != nil {
		return nil, err
	}

	max, err := s.checklistRepo.MaxItemPosition(checklistID)
	if err != nil {
		return nil, fmt.Errorf("failed to read max item position: %w", err)
	}

	item := &models.ChecklistItem{
		ID:          utils.NewID(utils.PrefixChecklistItem),
		ChecklistID: checklistID,
		Title:       title,
		Position:    max + 1,
	}
	if err := s.checklistRepo.CreateItem(item); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}
	return item, nil
}

// UpdateItemInput carries the optional fields of a checklist item update.
type UpdateItemInput struct {
	Title     *string
	IsChecked *bool
}

// UpdateItem renames or toggles a checklist item.
func (s *ChecklistService) UpdateItem(boardID, checklistID, itemID string, input UpdateItemInput) (*models.ChecklistItem, error) {
	if input.Title == nil && input.IsChecked == nil {
		return nil, ErrNoFieldsToUpdate
	}

	item, err := s.findItem(boardID, checklistID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidChecklistTitle
		}
		item.Title = *input.Title
	}
	if input.IsChecked != nil {
		item.IsChecked = *input.IsChecked
	}

	if err := s.checklistRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}
	return item, nil
}

// DeleteItem removes a single checklist item.
func (s *ChecklistService) DeleteItem(boardID, checklistID, itemID string) error {
	if _, err := s.findItem(boardID, checklistID, itemID); err != nil {
		return err
	}
	if err := s.checklistRepo.DeleteItem(itemID); err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return nil
}

func (s *ChecklistService) findOnBoard(boardID, checklistID string) (*models.Checklist, error) {
	checklist, err := s.checklistRepo.FindByID(checklistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistNotFound
		}
		return nil, fmt.Errorf("failed to find checklist: %w", err)
	}
	if err := s.verifyCardOnBoard(boardID, checklist.CardID); err != nil {
		return nil, ErrChecklistNotFound
	}
	return checklist, nil
}

func (s *ChecklistService) findItem(boardID, checklistID, itemID string) (*models.ChecklistItem, error) {
	if _, err := s.findOnBoard(boardID, checklistID); err != nil {
		return nil, err
	}
	item, err := s.checklistRepo.FindItemByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to find checklist item: %w", err)
	}
	if item.ChecklistID != checklistID {
		return nil, ErrChecklistItemNotFound
	}
	return item, nil
}

func (s *ChecklistService) verifyCardOnBoard(boardID, cardID string) error {
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
