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

var ErrInvalidLabel = errors.New("label name and color are required")

// LabelService provides business logic for board labels.
type LabelService struct {
	labelRepo repository.LabelRepository
}

// NewLabelService creates a new LabelService.
func NewLabelService(labelRepo repository.LabelRepository) *LabelService {
	return &LabelService{
		labelRepo: labelRepo,
	}
}

// CreateLabel adds a label to the board's palette.
func (s *LabelService) CreateLabel(boardID, name, color string) (*models.Label, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(color) == "" {
		return nil, ErrInvalidLabel
	}

	label := &models.Label{
		ID:      utils.NewID(utils.PrefixLabel),
		BoardID: boardID,
		Name:    name,
		Color:   color,
	}
	if err := s.labelRepo.Create(label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return label, nil
}

// ListLabels returns the board's label palette.
func (s *LabelService) ListLabels(boardID string) ([]models.Label, error) {
	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// UpdateLabelInput carries the optional fields of a label update.
type UpdateLabelInput struct {
	Name  *string
	Color *string
}

// UpdateLabel renames or recolors a label.
func (s *LabelService) UpdateLabel(boardID, labelID string, input UpdateLabelInput) (*models.Label, error) {
	if input.Name == nil && input.Color == nil {
		return nil, ErrNoFieldsToUpdate
	}

	label, err := s.findOnBoard(boardID, labelID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidLabel
		}
		label.Name = *input.Name
	}
	if input.Color != nil {
		if strings.TrimSpace(*input.Color) == "" {
			return nil, ErrInvalidLabel
		}
		label.Color = *input.Color
	}

	if err := s.labelRepo.Update(label); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}
	return label, nil
}

// DeleteLabel removes a label from the board and from every card carrying it.
func (s *LabelService) DeleteLabel(boardID, labelID string) error {
	if _, err := s.findOnBoard(boardID, labelID); err != nil {
		return err
	}
	if err := s.labelRepo.Delete(labelID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func (s *LabelService) findOnBoard(boardID, labelID string) (*models.Label, error) {
	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLabelNotFound
		}
		return nil, fmt.Errorf("failed to find label: %w", err)
	}
	if label.BoardID != boardID {
		return nil, ErrLabelNotFound
	}
	return label, nil
}
