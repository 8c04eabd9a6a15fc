package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id string) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// ListByBoard lists a board's labels
func (r *GormLabelRepository) ListByBoard(boardID string) ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Where("board_id = ?", boardID).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update updates a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete removes a label and its card links
func (r *GormLabelRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("label_id = ?", id).
			Delete(&models.CardLabel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Label{}, "id = ?", id).Error
	})
}
