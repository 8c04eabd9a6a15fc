package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormChecklistRepository is a GORM implementation of ChecklistRepository
type GormChecklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates a new ChecklistRepository
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &GormChecklistRepository{db: db}
}

// Create creates a new checklist
func (r *GormChecklistRepository) Create(checklist *models.Checklist) error {
	return r.db.Create(checklist).Error
}

// FindByID finds a checklist by ID
func (r *GormChecklistRepository) FindByID(id string) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := r.db.First(&checklist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &checklist, nil
}

// ListByCard lists a card's checklists ordered by position
func (r *GormChecklistRepository) ListByCard(cardID string) ([]models.Checklist, error) {
	var checklists []models.Checklist
	if err := r.db.Where("card_id = ?", cardID).
		Order("position ASC").
		Find(&checklists).Error; err != nil {
		return nil, err
	}
	return checklists, nil
}

// MaxPosition returns the maximum checklist position on the card, or -1
func (r *GormChecklistRepository) MaxPosition(cardID string) (int, error) {
	var max int
	err := r.db.Model(&models.Checklist{}).
		Where("card_id = ?", cardID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max, err
}

// Update updates a checklist
func (r *GormChecklistRepository) Update(checklist *models.Checklist) error {
	return r.db.Save(checklist).Error
}

// Delete removes a checklist, items first. The two-step order is explicit
// so deletion stays deterministic on stores without cascading foreign keys.
func (r *GormChecklistRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_id = ?", id).
			Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Checklist{}, "id = ?", id).Error
	})
}

// CreateItem creates a checklist item
func (r *GormChecklistRepository) CreateItem(item *models.ChecklistItem) error {
	return r.db.Create(item).Error
}

// FindItemByID finds a checklist item by ID
func (r *GormChecklistRepository) FindItemByID(id string) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems lists a checklist's items ordered by position
func (r *GormChecklistRepository) ListItems(checklistID string) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := r.db.Where("checklist_id = ?", checklistID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MaxItemPosition returns the maximum item position in the checklist, or -1
func (r *GormChecklistRepository) MaxItemPosition(checklistID string) (int, error) {
	var max int
	err := r.db.Model(&models.ChecklistItem{}).
		Where("checklist_id = ?", checklistID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max, err
}

// UpdateItem updates a checklist item
func (r *GormChecklistRepository) UpdateItem(item *models.ChecklistItem) error {
	return r.db.Save(item).Error
}

// DeleteItem removes a checklist item
func (r *GormChecklistRepository) DeleteItem(id string) error {
	return r.db.Delete(&models.ChecklistItem{}, "id = ?", id).Error
}
