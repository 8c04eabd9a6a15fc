package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormListRepository is a GORM implementation of ListRepository
type GormListRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *gorm.DB) ListRepository {
	return &GormListRepository{db: db}
}

// Create creates a new list
func (r *GormListRepository) Create(list *models.List) error {
	return r.db.Create(list).Error
}

// FindByID finds a list by ID
func (r *GormListRepository) FindByID(id string) (*models.List, error) {
	var list models.List
	if err := r.db.First(&list, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByBoard lists a board's lists ordered by position
func (r *GormListRepository) ListByBoard(boardID string, includeArchived bool) ([]models.List, error) {
	var lists []models.List
	query := r.db.Where("board_id = ?", boardID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if err := query.Order("position ASC").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// MaxPosition returns the maximum position among the board's lists, or -1.
// Archived lists count too: they keep their slot so new lists always land
// after everything the board has ever held.
func (r *GormListRepository) MaxPosition(boardID string) (int, error) {
	var max int
	err := r.db.Model(&models.List{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max, err
}

// UpdatePosition writes a single list's position
func (r *GormListRepository) UpdatePosition(id string, position int) error {
	return r.db.Model(&models.List{}).
		Where("id = ?", id).
		Update("position", position).Error
}

// Update updates a list
func (r *GormListRepository) Update(list *models.List) error {
	return r.db.Save(list).Error
}

// Delete removes a list and its cards with their children
func (r *GormListRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cardIDs []string
		if err := tx.Model(&models.Card{}).Where("list_id = ?", id).
			Pluck("id", &cardIDs).Error; err != nil {
			return err
		}

		if len(cardIDs) > 0 {
			var checklistIDs []string
			if err := tx.Model(&models.Checklist{}).Where("card_id IN ?", cardIDs).
				Pluck("id", &checklistIDs).Error; err != nil {
				return err
			}
			if len(checklistIDs) > 0 {
				if err := tx.Where("checklist_id IN ?", checklistIDs).
					Delete(&models.ChecklistItem{}).Error; err != nil {
					return err
				}
			}
			for _, model := range []interface{}{
				&models.Checklist{},
				&models.Comment{},
				&models.Attachment{},
				&models.CardLabel{},
				&models.CardMember{},
			} {
				if err := tx.Where("card_id IN ?", cardIDs).Delete(model).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", cardIDs).Delete(&models.Card{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.List{}, "id = ?", id).Error
	})
}
