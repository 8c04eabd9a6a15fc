package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormCardRepository is a GORM implementation of CardRepository
type GormCardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &GormCardRepository{db: db}
}

// Create creates a new card
func (r *GormCardRepository) Create(card *models.Card) error {
	return r.db.Create(card).Error
}

// FindByID finds a card by ID
func (r *GormCardRepository) FindByID(id string) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByList lists a list's cards ordered by position
func (r *GormCardRepository) ListByList(listID string, includeArchived bool) ([]models.Card, error) {
	var cards []models.Card
	query := r.db.Where("list_id = ?", listID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if err := query.Order("position ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// MaxPosition returns the maximum position among the list's cards, or -1
func (r *GormCardRepository) MaxPosition(listID string) (int, error) {
	var max int
	err := r.db.Model(&models.Card{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	return max, err
}

// UpdatePlacement writes a card's list and position in one statement
func (r *GormCardRepository) UpdatePlacement(id, listID string, position int) error {
	return r.db.Model(&models.Card{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"list_id":  listID,
			"position": position,
		}).Error
}

// Update updates a card
func (r *GormCardRepository) Update(card *models.Card) error {
	return r.db.Save(card).Error
}

// Delete removes a card and all of its child rows in one transaction,
// children first so no orphans survive a partial failure.
func (r *GormCardRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var checklistIDs []string
		if err := tx.Model(&models.Checklist{}).Where("card_id = ?", id).
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
			if err := tx.Where("card_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Card{}, "id = ?", id).Error
	})
}

// AddLabel links a label to a card
func (r *GormCardRepository) AddLabel(link *models.CardLabel) error {
	return r.db.Create(link).Error
}

// RemoveLabel unlinks a label from a card
func (r *GormCardRepository) RemoveLabel(cardID, labelID string) error {
	return r.db.Where("card_id = ? AND label_id = ?", cardID, labelID).
		Delete(&models.CardLabel{}).Error
}

// FindLabelLink finds the (card, label) link row
func (r *GormCardRepository) FindLabelLink(cardID, labelID string) (*models.CardLabel, error) {
	var link models.CardLabel
	if err := r.db.Where("card_id = ? AND label_id = ?", cardID, labelID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLabels lists the labels applied to a card
func (r *GormCardRepository) ListLabels(cardID string) ([]models.Label, error) {
	var labels []models.Label
	err := r.db.
		Joins("JOIN card_labels ON card_labels.label_id = labels.id").
		Where("card_labels.card_id = ?", cardID).
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// AddMember assigns a user to a card
func (r *GormCardRepository) AddMember(member *models.CardMember) error {
	return r.db.Create(member).Error
}

// RemoveMember unassigns a user from a card
func (r *GormCardRepository) RemoveMember(cardID, userID string) error {
	return r.db.Where("card_id = ? AND user_id = ?", cardID, userID).
		Delete(&models.CardMember{}).Error
}

// FindMember finds the (card, user) assignment row
func (r *GormCardRepository) FindMember(cardID, userID string) (*models.CardMember, error) {
	var member models.CardMember
	if err := r.db.Where("card_id = ? AND user_id = ?", cardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists a card's assignments with user info
func (r *GormCardRepository) ListMembers(cardID string) ([]models.CardMember, error) {
	var members []models.CardMember
	if err := r.db.Preload("User").
		Where("card_id = ?", cardID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers counts a card's assignments
func (r *GormCardRepository) CountMembers(cardID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.CardMember{}).
		Where("card_id = ?", cardID).
		Count(&count).Error
	return count, err
}
