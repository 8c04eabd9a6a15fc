package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id string) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// ListForUser lists boards the user owns or has joined, newest first.
// A user can appear on both sides; the union is deduplicated by ID.
func (r *GormBoardRepository) ListForUser(userID string) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.
		Distinct("boards.*").
		Joins("LEFT JOIN board_members ON board_members.board_id = boards.id").
		Where("boards.owner_id = ? OR board_members.user_id = ?", userID, userID).
		Order("boards.created_at DESC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete removes a board and everything beneath it in one transaction.
// Children are deleted explicitly in child-first order so the behavior
// does not depend on database-native cascading foreign keys.
func (r *GormBoardRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var listIDs []string
		if err := tx.Model(&models.List{}).Where("board_id = ?", id).
			Pluck("id", &listIDs).Error; err != nil {
			return err
		}

		var cardIDs []string
		if len(listIDs) > 0 {
			if err := tx.Model(&models.Card{}).Where("list_id IN ?", listIDs).
				Pluck("id", &cardIDs).Error; err != nil {
				return err
			}
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

		for _, model := range []interface{}{
			&models.List{},
			&models.Label{},
			&models.BoardMember{},
			&models.Activity{},
		} {
			if err := tx.Where("board_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Board{}, "id = ?", id).Error
	})
}

// AddMember adds a membership row
func (r *GormBoardRepository) AddMember(member *models.BoardMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a membership row
func (r *GormBoardRepository) RemoveMember(boardID, userID string) error {
	return r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&models.BoardMember{}).Error
}

// FindMember finds the unique membership row for (board, user)
func (r *GormBoardRepository) FindMember(boardID, userID string) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMemberByID finds a membership row by its own ID, with user preloaded
func (r *GormBoardRepository) FindMemberByID(id string) (*models.BoardMember, error) {
	var member models.BoardMember
	if err := r.db.Preload("User").First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a board with user info
func (r *GormBoardRepository) ListMembers(boardID string) ([]models.BoardMember, error) {
	var members []models.BoardMember
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers counts membership rows of a board (owner excluded)
func (r *GormBoardRepository) CountMembers(boardID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.BoardMember{}).
		Where("board_id = ?", boardID).
		Count(&count).Error
	return count, err
}
