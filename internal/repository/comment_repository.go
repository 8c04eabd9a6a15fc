package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID, with its author preloaded
func (r *GormCommentRepository) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByCard lists a card's comments with user info, newest first
func (r *GormCommentRepository) ListByCard(cardID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("User").
		Where("card_id = ?", cardID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Update writes a comment's content; the preloaded author is left alone
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Model(&models.Comment{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content).Error
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(id string) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
