package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity entry
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ListByBoard lists a board's activity with user info, newest first
func (r *GormActivityRepository) ListByBoard(boardID string, limit, offset int) ([]models.Activity, int64, error) {
	var total int64
	if err := r.db.Model(&models.Activity{}).
		Where("board_id = ?", boardID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.Activity
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error; err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
