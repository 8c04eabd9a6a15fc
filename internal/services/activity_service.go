package services

import (
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"go.uber.org/zap"
)

// ActivityService records and serves the per-board audit trail.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activityRepo repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Record appends an activity entry. Recording is best-effort: a failure is
// logged and swallowed so it never fails the mutation it describes.
func (s *ActivityService) Record(boardID, cardID, userID string, activityType models.ActivityType, data string) {
	activity := &models.Activity{
		ID:      utils.NewID(utils.PrefixActivity),
		BoardID: boardID,
		CardID:  cardID,
		UserID:  userID,
		Type:    activityType,
		Data:    data,
	}
	if err := s.activityRepo.Create(activity); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("board_id", boardID),
			zap.String("type", string(activityType)),
			zap.Error(err),
		)
	}
}

// List returns a page of the board's activity feed, newest first.
func (s *ActivityService) List(boardID string, limit, offset int) ([]models.Activity, int64, error) {
	activities, total, err := s.activityRepo.ListByBoard(boardID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, total, nil
}
