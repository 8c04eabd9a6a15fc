package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

// AccessDecision is the outcome of a board access check.
type AccessDecision struct {
	Allowed bool
	Role    models.BoardRole
}

// AccessService is the gate every board-scoped operation passes through
// before touching data. It is a pure read; it never mutates state.
type AccessService struct {
	boardRepo repository.BoardRepository
}

// NewAccessService creates a new AccessService.
func NewAccessService(boardRepo repository.BoardRepository) *AccessService {
	return &AccessService{
		boardRepo: boardRepo,
	}
}

// CheckAccess resolves the user's role on the board and decides whether the
// user may act on it. A board that does not exist or is closed fails closed.
// The owner always passes, bypassing any required-role restriction; other
// users need a membership row whose role is in required (when required is
// non-empty).
func (s *AccessService) CheckAccess(boardID, userID string, required ...models.BoardRole) (AccessDecision, error) {
	denied := AccessDecision{Allowed: false, Role: models.RoleViewer}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return denied, nil
		}
		return denied, fmt.Errorf("failed to find board: %w", err)
	}
	if board.IsClosed {
		return denied, nil
	}

	if board.OwnerID == userID {
		return AccessDecision{Allowed: true, Role: models.RoleOwner}, nil
	}

	member, err := s.boardRepo.FindMember(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return denied, nil
		}
		return denied, fmt.Errorf("failed to find membership: %w", err)
	}

	if len(required) > 0 && !roleIn(member.Role, required) {
		return AccessDecision{Allowed: false, Role: member.Role}, nil
	}

	return AccessDecision{Allowed: true, Role: member.Role}, nil
}

func roleIn(role models.BoardRole, roles []models.BoardRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
