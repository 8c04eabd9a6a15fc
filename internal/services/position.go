package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmptyReorder    = errors.New("reorder payload cannot be empty")
	ErrUnknownListID   = errors.New("list does not belong to this board")
	ErrUnknownCardID   = errors.New("card does not belong to this board")
	ErrIncompleteOrder = errors.New("ordered ids must cover every non-archived list exactly once")
)

// CardMove is one (card, target list, target position) triple of a
// cross-list drag. The affected set spans the destination list's post-move
// order plus the source list's re-densified remainder.
type CardMove struct {
	CardID   string `json:"id" binding:"required"`
	ListID   string `json:"list_id" binding:"required"`
	Position int    `json:"position" binding:"min=0"`
}

// PositionSequencer owns every position an entity gets: appends on create,
// full in-container reorders, and cross-container card moves. Positions are
// ordering hints, not unique keys; two racing writers can collide and the
// next full reorder re-densifies whatever they left behind.
type PositionSequencer struct {
	listRepo repository.ListRepository
	cardRepo repository.CardRepository
}

// NewPositionSequencer creates a new PositionSequencer.
func NewPositionSequencer(listRepo repository.ListRepository, cardRepo repository.CardRepository) *PositionSequencer {
	return &PositionSequencer{
		listRepo: listRepo,
		cardRepo: cardRepo,
	}
}

// NextListPosition returns the append position for a new list on the board:
// one past the current maximum, 0 when the board has no lists.
func (s *PositionSequencer) NextListPosition(boardID string) (int, error) {
	max, err := s.listRepo.MaxPosition(boardID)
	if err != nil {
		return 0, fmt.Errorf("failed to read max list position: %w", err)
	}
	return max + 1, nil
}

// NextCardPosition returns the append position for a new card in the list.
func (s *PositionSequencer) NextCardPosition(listID string) (int, error) {
	max, err := s.cardRepo.MaxPosition(listID)
	if err != nil {
		return 0, fmt.Errorf("failed to read max card position: %w", err)
	}
	return max + 1, nil
}

// ReorderLists writes position = index for the complete ordered sequence of
// the board's non-archived lists. Every id must resolve to a non-archived
// list of the board, and the sequence must cover all of them; otherwise the
// call is rejected before any write. Applying the same sequence twice yields
// the same stored state, and a sequence matching the current order is a
// no-op that never reaches the store.
func (s *PositionSequencer) ReorderLists(boardID string, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return ErrEmptyReorder
	}

	current, err := s.listRepo.ListByBoard(boardID, false)
	if err != nil {
		return fmt.Errorf("failed to load board lists: %w", err)
	}

	known := make(map[string]bool, len(current))
	for _, l := range current {
		known[l.ID] = true
	}
	if len(orderedIDs) != len(current) {
		return ErrIncompleteOrder
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return ErrUnknownListID
		}
		if seen[id] {
			return ErrIncompleteOrder
		}
		seen[id] = true
	}

	if sameOrder(current, orderedIDs) {
		return nil
	}

	// Row-by-row writes; a failure mid-batch leaves earlier writes in
	// place. The next full reorder re-densifies positions.
	for i, id := range orderedIDs {
		if err := s.listRepo.UpdatePosition(id, i); err != nil {
			return fmt.Errorf("failed to write position for list %s: %w", id, err)
		}
	}
	return nil
}

// MoveCards applies a batch of card placement triples spanning one or two
// lists of the board. Each card and each target list must belong to the
// board; the sequencer never reparents across boards. Triples are applied
// independently and earlier writes are not rolled back when a later one
// fails.
func (s *PositionSequencer) MoveCards(boardID string, moves []CardMove) error {
	if len(moves) == 0 {
		return ErrEmptyReorder
	}

	boardLists, err := s.listRepo.ListByBoard(boardID, true)
	if err != nil {
		return fmt.Errorf("failed to load board lists: %w", err)
	}
	listOnBoard := make(map[string]bool, len(boardLists))
	for _, l := range boardLists {
		listOnBoard[l.ID] = true
	}

	for _, m := range moves {
		if !listOnBoard[m.ListID] {
			return ErrUnknownListID
		}
		card, err := s.cardRepo.FindByID(m.CardID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownCardID
		}
		if err != nil {
			return fmt.Errorf("failed to load card %s: %w", m.CardID, err)
		}
		if !listOnBoard[card.ListID] {
			return ErrUnknownCardID
		}
	}

	for _, m := range moves {
		if err := s.cardRepo.UpdatePlacement(m.CardID, m.ListID, m.Position); err != nil {
			return fmt.Errorf("failed to write placement for card %s: %w", m.CardID, err)
		}
	}
	return nil
}

func sameOrder(current []models.List, orderedIDs []string) bool {
	if len(current) != len(orderedIDs) {
		return false
	}
	for i, l := range current {
		if l.ID != orderedIDs[i] {
			return false
		}
	}
	return true
}
