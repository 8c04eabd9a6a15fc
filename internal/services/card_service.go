package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCardNotFound       = errors.New("card not found")
	ErrInvalidCardTitle   = errors.New("card title cannot be empty")
	ErrLabelNotFound      = errors.New("label not found")
	ErrLabelAlreadyOnCard = errors.New("label already applied to card")
	ErrLabelNotOnCard     = errors.New("label is not applied to card")
	ErrAlreadyCardMember  = errors.New("user is already assigned to card")
	ErrCardMemberNotFound = errors.New("user is not assigned to card")
	ErrAssigneeNotOnBoard = errors.New("user is not a member of the board")
)

// CardService provides business logic for cards and their sub-resources.
type CardService struct {
	cardRepo       repository.CardRepository
	listRepo       repository.ListRepository
	labelRepo      repository.LabelRepository
	boardRepo      repository.BoardRepository
	checklistRepo  repository.ChecklistRepository
	commentRepo    repository.CommentRepository
	attachmentRepo repository.AttachmentRepository
	sequencer      *PositionSequencer
	activity       *ActivityService
}

// NewCardService creates a new CardService.
func NewCardService(
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	labelRepo repository.LabelRepository,
	boardRepo repository.BoardRepository,
	checklistRepo repository.ChecklistRepository,
	commentRepo repository.CommentRepository,
	attachmentRepo repository.AttachmentRepository,
	sequencer *PositionSequencer,
	activity *ActivityService,
) *CardService {
	return &CardService{
		cardRepo:       cardRepo,
		listRepo:       listRepo,
		labelRepo:      labelRepo,
		boardRepo:      boardRepo,
		checklistRepo:  checklistRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		sequencer:      sequencer,
		activity:       activity,
	}
}

// CreateCard appends a new card at the end of the given list.
func (s *CardService) CreateCard(boardID, listID, actorID, title string) (*models.Card, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidCardTitle
	}

	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	if list.BoardID != boardID {
		return nil, ErrListNotFound
	}

	position, err := s.sequencer.NextCardPosition(listID)
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		ID:       utils.NewID(utils.PrefixCard),
		ListID:   listID,
		Title:    title,
		Position: position,
	}
	if err := s.cardRepo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.activity.Record(boardID, card.ID, actorID, models.ActivityCardCreated, title)

	return card, nil
}

// CardDetail is the full card view: labels, assignments, checklists with
// items, comments and attachments.
type CardDetail struct {
	Card        models.Card
	Labels      []models.Label
	Members     []models.CardMember
	Checklists  []models.Checklist
	Comments    []models.Comment
	Attachments []models.Attachment
}

// GetCardDetail assembles the full card view.
func (s *CardService) GetCardDetail(boardID, cardID string) (*CardDetail, error) {
	card, err := s.findOnBoard(boardID, cardID)
	if err != nil {
		return nil, err
	}

	labels, err := s.cardRepo.ListLabels(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card labels: %w", err)
	}
	members, err := s.cardRepo.ListMembers(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card members: %w", err)
	}
	checklists, err := s.checklistRepo.ListByCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	for i := range checklists {
		items, err := s.checklistRepo.ListItems(checklists[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list checklist items: %w", err)
		}
		checklists[i].Items = items
	}
	comments, err := s.commentRepo.ListByCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	attachments, err := s.attachmentRepo.ListByCard(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	return &CardDetail{
		Card:        *card,
		Labels:      labels,
		Members:     members,
		Checklists:  checklists,
		Comments:    comments,
		Attachments: attachments,
	}, nil
}

// UpdateCardInput carries the optional fields of a card update.
type UpdateCardInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	CoverColor  *string
	IsArchived  *bool
}

// UpdateCard applies a partial update to card attributes. Placement is not
// touched here; moves go through MoveCards.
func (s *CardService) UpdateCard(boardID, cardID string, input UpdateCardInput) (*models.Card, error) {
	if input.Title == nil && input.Description == nil && input.DueDate == nil &&
		!input.ClearDue && input.CoverColor == nil && input.IsArchived == nil {
		return nil, ErrNoFieldsToUpdate
	}

	card, err := s.findOnBoard(boardID, cardID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidCardTitle
		}
		card.Title = *input.Title
	}
	if input.Description != nil {
		card.Description = *input.Description
	}
	if input.ClearDue {
		card.DueDate = nil
	} else if input.DueDate != nil {
		card.DueDate = input.DueDate
	}
	if input.CoverColor != nil {
		card.CoverColor = *input.CoverColor
	}
	if input.IsArchived != nil {
		card.IsArchived = *input.IsArchived
	}

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return card, nil
}

// DeleteCard removes a card and all of its child rows.
func (s *CardService) DeleteCard(boardID, cardID string) error {
	if _, err := s.findOnBoard(boardID, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(cardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// MoveCards applies a drag's placement triples and records one activity
// entry for the batch.
func (s *CardService) MoveCards(boardID, actorID string, moves []CardMove) error {
	if err := s.sequencer.MoveCards(boardID, moves); err != nil {
		return err
	}
	for _, m := range moves {
		s.activity.Record(boardID, m.CardID, actorID, models.ActivityCardMoved, m.ListID)
	}
	return nil
}

// AddLabel applies a board label to a card.
func (s *CardService) AddLabel(boardID, cardID, labelID string) error {
	if _, err := s.findOnBoard(boardID, cardID); err != nil {
		return err
	}

	label, err := s.labelRepo.FindByID(labelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotFound
		}
		return fmt.Errorf("failed to find label: %w", err)
	}
	if label.BoardID != boardID {
		return ErrLabelNotFound
	}

	if _, err := s.cardRepo.FindLabelLink(cardID, labelID); err == nil {
		return ErrLabelAlreadyOnCard
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check label link: %w", err)
	}

	link := &models.CardLabel{
		ID:      utils.NewID(utils.PrefixCardLabel),
		CardID:  cardID,
		LabelID: labelID,
	}
	if err := s.cardRepo.AddLabel(link); err != nil {
		return fmt.Errorf("failed to add label to card: %w", err)
	}
	return nil
}

// RemoveLabel takes a label off a card.
func (s *CardService) RemoveLabel(boardID, cardID, labelID string) error {
	if _, err := s.findOnBoard(boardID, cardID); err != nil {
		return err
	}
	if _, err := s.cardRepo.FindLabelLink(cardID, labelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLabelNotOnCard
		}
		return fmt.Errorf("failed to check label link: %w", err)
	}
	if err := s.cardRepo.RemoveLabel(cardID, labelID); err != nil {
		return fmt.Errorf("failed to remove label from card: %w", err)
	}
	return nil
}

// AssignMember assigns a board member (or the owner) to a card.
func (s *CardService) AssignMember(boardID, cardID, userID string) (*models.CardMember, error) {
	if _, err := s.findOnBoard(boardID, cardID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find board: %w", err)
	}
	if board.OwnerID != userID {
		if _, err := s.boardRepo.FindMember(boardID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotOnBoard
			}
			return nil, fmt.Errorf("failed to check board membership: %w", err)
		}
	}

	if _, err := s.cardRepo.FindMember(cardID, userID); err == nil {
		return nil, ErrAlreadyCardMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check card assignment: %w", err)
	}

	member := &models.CardMember{
		ID:     utils.NewID(utils.PrefixCardMember),
		CardID: cardID,
		UserID: userID,
	}
	if err := s.cardRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to assign member: %w", err)
	}
	return member, nil
}

// UnassignMember removes a user's assignment from a card.
func (s *CardService) UnassignMember(boardID, cardID, userID string) error {
	if _, err := s.findOnBoard(boardID, cardID); err != nil {
		return err
	}
	if _, err := s.cardRepo.FindMember(cardID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCardMemberNotFound
		}
		return fmt.Errorf("failed to check card assignment: %w", err)
	}
	if err := s.cardRepo.RemoveMember(cardID, userID); err != nil {
		return fmt.Errorf("failed to unassign member: %w", err)
	}
	return nil
}

// findOnBoard resolves a card and verifies it sits on the given board via
// its parent list.
func (s *CardService) findOnBoard(boardID, cardID string) (*models.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	list, err := s.listRepo.FindByID(card.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to find card's list: %w", err)
	}
	if list.BoardID != boardID {
		return nil, ErrCardNotFound
	}
	return card, nil
}
