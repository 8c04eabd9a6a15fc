package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/kanban-board-api/internal/constants"
	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/repository"
	"github.com/yukikurage/kanban-board-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound      = errors.New("board not found")
	ErrInvalidBoardName   = errors.New("board name cannot be empty")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrNotBoardOwner      = errors.New("only the board owner can perform this action")
	ErrAlreadyBoardMember = errors.New("user is already a member of this board")
	ErrMemberIsOwner      = errors.New("user is the board owner")
	ErrCannotRemoveOwner  = errors.New("cannot remove the board owner")
	ErrMemberNotFound     = errors.New("board member not found")
)

// Every new board starts with the same three lists and six labels.
var defaultLists = []string{"To Do", "In Progress", "Done"}

var defaultLabels = []struct {
	Name  string
	Color string
}{
	{"Bug", "#EF4444"},
	{"Feature", "#8B5CF6"},
	{"Enhancement", "#3B82F6"},
	{"Urgent", "#F97316"},
	{"Design", "#EC4899"},
	{"Documentation", "#6B7280"},
}

// BoardService provides business logic for boards and their memberships.
type BoardService struct {
	boardRepo repository.BoardRepository
	listRepo  repository.ListRepository
	cardRepo  repository.CardRepository
	labelRepo repository.LabelRepository
	userRepo  repository.UserRepository
	activity  *ActivityService
}

// NewBoardService creates a new BoardService.
func NewBoardService(
	boardRepo repository.BoardRepository,
	listRepo repository.ListRepository,
	cardRepo repository.CardRepository,
	labelRepo repository.LabelRepository,
	userRepo repository.UserRepository,
	activity *ActivityService,
) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		listRepo:  listRepo,
		cardRepo:  cardRepo,
		labelRepo: labelRepo,
		userRepo:  userRepo,
		activity:  activity,
	}
}

// CreateBoardInput represents parameters to create a new board.
type CreateBoardInput struct {
	Name        string
	Description string
	Background  string
	OwnerID     string
}

// CreateBoard creates a board owned by the caller, seeded with the default
// lists (positions 0..2) and labels.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidBoardName
	}

	background := input.Background
	if background == "" {
		background = constants.DefaultBoardBackground
	}

	board := &models.Board{
		ID:          utils.NewID(utils.PrefixBoard),
		Name:        input.Name,
		Description: input.Description,
		Background:  background,
		OwnerID:     input.OwnerID,
	}

	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	for i, title := range defaultLists {
		list := &models.List{
			ID:       utils.NewID(utils.PrefixList),
			BoardID:  board.ID,
			Title:    title,
			Position: i,
		}
		if err := s.listRepo.Create(list); err != nil {
			return nil, fmt.Errorf("failed to create default list: %w", err)
		}
	}

	for _, lbl := range defaultLabels {
		label := &models.Label{
			ID:      utils.NewID(utils.PrefixLabel),
			BoardID: board.ID,
			Name:    lbl.Name,
			Color:   lbl.Color,
		}
		if err := s.labelRepo.Create(label); err != nil {
			return nil, fmt.Errorf("failed to create default label: %w", err)
		}
	}

	s.activity.Record(board.ID, "", input.OwnerID, models.ActivityBoardCreated, board.Name)

	return board, nil
}

// BoardSummary is a board plus its member count for the boards index.
type BoardSummary struct {
	Board       models.Board
	MemberCount int64
}

// ListBoardsForUser returns boards the user owns or has joined, each with
// its member count (membership rows plus one for the owner).
func (s *BoardService) ListBoardsForUser(userID string) ([]BoardSummary, error) {
	boards, err := s.boardRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	summaries := make([]BoardSummary, len(boards))
	for i, b := range boards {
		count, err := s.boardRepo.CountMembers(b.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count members: %w", err)
		}
		summaries[i] = BoardSummary{Board: b, MemberCount: count + 1}
	}
	return summaries, nil
}

// CardSummary is a card annotated for the board view: its label set and a
// member count rather than the full assignment list.
type CardSummary struct {
	Card        models.Card
	Labels      []models.Label
	MemberCount int64
}

// ListWithCards is a non-archived list with its ordered non-archived cards.
type ListWithCards struct {
	List  models.List
	Cards []CardSummary
}

// BoardDetail is the full nested view assembled for initial board render.
type BoardDetail struct {
	Board   models.Board
	Lists   []ListWithCards
	Members []models.BoardMember
	Owner   models.User
	Labels  []models.Label
}

// GetBoardDetail assembles the nested board view: ordered non-archived
// lists, each with ordered non-archived cards carrying label sets and
// member counts, plus the member roster and label set.
func (s *BoardService) GetBoardDetail(boardID string) (*BoardDetail, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	lists, err := s.listRepo.ListByBoard(boardID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}

	listsWithCards := make([]ListWithCards, len(lists))
	for i, l := range lists {
		cards, err := s.cardRepo.ListByList(l.ID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to list cards: %w", err)
		}

		summaries := make([]CardSummary, len(cards))
		for j, c := range cards {
			labels, err := s.cardRepo.ListLabels(c.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to list card labels: %w", err)
			}
			memberCount, err := s.cardRepo.CountMembers(c.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count card members: %w", err)
			}
			summaries[j] = CardSummary{Card: c, Labels: labels, MemberCount: memberCount}
		}
		listsWithCards[i] = ListWithCards{List: l, Cards: summaries}
	}

	members, err := s.boardRepo.ListMembers(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	owner, err := s.userRepo.FindByID(board.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find board owner: %w", err)
	}

	labels, err := s.labelRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	return &BoardDetail{
		Board:   *board,
		Lists:   listsWithCards,
		Members: members,
		Owner:   *owner,
		Labels:  labels,
	}, nil
}

// UpdateBoardInput carries the optional fields of a board update.
type UpdateBoardInput struct {
	Name        *string
	Description *string
	Background  *string
	IsClosed    *bool
}

// UpdateBoard applies a partial update to board attributes.
func (s *BoardService) UpdateBoard(boardID string, input UpdateBoardInput) (*models.Board, error) {
	if input.Name == nil && input.Description == nil && input.Background == nil && input.IsClosed == nil {
		return nil, ErrNoFieldsToUpdate
	}

	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidBoardName
		}
		board.Name = *input.Name
	}
	if input.Description != nil {
		board.Description = *input.Description
	}
	if input.Background != nil {
		board.Background = *input.Background
	}
	if input.IsClosed != nil {
		board.IsClosed = *input.IsClosed
	}

	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	return board, nil
}

// DeleteBoard removes a board and everything it owns. Only the literal
// owner may delete; this is checked against the stored row, not the access
// gate, so the owner can delete a closed board too.
func (s *BoardService) DeleteBoard(boardID, actorID string) error {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	if board.OwnerID != actorID {
		return ErrNotBoardOwner
	}

	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// ListMembers returns the board's membership rows with users, plus the owner.
func (s *BoardService) ListMembers(boardID string) ([]models.BoardMember, *models.User, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBoardNotFound
		}
		return nil, nil, fmt.Errorf("failed to find board: %w", err)
	}

	members, err := s.boardRepo.ListMembers(boardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	owner, err := s.userRepo.FindByID(board.OwnerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find board owner: %w", err)
	}

	return members, owner, nil
}

// AddMemberInput identifies the user to invite and the role to grant.
type AddMemberInput struct {
	Email string
	Role  models.BoardRole
}

// AddMember adds a user to the board by email. The owner cannot be added
// as a member; ownership is a separate, higher-privilege relation.
func (s *BoardService) AddMember(boardID, actorID string, input AddMemberInput) (*models.BoardMember, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	target, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if target.ID == board.OwnerID {
		return nil, ErrMemberIsOwner
	}

	if _, err := s.boardRepo.FindMember(boardID, target.ID); err == nil {
		return nil, ErrAlreadyBoardMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	member := &models.BoardMember{
		ID:      utils.NewID(utils.PrefixBoardMember),
		BoardID: boardID,
		UserID:  target.ID,
		Role:    role,
	}
	if err := s.boardRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.activity.Record(boardID, "", actorID, models.ActivityMemberAdded, target.Email)

	created, err := s.boardRepo.FindMemberByID(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload member: %w", err)
	}
	return created, nil
}

// RemoveMember removes a member from the board. The owner can never be
// removed.
func (s *BoardService) RemoveMember(boardID, actorID, targetUserID string) error {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	if targetUserID == board.OwnerID {
		return ErrCannotRemoveOwner
	}

	if _, err := s.boardRepo.FindMember(boardID, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.boardRepo.RemoveMember(boardID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.activity.Record(boardID, "", actorID, models.ActivityMemberRemoved, targetUserID)
	return nil
}
