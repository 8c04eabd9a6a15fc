package dto

import (
	"time"

	"github.com/yukikurage/kanban-board-api/internal/models"
	"github.com/yukikurage/kanban-board-api/internal/services"
)

// BoardDTO represents a board in API responses
type BoardDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Background  string    `json:"background"`
	OwnerID     string    `json:"owner_id"`
	IsClosed    bool      `json:"is_closed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BoardSummaryDTO represents a board in the boards index
type BoardSummaryDTO struct {
	BoardDTO
	MemberCount int64 `json:"member_count"`
}

// BoardMemberDTO represents a member in a board's roster
type BoardMemberDTO struct {
	ID       string           `json:"id"`
	User     UserDTO          `json:"user"`
	Role     models.BoardRole `json:"role"`
	JoinedAt time.Time        `json:"joined_at"`
}

// LabelDTO represents a board label
type LabelDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BoardDetailDTO is the full nested board view
type BoardDetailDTO struct {
	BoardDTO
	Lists    []ListWithCardsDTO `json:"lists"`
	Members  []BoardMemberDTO   `json:"members"`
	Owner    UserDTO            `json:"owner"`
	Labels   []LabelDTO         `json:"labels"`
	YourRole models.BoardRole   `json:"your_role"`
}

// ListDTO represents a list in API responses
type ListDTO struct {
	ID         string    `json:"id"`
	BoardID    string    `json:"board_id"`
	Title      string    `json:"title"`
	Position   int       `json:"position"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListWithCardsDTO is a list with its ordered visible cards
type ListWithCardsDTO struct {
	ListDTO
	Cards []CardSummaryDTO `json:"cards"`
}

// CardSummaryDTO is the compact card shape used on the board view
type CardSummaryDTO struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	Title       string     `json:"title"`
	Position    int        `json:"position"`
	DueDate     *time.Time `json:"due_date"`
	CoverColor  string     `json:"cover_color,omitempty"`
	Labels      []LabelDTO `json:"labels"`
	MemberCount int64      `json:"member_count"`
}

// Conversion functions

// ToBoardDTO converts a Board model to BoardDTO
func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		Background:  board.Background,
		OwnerID:     board.OwnerID,
		IsClosed:    board.IsClosed,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
	}
}

// ToBoardSummaryDTO converts a board summary to its response shape
func ToBoardSummaryDTO(summary services.BoardSummary) BoardSummaryDTO {
	return BoardSummaryDTO{
		BoardDTO:    ToBoardDTO(summary.Board),
		MemberCount: summary.MemberCount,
	}
}

// ToBoardMemberDTO converts a membership row to DTO
func ToBoardMemberDTO(member models.BoardMember) BoardMemberDTO {
	return BoardMemberDTO{
		ID:       member.ID,
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.CreatedAt,
	}
}

// ToLabelDTO converts a Label model to LabelDTO
func ToLabelDTO(label models.Label) LabelDTO {
	return LabelDTO{
		ID:    label.ID,
		Name:  label.Name,
		Color: label.Color,
	}
}

// ToListDTO converts a List model to ListDTO
func ToListDTO(list models.List) ListDTO {
	return ListDTO{
		ID:         list.ID,
		BoardID:    list.BoardID,
		Title:      list.Title,
		Position:   list.Position,
		IsArchived: list.IsArchived,
		CreatedAt:  list.CreatedAt,
	}
}

// ToBoardDetailDTO converts the assembled board aggregate to its response
// shape
func ToBoardDetailDTO(detail services.BoardDetail, yourRole models.BoardRole) BoardDetailDTO {
	lists := make([]ListWithCardsDTO, len(detail.Lists))
	for i, lwc := range detail.Lists {
		cards := make([]CardSummaryDTO, len(lwc.Cards))
		for j, cs := range lwc.Cards {
			labels := make([]LabelDTO, len(cs.Labels))
			for k, l := range cs.Labels {
				labels[k] = ToLabelDTO(l)
			}
			cards[j] = CardSummaryDTO{
				ID:          cs.Card.ID,
				ListID:      cs.Card.ListID,
				Title:       cs.Card.Title,
				Position:    cs.Card.Position,
				DueDate:     cs.Card.DueDate,
				CoverColor:  cs.Card.CoverColor,
				Labels:      labels,
				MemberCount: cs.MemberCount,
			}
		}
		lists[i] = ListWithCardsDTO{ListDTO: ToListDTO(lwc.List), Cards: cards}
	}

	members := make([]BoardMemberDTO, len(detail.Members))
	for i, m := range detail.Members {
		members[i] = ToBoardMemberDTO(m)
	}

	labels := make([]LabelDTO, len(detail.Labels))
	for i, l := range detail.Labels {
		labels[i] = ToLabelDTO(l)
	}

	return BoardDetailDTO{
		BoardDTO: ToBoardDTO(detail.Board),
		Lists:    lists,
		Members:  members,
		Owner:    ToUserDTO(detail.Owner),
		Labels:   labels,
		YourRole: yourRole,
	}
}
