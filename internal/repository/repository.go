package repository

import (
	"github.com/yukikurage/kanban-board-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// BoardRepository defines the interface for board and membership data access
type BoardRepository interface {
	// Create creates a new board
	Create(board *models.Board) error

	// FindByID finds a board by ID
	FindByID(id string) (*models.Board, error)

	// ListForUser lists boards the user owns or has joined, newest first
	ListForUser(userID string) ([]models.Board, error)

	// Update updates a board
	Update(board *models.Board) error

	// Delete removes a board and everything beneath it
	Delete(id string) error

	// AddMember adds a membership row
	AddMember(member *models.BoardMember) error

	// RemoveMember removes a membership row
	RemoveMember(boardID, userID string) error

	// FindMember finds the unique membership row for (board, user)
	FindMember(boardID, userID string) (*models.BoardMember, error)

	// FindMemberByID finds a membership row by its own ID, with user preloaded
	FindMemberByID(id string) (*models.BoardMember, error)

	// ListMembers lists all members of a board with user info
	ListMembers(boardID string) ([]models.BoardMember, error)

	// CountMembers counts membership rows of a board (owner excluded)
	CountMembers(boardID string) (int64, error)
}

// ListRepository defines the interface for list data access
type ListRepository interface {
	// Create creates a new list
	Create(list *models.List) error

	// FindByID finds a list by ID
	FindByID(id string) (*models.List, error)

	// ListByBoard lists a board's lists ordered by position, optionally
	// including archived ones
	ListByBoard(boardID string, includeArchived bool) ([]models.List, error)

	// MaxPosition returns the maximum position among the board's lists,
	// or -1 when the board has none
	MaxPosition(boardID string) (int, error)

	// UpdatePosition writes a single list's position
	UpdatePosition(id string, position int) error

	// Update updates a list
	Update(list *models.List) error

	// Delete removes a list and its cards (with their children)
	Delete(id string) error
}

// CardRepository defines the interface for card data access
type CardRepository interface {
	// Create creates a new card
	Create(card *models.Card) error

	// FindByID finds a card by ID
	FindByID(id string) (*models.Card, error)

	// ListByList lists a list's cards ordered by position, optionally
	// including archived ones
	ListByList(listID string, includeArchived bool) ([]models.Card, error)

	// MaxPosition returns the maximum position among the list's cards,
	// or -1 when the list has none
	MaxPosition(listID string) (int, error)

	// UpdatePlacement writes a card's list and position in one statement
	UpdatePlacement(id, listID string, position int) error

	// Update updates a card
	Update(card *models.Card) error

	// Delete removes a card and all of its child rows
	Delete(id string) error

	// AddLabel links a label to a card
	AddLabel(link *models.CardLabel) error

	// RemoveLabel unlinks a label from a card
	RemoveLabel(cardID, labelID string) error

	// FindLabelLink finds the (card, label) link row
	FindLabelLink(cardID, labelID string) (*models.CardLabel, error)

	// ListLabels lists the labels applied to a card
	ListLabels(cardID string) ([]models.Label, error)

	// AddMember assigns a user to a card
	AddMember(member *models.CardMember) error

	// RemoveMember unassigns a user from a card
	RemoveMember(cardID, userID string) error

	// FindMember finds the (card, user) assignment row
	FindMember(cardID, userID string) (*models.CardMember, error)

	// ListMembers lists a card's assignments with user info
	ListMembers(cardID string) ([]models.CardMember, error)

	// CountMembers counts a card's assignments
	CountMembers(cardID string) (int64, error)
}

// ChecklistRepository defines the interface for checklist data access
type ChecklistRepository interface {
	// Create creates a new checklist
	Create(checklist *models.Checklist) error

	// FindByID finds a checklist by ID
	FindByID(id string) (*models.Checklist, error)

	// ListByCard lists a card's checklists ordered by position
	ListByCard(cardID string) ([]models.Checklist, error)

	// MaxPosition returns the maximum checklist position on the card, or -1
	MaxPosition(cardID string) (int, error)

	// Update updates a checklist
	Update(checklist *models.Checklist) error

	// Delete removes a checklist, items first
	Delete(id string) error

	// CreateItem creates a checklist item
	CreateItem(item *models.ChecklistItem) error

	// FindItemByID finds a checklist item by ID
	FindItemByID(id string) (*models.ChecklistItem, error)

	// ListItems lists a checklist's items ordered by position
	ListItems(checklistID string) ([]models.ChecklistItem, error)

	// MaxItemPosition returns the maximum item position in the checklist, or -1
	MaxItemPosition(checklistID string) (int, error)

	// UpdateItem updates a checklist item
	UpdateItem(item *models.ChecklistItem) error

	// DeleteItem removes a checklist item
	DeleteItem(id string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id string) (*models.Comment, error)

	// ListByCard lists a card's comments with user info, newest first
	ListByCard(cardID string) ([]models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete removes a comment
	Delete(id string) error
}

// LabelRepository defines the interface for board label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id string) (*models.Label, error)

	// ListByBoard lists a board's labels
	ListByBoard(boardID string) ([]models.Label, error)

	// Update updates a label
	Update(label *models.Label) error

	// Delete removes a label and its card links
	Delete(id string) error
}

// AttachmentRepository defines the interface for attachment metadata access
type AttachmentRepository interface {
	// Create creates a new attachment row
	Create(attachment *models.Attachment) error

	// FindByID finds an attachment by ID
	FindByID(id string) (*models.Attachment, error)

	// ListByCard lists a card's attachments, newest first
	ListByCard(cardID string) ([]models.Attachment, error)

	// Delete removes an attachment row
	Delete(id string) error
}

// ActivityRepository defines the interface for the board activity feed
type ActivityRepository interface {
	// Create appends an activity entry
	Create(activity *models.Activity) error

	// ListByBoard lists a board's activity with user info, newest first
	ListByBoard(boardID string, limit, offset int) ([]models.Activity, int64, error)
}
