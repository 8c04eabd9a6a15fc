package models

import "time"

type ActivityType string

const (
	ActivityBoardCreated  ActivityType = "board.created"
	ActivityListCreated   ActivityType = "list.created"
	ActivityCardCreated   ActivityType = "card.created"
	ActivityCardMoved     ActivityType = "card.moved"
	ActivityMemberAdded   ActivityType = "member.added"
	ActivityMemberRemoved ActivityType = "member.removed"
	ActivityCommentAdded  ActivityType = "comment.added"
)

// Activity is an append-only audit trail entry for a board.
type Activity struct {
	ID        string       `gorm:"primarykey;type:varchar(40)" json:"id"`
	BoardID   string       `gorm:"type:varchar(40);not null;index" json:"board_id"`
	CardID    string       `gorm:"type:varchar(40)" json:"card_id,omitempty"`
	UserID    string       `gorm:"type:varchar(40);not null" json:"user_id"`
	Type      ActivityType `gorm:"type:varchar(50);not null" json:"type"`
	Data      string       `gorm:"type:text" json:"data,omitempty"`
	CreatedAt time.Time    `json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
