package models

import "time"

// BoardRole is the privilege level of a user on a board, in decreasing
// order: owner > admin > member > viewer. The owner is never stored as a
// membership row; RoleOwner only ever appears in access decisions.
type BoardRole string

const (
	RoleOwner  BoardRole = "owner"
	RoleAdmin  BoardRole = "admin"
	RoleMember BoardRole = "member"
	RoleViewer BoardRole = "viewer"
)

type BoardMember struct {
	ID        string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	BoardID   string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_board_member_uniq" json:"board_id"`
	UserID    string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_board_member_uniq" json:"user_id"`
	Role      BoardRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
