package models

import "time"

// CardMember assigns a user to a card, unique per (card, user) pair.
type CardMember struct {
	ID        string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	CardID    string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_card_member_uniq" json:"card_id"`
	UserID    string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_card_member_uniq" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
