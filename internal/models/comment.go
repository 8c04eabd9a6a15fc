package models

import "time"

// Comment is mutable and deletable only by its author.
type Comment struct {
	ID        string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	CardID    string    `gorm:"type:varchar(40);not null;index" json:"card_id"`
	UserID    string    `gorm:"type:varchar(40);not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
