package models

import "time"

type Label struct {
	ID        string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	BoardID   string    `gorm:"type:varchar(40);not null;index" json:"board_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(50);not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
}

// CardLabel links a label to a card, unique per (card, label) pair.
type CardLabel struct {
	ID        string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	CardID    string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_card_label_uniq" json:"card_id"`
	LabelID   string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_card_label_uniq" json:"label_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Card  Card  `gorm:"foreignKey:CardID" json:"card,omitempty"`
	Label Label `gorm:"foreignKey:LabelID" json:"label,omitempty"`
}
