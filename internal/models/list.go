package models

import "time"

// List positions are ordering hints maintained by the position sequencer,
// not unique keys. Archived lists keep their last position.
type List struct {
	ID         string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	BoardID    string    `gorm:"type:varchar(40);not null;index" json:"board_id"`
	Title      string    `gorm:"type:varchar(200);not null" json:"title"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	IsArchived bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Board Board  `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Cards []Card `gorm:"foreignKey:ListID" json:"cards,omitempty"`
}
