package models

import "time"

type Checklist struct {
	ID        string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	CardID    string    `gorm:"type:varchar(40);not null;index" json:"card_id"`
	Title     string    `gorm:"type:varchar(500);not null" json:"title"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Card  Card            `gorm:"foreignKey:CardID" json:"card,omitempty"`
	Items []ChecklistItem `gorm:"foreignKey:ChecklistID" json:"items,omitempty"`
}

type ChecklistItem struct {
	ID          string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	ChecklistID string    `gorm:"type:varchar(40);not null;index" json:"checklist_id"`
	Title       string    `gorm:"type:varchar(500);not null" json:"title"`
	IsChecked   bool      `gorm:"not null;default:false" json:"is_checked"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Checklist Checklist `gorm:"foreignKey:ChecklistID" json:"checklist,omitempty"`
}
