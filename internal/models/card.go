package models

import "time"

type Card struct {
	ID          string     `gorm:"primarykey;type:varchar(40)" json:"id"`
	ListID      string     `gorm:"type:varchar(40);not null;index" json:"list_id"`
	Title       string     `gorm:"type:varchar(500);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	DueDate     *time.Time `json:"due_date"`
	CoverColor  string     `gorm:"type:varchar(50)" json:"cover_color"`
	IsArchived  bool       `gorm:"not null;default:false" json:"is_archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	List       List         `gorm:"foreignKey:ListID" json:"list,omitempty"`
	Labels     []CardLabel  `gorm:"foreignKey:CardID" json:"labels,omitempty"`
	Members    []CardMember `gorm:"foreignKey:CardID" json:"card_members,omitempty"`
	Checklists []Checklist  `gorm:"foreignKey:CardID" json:"checklists,omitempty"`
	Comments   []Comment    `gorm:"foreignKey:CardID" json:"comments,omitempty"`
}
