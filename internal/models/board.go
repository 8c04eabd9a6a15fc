package models

import "time"

type Board struct {
	ID          string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	Background  string    `gorm:"type:varchar(50);default:'#059669'" json:"background"`
	OwnerID     string    `gorm:"type:varchar(40);not null;index" json:"owner_id"`
	IsClosed    bool      `gorm:"not null;default:false" json:"is_closed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner   User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []BoardMember `gorm:"foreignKey:BoardID" json:"members,omitempty"`
	Lists   []List        `gorm:"foreignKey:BoardID" json:"lists,omitempty"`
	Labels  []Label       `gorm:"foreignKey:BoardID" json:"labels,omitempty"`
}
