package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           string         `gorm:"primarykey;type:varchar(40)" json:"id"`
	Name         string         `gorm:"type:varchar(255)" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Image        string         `gorm:"type:varchar(500)" json:"image"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedBoards []Board       `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships []BoardMember `gorm:"foreignKey:UserID" json:"-"`
}
