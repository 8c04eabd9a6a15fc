package models

import "time"

// Attachment holds file metadata only; bytes live in object storage
// under StorageKey and are uploaded directly via presigned URLs.
type Attachment struct {
	ID               string    `gorm:"primarykey;type:varchar(40)" json:"id"`
	CardID           string    `gorm:"type:varchar(40);not null;index" json:"card_id"`
	UserID           string    `gorm:"type:varchar(40);not null" json:"user_id"`
	Filename         string    `gorm:"type:varchar(500);not null" json:"filename"`
	OriginalFilename string    `gorm:"type:varchar(500);not null" json:"original_filename"`
	ContentType      string    `gorm:"type:varchar(255);not null" json:"content_type"`
	Size             int64     `gorm:"not null" json:"size"`
	StorageKey       string    `gorm:"type:varchar(500);not null" json:"storage_key"`
	CreatedAt        time.Time `json:"created_at"`

	// Relations
	Card Card `gorm:"foreignKey:CardID" json:"card,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
