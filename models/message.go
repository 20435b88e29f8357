package models

import "time"

// Message is one chat message between a patient and their doctor. Rows are
// append-only; edits are not supported.
type Message struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	SenderID    uint      `gorm:"index;not null" json:"senderId"`
	RecipientID uint      `gorm:"index;not null" json:"recipientId"`
	Text        string    `gorm:"type:text" json:"text,omitempty"`
	FileURL     string    `json:"fileUrl,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
	FileType    string    `gorm:"size:64" json:"fileType,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}
