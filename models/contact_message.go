package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage represents one inbound contact-form submission. Messages are
// write-once: the API exposes no public read and no update for them.
type ContactMessage struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name    string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email   string    `json:"email" db:"email" gorm:"type:text;not null"`
	Subject string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message string    `json:"message" db:"message" gorm:"type:text;not null"`
	Date    time.Time `json:"date" db:"date" gorm:"not null;index:idx_contact_message_date"`
}
