package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback ratings are integer star counts.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback represents one user-submitted testimonial. A record is created
// pending (approved = false) and only becomes publicly visible once an
// administrator flips the approved flag.
type Feedback struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email    string    `json:"email" db:"email" gorm:"type:text;not null"`
	Message  string    `json:"message" db:"message" gorm:"type:text;not null"`
	Rating   int       `json:"rating" db:"rating" gorm:"not null"`
	Date     time.Time `json:"date" db:"date" gorm:"not null;index:idx_feedback_date"`
	Approved bool      `json:"approved" db:"approved" gorm:"not null;default:false;index:idx_feedback_approved"`
}
