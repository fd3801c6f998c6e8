package database

import (
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

// Add inserts a new contact message. The store sets the submission timestamp.
// Contact messages are append-only; there is no update path.
func (r *ContactMessageRepo) Add(message *models.ContactMessage) error {
	message.Date = time.Now().UTC()
	return r.db.Create(message).Error
}

// FindAll returns every contact message, newest first.
func (r *ContactMessageRepo) FindAll() ([]*models.ContactMessage, error) {
	var messages []*models.ContactMessage
	err := r.db.Order("date DESC").Find(&messages).Error
	return messages, err
}
