package database

import (
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo        *ProjectRepo
	feedbackRepo       *FeedbackRepo
	contactMessageRepo *ContactMessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:        NewProjectRepo(db),
		feedbackRepo:       NewFeedbackRepo(db),
		contactMessageRepo: NewContactMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) FeedbackRepo() *FeedbackRepo {
	return d.feedbackRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

// Migrate creates or updates the tables backing every collection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Project{},
		&models.ProjectTechnology{},
		&models.Feedback{},
		&models.ContactMessage{},
	)
}
