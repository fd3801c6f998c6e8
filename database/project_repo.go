package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func withTechnologies(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindAll returns all projects, optionally restricted to one category. An
// empty category means no filter; the store itself guarantees no ordering.
func (r *ProjectRepo) FindAll(category string) ([]*models.Project, error) {
	var projects []*models.Project
	query := r.db.Preload("Technologies", withTechnologies)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no such record exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Technologies", withTechnologies).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project together with its technology rows. GORM creates
// the association inside the insert's transaction, so a failing tag row rolls
// the whole project back.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update saves an existing project. A non-nil Technologies slice replaces the
// project's tag rows wholesale; nil leaves them untouched. Both writes run in
// one transaction, so a failure leaves the previous state intact.
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Technologies").Save(project).Error; err != nil {
			return err
		}
		if project.Technologies == nil {
			return nil
		}
		return NewProjectTechnologyRepo(tx).Replace(project.ID, project.Technologies)
	})
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
