package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectTechnologyRepo struct {
	db *gorm.DB
}

func NewProjectTechnologyRepo(db *gorm.DB) *ProjectTechnologyRepo {
	return &ProjectTechnologyRepo{db}
}

// Replace swaps a project's tag rows for the given set. Callers needing
// atomicity with other writes construct the repo over their transaction.
func (r *ProjectTechnologyRepo) Replace(projectID uuid.UUID, techs []models.ProjectTechnology) error {
	if err := r.db.Delete(&models.ProjectTechnology{}, "project_id = ?", projectID).Error; err != nil {
		return err
	}
	if len(techs) == 0 {
		return nil
	}
	for i := range techs {
		techs[i].ProjectID = projectID
	}
	return r.db.Create(&techs).Error
}
