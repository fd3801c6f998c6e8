package models

import "github.com/google/uuid"

// ProjectTechnology is one technology tag attached to a project. Position
// preserves the order the tags were submitted in.
type ProjectTechnology struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_technology_project_id;uniqueIndex:idx_project_technology_unique;constraint:OnDelete:CASCADE"`
	Value     string    `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_project_technology_unique"`
	Position  int       `json:"position" db:"position" gorm:"not null;default:0"`
}
