package models

import "github.com/google/uuid"

// Fixed set of project categories accepted at write time.
const (
	CategoryWeb     = "web"
	CategoryMobile  = "mobile"
	CategoryBackend = "backend"
	CategoryUIUX    = "ui/ux"
)

// CategoryAll is a synthetic filter value meaning "no category filter".
const CategoryAll = "all"

// ValidCategory reports whether c is one of the fixed project categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryWeb, CategoryMobile, CategoryBackend, CategoryUIUX:
		return true
	}
	return false
}

// Project represents one portfolio case study.
type Project struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text;not null"`
	Image       string    `json:"image" db:"image" gorm:"type:text;not null"`
	Category    string    `json:"category" db:"category" gorm:"type:text;not null;index:idx_project_category"`
	LiveLink    *string   `json:"liveLink,omitempty" db:"live_link" gorm:"type:text"`
	CodeLink    *string   `json:"codeLink,omitempty" db:"code_link" gorm:"type:text"`
	Challenge   string    `json:"challenge" db:"challenge" gorm:"type:text"`
	Solution    string    `json:"solution" db:"solution" gorm:"type:text"`

	Technologies []ProjectTechnology `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// TechnologyValues returns the project's technology tags in display order.
func (p Project) TechnologyValues() []string {
	values := make([]string, 0, len(p.Technologies))
	for _, tech := range p.Technologies {
		values = append(values, tech.Value)
	}
	return values
}
