package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Keyword is a global tag shared across projects. Unlinking a keyword from a
// project never deletes the keyword itself.
type Keyword struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"type:text;not null;unique"`

	Projects []Project `json:"projects,omitempty" gorm:"many2many:project_keywords"`
}

func (k *Keyword) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
