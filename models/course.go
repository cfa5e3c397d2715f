package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course groups projects by the degree program they belong to
type Course struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null;unique"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
