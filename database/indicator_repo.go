package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/conectaext/conecta-backend/models"
)

type IndicatorRepo struct {
	db *gorm.DB
}

func NewIndicatorRepo(db *gorm.DB) *IndicatorRepo {
	return &IndicatorRepo{db}
}

// FindByID returns an indicator with its parent project, or nil when absent
func (r *IndicatorRepo) FindByID(id uuid.UUID) (*models.ImpactIndicator, error) {
	var indicator models.ImpactIndicator
	err := r.db.Preload("Project").First(&indicator, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &indicator, nil
}

// FindByProject returns the indicators belonging to a project
func (r *IndicatorRepo) FindByProject(projectID uuid.UUID) ([]*models.ImpactIndicator, error) {
	var indicators []*models.ImpactIndicator
	err := r.db.Where("project_id = ?", projectID).Find(&indicators).Error
	return indicators, err
}

// AddBatch inserts the indicators in a single transaction
func (r *IndicatorRepo) AddBatch(indicators []*models.ImpactIndicator) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, indicator := range indicators {
			if err := tx.Create(indicator).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update persists the indicator row without touching its parent project
func (r *IndicatorRepo) Update(indicator *models.ImpactIndicator) error {
	return r.db.Omit(clause.Associations).Save(indicator).Error
}

// Delete removes an indicator from the database by id
func (r *IndicatorRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ImpactIndicator{}, "id = ?", id).Error
}
