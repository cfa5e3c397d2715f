package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectaext/conecta-backend/models"
)

type KeywordRepo struct {
	db *gorm.DB
}

func NewKeywordRepo(db *gorm.DB) *KeywordRepo {
	return &KeywordRepo{db}
}

// FindAll returns all keywords from the database
func (r *KeywordRepo) FindAll() ([]*models.Keyword, error) {
	var keywords []*models.Keyword
	err := r.db.Find(&keywords).Error
	return keywords, err
}

// FindByID returns a keyword with its linked projects, or nil when absent
func (r *KeywordRepo) FindByID(id uuid.UUID) (*models.Keyword, error) {
	var keyword models.Keyword
	err := r.db.Preload("Projects").First(&keyword, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &keyword, nil
}

// FindByProject returns the keywords linked to a project
func (r *KeywordRepo) FindByProject(projectID uuid.UUID) ([]*models.Keyword, error) {
	var keywords []*models.Keyword
	err := r.db.
		Joins("JOIN project_keywords pk ON pk.keyword_id = keywords.id").
		Where("pk.project_id = ?", projectID).
		Find(&keywords).Error
	return keywords, err
}

// LinkToProject upserts each keyword by name and links it to the project.
// Linking an already-linked keyword is a no-op. The whole batch runs in one
// transaction so a failure leaves no partial links behind.
func (r *KeywordRepo) LinkToProject(projectID uuid.UUID, names []string) ([]models.Keyword, error) {
	var linked []models.Keyword
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			var keyword models.Keyword
			if err := tx.Where("name = ?", name).
				FirstOrCreate(&keyword, models.Keyword{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Project{ID: projectID}).
				Association("Keywords").Append(&keyword); err != nil {
				return err
			}
			linked = append(linked, keyword)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return linked, nil
}

// UnlinkFromProject removes the project link without deleting the keyword
func (r *KeywordRepo) UnlinkFromProject(projectID, keywordID uuid.UUID) error {
	return r.db.Model(&models.Project{ID: projectID}).
		Association("Keywords").Delete(&models.Keyword{ID: keywordID})
}
