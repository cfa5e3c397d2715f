package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/conectaext/conecta-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectFilter narrows FindFiltered. Zero-valued fields are ignored;
// all supplied conditions are ANDed.
type ProjectFilter struct {
	Statuses   []models.ProjectStatus
	KeywordIDs []uuid.UUID
	CourseID   *uuid.UUID
	Search     string
}

func (r *ProjectRepo) withAssociations() *gorm.DB {
	return r.db.
		Preload("Course").
		Preload("Creator").
		Preload("Keywords").
		Preload("ImpactIndicators")
}

// FindAll returns all projects with their associations, newest first
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.withAssociations().Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindFiltered returns projects matching the filter, newest first
func (r *ProjectRepo) FindFiltered(filter ProjectFilter) ([]*models.Project, error) {
	query := r.withAssociations().Order("created_at DESC")

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.CourseID != nil {
		query = query.Where("course_id = ?", *filter.CourseID)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(filter.KeywordIDs) > 0 {
		linked := r.db.Table("project_keywords").
			Select("project_id").
			Where("keyword_id IN ?", filter.KeywordIDs)
		query = query.Where("id IN (?)", linked)
	}

	var projects []*models.Project
	err := query.Find(&projects).Error
	return projects, err
}

// FindByName returns a project by name, or nil when absent
func (r *ProjectRepo) FindByName(name string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByID returns a project with its associations, or nil when absent
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.withAssociations().First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update persists the project row without touching its associations
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Omit(clause.Associations).Save(project).Error
}

// UpdateStatus sets only the status column
func (r *ProjectRepo) UpdateStatus(id uuid.UUID, status models.ProjectStatus) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("status", status).Error
}

// UpdateProposalURL sets only the proposal document URL column
func (r *ProjectRepo) UpdateProposalURL(id uuid.UUID, url string) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("proposal_document_url", url).Error
}

// UpdateImageURL sets only the image URL column
func (r *ProjectRepo) UpdateImageURL(id uuid.UUID, url string) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Update("img_url", url).Error
}

// Delete removes a project from the database by id. Keyword links are
// removed with it; the global keywords survive.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Select("Keywords", "ImpactIndicators").Delete(&models.Project{ID: id}).Error
}

// Count returns the total number of projects
func (r *ProjectRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Project{}).Count(&n).Error
	return n, err
}

// CountByStatus returns the number of projects in the given state
func (r *ProjectRepo) CountByStatus(status models.ProjectStatus) (int64, error) {
	var n int64
	err := r.db.Model(&models.Project{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
