package services

import (
	"github.com/google/uuid"

	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

// IndicatorService manages the impact indicators reported per project.
type IndicatorService struct {
	indicators *database.IndicatorRepo
	projects   *database.ProjectRepo
}

func NewIndicatorService(indicators *database.IndicatorRepo, projects *database.ProjectRepo) *IndicatorService {
	return &IndicatorService{indicators: indicators, projects: projects}
}

type IndicatorInput struct {
	Title string  `json:"title"`
	Value float64 `json:"value"`
}

type UpdateIndicatorInput struct {
	Title *string  `json:"title"`
	Value *float64 `json:"value"`
}

// Create stores a batch of indicators for a project in one transaction.
// Only the project's creator or an admin may report indicators.
func (s *IndicatorService) Create(projectID, callerID uuid.UUID, callerRole models.UserRole, inputs []IndicatorInput) ([]*models.ImpactIndicator, error) {
	if len(inputs) == 0 {
		return nil, errs.NewBadRequestError("indicators are required")
	}
	for _, input := range inputs {
		if input.Title == "" {
			return nil, errs.NewBadRequestError("indicator title is required")
		}
	}

	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}
	if project.CreatorID != callerID && callerRole != models.RoleAdmin {
		return nil, errs.NewForbiddenError("access denied")
	}

	indicators := make([]*models.ImpactIndicator, 0, len(inputs))
	for _, input := range inputs {
		indicators = append(indicators, &models.ImpactIndicator{
			Title:     input.Title,
			Value:     input.Value,
			ProjectID: projectID,
		})
	}

	if err := s.indicators.AddBatch(indicators); err != nil {
		return nil, errs.NewDatabaseError("create", "indicators", err)
	}
	return indicators, nil
}

// Update edits a single indicator after the ownership check on its project.
func (s *IndicatorService) Update(indicatorID, callerID uuid.UUID, callerRole models.UserRole, input UpdateIndicatorInput) (*models.ImpactIndicator, error) {
	indicator, err := s.loadGuarded(indicatorID, callerID, callerRole)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		indicator.Title = *input.Title
	}
	if input.Value != nil {
		indicator.Value = *input.Value
	}

	if err := s.indicators.Update(indicator); err != nil {
		return nil, errs.NewDatabaseError("update", "indicator", err)
	}
	return indicator, nil
}

// Delete removes a single indicator after the ownership check.
func (s *IndicatorService) Delete(indicatorID, callerID uuid.UUID, callerRole models.UserRole) error {
	if _, err := s.loadGuarded(indicatorID, callerID, callerRole); err != nil {
		return err
	}

	if err := s.indicators.Delete(indicatorID); err != nil {
		return errs.NewDatabaseError("delete", "indicator", err)
	}
	return nil
}

// GetByProject lists the indicators of a project.
func (s *IndicatorService) GetByProject(projectID uuid.UUID) ([]*models.ImpactIndicator, error) {
	indicators, err := s.indicators.FindByProject(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "indicators", err)
	}
	return indicators, nil
}

func (s *IndicatorService) loadGuarded(indicatorID, callerID uuid.UUID, callerRole models.UserRole) (*models.ImpactIndicator, error) {
	indicator, err := s.indicators.FindByID(indicatorID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "indicator", err)
	}
	if indicator == nil {
		return nil, errs.NewNotFoundError("indicator not found")
	}
	if indicator.Project == nil {
		return nil, errs.NewNotFoundError("indicator is not attached to a valid project")
	}
	if indicator.Project.CreatorID != callerID && callerRole != models.RoleAdmin {
		return nil, errs.NewForbiddenError("access denied")
	}
	return indicator, nil
}
