package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

// ProjectService owns the project lifecycle: creation, listing, the
// SUBMITTED → APPROVED/REJECTED → ACTIVE → FINISHED state machine, and the
// ownership/role rules guarding every mutation.
type ProjectService struct {
	projects *database.ProjectRepo
	courses  *database.CourseRepo
}

func NewProjectService(projects *database.ProjectRepo, courses *database.CourseRepo) *ProjectService {
	return &ProjectService{projects: projects, courses: courses}
}

type CreateProjectInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ExpectedResults string `json:"expected_results"`
	StartDate       string `json:"start_date"`
	Duration        int    `json:"duration"`
	NumberVacancies int    `json:"numberVacancies"`
	Audience        string `json:"audience"`
	CourseID        string `json:"courseId"`
}

type UpdateProjectInput struct {
	Name                *string `json:"name"`
	Description         *string `json:"description"`
	ExpectedResults     *string `json:"expected_results"`
	StartDate           *string `json:"start_date"`
	Duration            *int    `json:"duration"`
	NumberVacancies     *int    `json:"numberVacancies"`
	Audience            *string `json:"audience"`
	Subtitle            *string `json:"subtitle"`
	Overview            *string `json:"overview"`
	RegistrationFormURL *string `json:"registration_form_url"`
}

// FilterInput carries the raw query parameters of the public listing.
type FilterInput struct {
	Keywords string
	Course   string
	Status   string
	Search   string
}

type ProjectMetrics struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Finished int64 `json:"finished"`
	Inactive int64 `json:"inactive"`
}

// Create validates the payload and stores a new project. The initial status
// is always SUBMITTED, whatever the caller sent.
func (s *ProjectService) Create(input CreateProjectInput, creatorID uuid.UUID) (*models.Project, error) {
	var missing []string
	if input.Name == "" {
		missing = append(missing, "name")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if input.ExpectedResults == "" {
		missing = append(missing, "expected_results")
	}
	if input.StartDate == "" {
		missing = append(missing, "start_date")
	}
	if input.Duration == 0 {
		missing = append(missing, "duration")
	}
	if input.NumberVacancies == 0 {
		missing = append(missing, "numberVacancies")
	}
	if input.Audience == "" {
		missing = append(missing, "audience")
	}
	if input.CourseID == "" {
		missing = append(missing, "courseId")
	}
	if len(missing) > 0 {
		return nil, errs.NewBadRequestError(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	audience := models.Audience(strings.ToUpper(input.Audience))
	if !audience.Valid() {
		return nil, errs.NewBadRequestError("invalid audience")
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid start_date")
	}

	existing, err := s.projects.FindByName(input.Name)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError("project already registered")
	}

	courseID, err := uuid.Parse(input.CourseID)
	if err != nil {
		return nil, errs.NewBadRequestError("course not found or invalid")
	}
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "course", err)
	}
	if course == nil {
		return nil, errs.NewBadRequestError("course not found or invalid")
	}

	project := &models.Project{
		Name:            input.Name,
		Description:     input.Description,
		ExpectedResults: input.ExpectedResults,
		StartDate:       startDate,
		Duration:        input.Duration,
		NumberVacancies: input.NumberVacancies,
		Audience:        audience,
		Status:          models.StatusSubmitted,
		CourseID:        courseID,
		CreatorID:       creatorID,
	}
	if err := s.projects.Add(project); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	return project, nil
}

// GetAll returns every project regardless of status. Admin-facing listing.
func (s *ProjectService) GetAll() ([]*models.Project, error) {
	projects, err := s.projects.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

// GetAllFiltered serves the public listing. Without an explicit status the
// result is restricted to ACTIVE and FINISHED projects.
func (s *ProjectService) GetAllFiltered(input FilterInput) ([]*models.Project, error) {
	filter := database.ProjectFilter{
		Statuses: []models.ProjectStatus{models.StatusActive, models.StatusFinished},
		Search:   input.Search,
	}

	if input.Status != "" {
		status := models.ProjectStatus(strings.ToUpper(input.Status))
		if !status.Valid() {
			return nil, errs.NewBadRequestError("invalid status filter")
		}
		filter.Statuses = []models.ProjectStatus{status}
	}

	if input.Course != "" {
		courseID, err := uuid.Parse(input.Course)
		if err != nil {
			return nil, errs.NewBadRequestError("invalid course filter")
		}
		filter.CourseID = &courseID
	}

	if input.Keywords != "" {
		for _, raw := range strings.Split(input.Keywords, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			keywordID, err := uuid.Parse(raw)
			if err != nil {
				return nil, errs.NewBadRequestError("invalid keyword filter")
			}
			filter.KeywordIDs = append(filter.KeywordIDs, keywordID)
		}
	}

	projects, err := s.projects.FindFiltered(filter)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return projects, nil
}

// GetByID returns a project with its course, creator, keywords and indicators.
func (s *ProjectService) GetByID(projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}
	return project, nil
}

// Update applies a partial edit. Only the creator or an admin may edit, and
// only while the project is APPROVED or ACTIVE. Omitted fields keep their
// previous value; status changes go through UpdateStatus instead.
func (s *ProjectService) Update(projectID, callerID uuid.UUID, callerRole models.UserRole, fields UpdateProjectInput) (*models.Project, error) {
	project, err := s.loadGuarded(projectID, callerID, callerRole, false)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		project.Name = *fields.Name
	}
	if fields.Description != nil {
		project.Description = *fields.Description
	}
	if fields.ExpectedResults != nil {
		project.ExpectedResults = *fields.ExpectedResults
	}
	if fields.StartDate != nil {
		startDate, err := parseDate(*fields.StartDate)
		if err != nil {
			return nil, errs.NewBadRequestError("invalid start_date")
		}
		project.StartDate = startDate
	}
	if fields.Duration != nil {
		project.Duration = *fields.Duration
	}
	if fields.NumberVacancies != nil {
		project.NumberVacancies = *fields.NumberVacancies
	}
	if fields.Audience != nil {
		audience := models.Audience(strings.ToUpper(*fields.Audience))
		if !audience.Valid() {
			return nil, errs.NewBadRequestError("invalid audience")
		}
		project.Audience = audience
	}
	if fields.Subtitle != nil {
		project.Subtitle = fields.Subtitle
	}
	if fields.Overview != nil {
		project.Overview = fields.Overview
	}
	if fields.RegistrationFormURL != nil {
		project.RegistrationFormURL = fields.RegistrationFormURL
	}

	if err := s.projects.Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}

	return s.GetByID(projectID)
}

// Delete removes the project row after the ownership check. There is no
// status gate on deletion. The deleted record is returned so the caller can
// release the attachment blobs.
func (s *ProjectService) Delete(projectID, callerID uuid.UUID, callerRole models.UserRole) (*models.Project, error) {
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

	if err := s.projects.Delete(projectID); err != nil {
		return nil, errs.NewDatabaseError("delete", "project", err)
	}

	return project, nil
}

// UpdateStatus approves or rejects a submitted project. Only ADMIN users may
// move a project out of SUBMITTED; any other target status is rejected.
func (s *ProjectService) UpdateStatus(projectID uuid.UUID, callerRole models.UserRole, status models.ProjectStatus) (*models.Project, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, errs.NewBadRequestError("invalid status for this action")
	}
	if callerRole != models.RoleAdmin {
		return nil, errs.NewForbiddenError("only administrators can approve or reject projects")
	}

	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}

	if err := s.projects.UpdateStatus(projectID, status); err != nil {
		return nil, errs.NewDatabaseError("update status of", "project", err)
	}

	project.Status = status
	return project, nil
}

// ValidateProposalUpdate runs the guards for replacing the proposal PDF.
// Unlike the image, the proposal may only be replaced by the creator; the
// caller's role grants no bypass here.
func (s *ProjectService) ValidateProposalUpdate(projectID, callerID uuid.UUID, callerRole models.UserRole) (*models.Project, error) {
	return s.loadGuarded(projectID, callerID, callerRole, true)
}

// ValidateImageUpdate runs the guards for replacing the project image:
// creator or admin, and an editable status.
func (s *ProjectService) ValidateImageUpdate(projectID, callerID uuid.UUID, callerRole models.UserRole) (*models.Project, error) {
	return s.loadGuarded(projectID, callerID, callerRole, false)
}

// SetProposalURL persists a freshly uploaded proposal URL and returns the
// reloaded project.
func (s *ProjectService) SetProposalURL(projectID uuid.UUID, url string) (*models.Project, error) {
	if err := s.projects.UpdateProposalURL(projectID, url); err != nil {
		return nil, errs.NewDatabaseError("update proposal of", "project", err)
	}
	return s.GetByID(projectID)
}

// SetImageURL persists a freshly uploaded image URL and returns the reloaded
// project.
func (s *ProjectService) SetImageURL(projectID uuid.UUID, url string) (*models.Project, error) {
	if err := s.projects.UpdateImageURL(projectID, url); err != nil {
		return nil, errs.NewDatabaseError("update image of", "project", err)
	}
	return s.GetByID(projectID)
}

// GetMetrics returns the aggregate status counts.
func (s *ProjectService) GetMetrics() (ProjectMetrics, error) {
	total, err := s.projects.Count()
	if err != nil {
		return ProjectMetrics{}, errs.NewDatabaseError("count", "projects", err)
	}
	active, err := s.projects.CountByStatus(models.StatusActive)
	if err != nil {
		return ProjectMetrics{}, errs.NewDatabaseError("count", "projects", err)
	}
	finished, err := s.projects.CountByStatus(models.StatusFinished)
	if err != nil {
		return ProjectMetrics{}, errs.NewDatabaseError("count", "projects", err)
	}

	return ProjectMetrics{
		Total:    total,
		Active:   active,
		Finished: finished,
		Inactive: total - active - finished,
	}, nil
}

// loadGuarded fetches the project and applies the shared mutation guards:
// existence, ownership (creator, or admin unless creatorOnly), and the
// APPROVED/ACTIVE status gate.
func (s *ProjectService) loadGuarded(projectID, callerID uuid.UUID, callerRole models.UserRole, creatorOnly bool) (*models.Project, error) {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}

	isCreator := project.CreatorID == callerID
	isAdmin := callerRole == models.RoleAdmin
	if creatorOnly {
		if !isCreator {
			return nil, errs.NewForbiddenError("access denied")
		}
	} else if !isCreator && !isAdmin {
		return nil, errs.NewForbiddenError("access denied")
	}

	if !project.Editable() {
		return nil, errs.NewForbiddenError("project cannot be edited in this status")
	}

	return project, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
