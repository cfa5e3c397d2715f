package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

// KeywordService manages the global keyword pool and its project links.
type KeywordService struct {
	keywords *database.KeywordRepo
	projects *database.ProjectRepo
}

func NewKeywordService(keywords *database.KeywordRepo, projects *database.ProjectRepo) *KeywordService {
	return &KeywordService{keywords: keywords, projects: projects}
}

// AddToProject upserts each keyword by name and links it to the project.
// Only the project's creator or an admin may add keywords. Blank entries are
// dropped; an empty batch after trimming is a validation error.
func (s *KeywordService) AddToProject(projectID, callerID uuid.UUID, callerRole models.UserRole, names []string) ([]models.Keyword, error) {
	var cleaned []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	if len(cleaned) == 0 {
		return nil, errs.NewBadRequestError("keywords are required")
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

	linked, err := s.keywords.LinkToProject(projectID, cleaned)
	if err != nil {
		return nil, errs.NewDatabaseError("link keywords to", "project", err)
	}
	return linked, nil
}

// RemoveFromProject unlinks the keyword without deleting it globally.
func (s *KeywordService) RemoveFromProject(projectID, keywordID uuid.UUID) error {
	project, err := s.projects.FindByID(projectID)
	if err != nil {
		return errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return errs.NewNotFoundError("project not found")
	}

	if err := s.keywords.UnlinkFromProject(projectID, keywordID); err != nil {
		return errs.NewDatabaseError("unlink keyword from", "project", err)
	}
	return nil
}

// GetByProject lists the keywords linked to a project.
func (s *KeywordService) GetByProject(projectID uuid.UUID) ([]*models.Keyword, error) {
	keywords, err := s.keywords.FindByProject(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "keywords", err)
	}
	return keywords, nil
}

// GetProjects lists the projects linked to a keyword.
func (s *KeywordService) GetProjects(keywordID uuid.UUID) ([]models.Project, error) {
	keyword, err := s.keywords.FindByID(keywordID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "keyword", err)
	}
	if keyword == nil {
		return nil, errs.NewNotFoundError("keyword not found")
	}
	return keyword.Projects, nil
}

// GetAll lists every keyword.
func (s *KeywordService) GetAll() ([]*models.Keyword, error) {
	keywords, err := s.keywords.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "keywords", err)
	}
	return keywords, nil
}
