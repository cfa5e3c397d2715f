package services

import (
	"github.com/google/uuid"

	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

type CourseService struct {
	courses *database.CourseRepo
}

func NewCourseService(courses *database.CourseRepo) *CourseService {
	return &CourseService{courses: courses}
}

// Create adds a course with a globally unique name.
func (s *CourseService) Create(name string) (*models.Course, error) {
	if name == "" {
		return nil, errs.NewBadRequestError("name is required")
	}

	existing, err := s.courses.FindByName(name)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "course", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError("course already registered")
	}

	course := &models.Course{Name: name}
	if err := s.courses.Add(course); err != nil {
		return nil, errs.NewDatabaseError("create", "course", err)
	}
	return course, nil
}

func (s *CourseService) GetAll() ([]*models.Course, error) {
	courses, err := s.courses.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "courses", err)
	}
	return courses, nil
}

func (s *CourseService) GetByID(courseID uuid.UUID) (*models.Course, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "course", err)
	}
	if course == nil {
		return nil, errs.NewNotFoundError("course not found")
	}
	return course, nil
}

func (s *CourseService) Delete(courseID uuid.UUID) error {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return errs.NewDatabaseError("find", "course", err)
	}
	if course == nil {
		return errs.NewNotFoundError("course not found")
	}

	if err := s.courses.Delete(courseID); err != nil {
		return errs.NewDatabaseError("delete", "course", err)
	}
	return nil
}
