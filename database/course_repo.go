package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/conectaext/conecta-backend/models"
)

type CourseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db}
}

// FindAll returns all courses from the database
func (r *CourseRepo) FindAll() ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.Find(&courses).Error
	return courses, err
}

// FindByID returns a course by its ID, or nil when absent
func (r *CourseRepo) FindByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByName returns a course by name, or nil when absent
func (r *CourseRepo) FindByName(name string) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Add inserts a new course into the database
func (r *CourseRepo) Add(course *models.Course) error {
	return r.db.Create(course).Error
}

// Delete removes a course from the database by id
func (r *CourseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Course{}, "id = ?", id).Error
}
