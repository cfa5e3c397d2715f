package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo      *UserRepo
	courseRepo    *CourseRepo
	projectRepo   *ProjectRepo
	keywordRepo   *KeywordRepo
	indicatorRepo *IndicatorRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:      NewUserRepo(db),
		courseRepo:    NewCourseRepo(db),
		projectRepo:   NewProjectRepo(db),
		keywordRepo:   NewKeywordRepo(db),
		indicatorRepo: NewIndicatorRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CourseRepo() *CourseRepo {
	return d.courseRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) KeywordRepo() *KeywordRepo {
	return d.keywordRepo
}

func (d Database) IndicatorRepo() *IndicatorRepo {
	return d.indicatorRepo
}

// Ping runs a trivial statement to verify the connection is alive.
// Used by the health endpoint.
func (d Database) Ping() error {
	var result int
	return d.userRepo.db.Raw("SELECT 1").Scan(&result).Error
}
