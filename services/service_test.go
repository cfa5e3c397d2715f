package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/models"
)

// newTestDB opens an in-memory sqlite database with the full schema. Each
// test gets its own database; the single-connection pool keeps the in-memory
// store alive for the duration of the test.
func newTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Project{},
		&models.Keyword{},
		&models.ImpactIndicator{},
	))

	return database.New(db)
}

func seedUser(t *testing.T, db database.Database, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:     "Maria Souza",
		Email:    uuid.NewString() + "@example.edu",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.UserRepo().Add(user))
	return user
}

func seedCourse(t *testing.T, db database.Database) *models.Course {
	t.Helper()

	course := &models.Course{Name: "Course " + uuid.NewString()}
	require.NoError(t, db.CourseRepo().Add(course))
	return course
}

func seedProject(t *testing.T, db database.Database, creator *models.User, course *models.Course, status models.ProjectStatus) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:            "Community Garden " + uuid.NewString(),
		Description:     "Urban gardening outreach",
		ExpectedResults: "Two functioning gardens",
		StartDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration:        6,
		NumberVacancies: 10,
		Audience:        models.AudienceCommunity,
		Status:          status,
		CourseID:        course.ID,
		CreatorID:       creator.ID,
	}
	require.NoError(t, db.ProjectRepo().Add(project))
	return project
}
