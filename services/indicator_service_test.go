package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

func newIndicatorService(db database.Database) *IndicatorService {
	return NewIndicatorService(db.IndicatorRepo(), db.ProjectRepo())
}

func TestIndicatorCreateBatch(t *testing.T) {
	db := newTestDB(t)
	svc := newIndicatorService(db)
	creator := seedUser(t, db, models.RoleTeacher)
	course := seedCourse(t, db)
	project := seedProject(t, db, creator, course, models.StatusActive)

	created, err := svc.Create(project.ID, creator.ID, creator.Role, []IndicatorInput{
		{Title: "People reached", Value: 120},
		{Title: "Workshops held", Value: 8},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)

	indicators, err := svc.GetByProject(project.ID)
	require.NoError(t, err)
	assert.Len(t, indicators, 2)
}

func TestIndicatorCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newIndicatorService(db)
	creator := seedUser(t, db, models.RoleTeacher)
	stranger := seedUser(t, db, models.RoleTeacher)
	course := seedCourse(t, db)
	project := seedProject(t, db, creator, course, models.StatusActive)

	_, err := svc.Create(project.ID, creator.ID, creator.Role, nil)
	assert.True(t, errs.IsBadRequest(err))

	_, err = svc.Create(project.ID, creator.ID, creator.Role, []IndicatorInput{{Title: "", Value: 1}})
	assert.True(t, errs.IsBadRequest(err))

	_, err = svc.Create(uuid.New(), creator.ID, creator.Role, []IndicatorInput{{Title: "x", Value: 1}})
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.Create(project.ID, stranger.ID, stranger.Role, []IndicatorInput{{Title: "x", Value: 1}})
	assert.True(t, errs.IsForbidden(err))
}

func TestIndicatorUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newIndicatorService(db)
	creator := seedUser(t, db, models.RoleTeacher)
	stranger := seedUser(t, db, models.RoleTeacher)
	admin := seedUser(t, db, models.RoleAdmin)
	course := seedCourse(t, db)
	project := seedProject(t, db, creator, course, models.StatusActive)

	created, err := svc.Create(project.ID, creator.ID, creator.Role, []IndicatorInput{{Title: "People reached", Value: 120}})
	require.NoError(t, err)
	indicatorID := created[0].ID

	newValue := 150.0
	_, err = svc.Update(indicatorID, stranger.ID, stranger.Role, UpdateIndicatorInput{Value: &newValue})
	assert.True(t, errs.IsForbidden(err))

	updated, err := svc.Update(indicatorID, admin.ID, admin.Role, UpdateIndicatorInput{Value: &newValue})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Value)
	assert.Equal(t, "People reached", updated.Title, "omitted fields keep their value")

	_, err = svc.Update(uuid.New(), creator.ID, creator.Role, UpdateIndicatorInput{Value: &newValue})
	assert.True(t, errs.IsNotFound(err))
}

func TestIndicatorDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newIndicatorService(db)
	creator := seedUser(t, db, models.RoleTeacher)
	stranger := seedUser(t, db, models.RoleTeacher)
	course := seedCourse(t, db)
	project := seedProject(t, db, creator, course, models.StatusActive)

	created, err := svc.Create(project.ID, creator.ID, creator.Role, []IndicatorInput{{Title: "People reached", Value: 120}})
	require.NoError(t, err)

	err = svc.Delete(created[0].ID, stranger.ID, stranger.Role)
	assert.True(t, errs.IsForbidden(err))

	require.NoError(t, svc.Delete(created[0].ID, creator.ID, creator.Role))

	indicators, err := svc.GetByProject(project.ID)
	require.NoError(t, err)
	assert.Empty(t, indicators)
}
