package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectaext/conecta-backend/errs"
)

func TestCourseCreateAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db.CourseRepo())

	course, err := svc.Create("Environmental Engineering")
	require.NoError(t, err)
	assert.NotZero(t, course.ID)

	courses, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestCourseCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db.CourseRepo())

	_, err := svc.Create("")
	assert.True(t, errs.IsBadRequest(err))

	_, err = svc.Create("Nursing")
	require.NoError(t, err)
	_, err = svc.Create("Nursing")
	assert.True(t, errs.IsConflict(err))
}

func TestCourseGetAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db.CourseRepo())

	course, err := svc.Create("Law")
	require.NoError(t, err)

	found, err := svc.GetByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Law", found.Name)

	require.NoError(t, svc.Delete(course.ID))

	_, err = svc.GetByID(course.ID)
	assert.True(t, errs.IsNotFound(err))
}
