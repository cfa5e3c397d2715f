package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

func newUserService(t *testing.T) (*UserService, func() *models.User) {
	t.Helper()

	db := newTestDB(t)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := NewUserService(db.UserRepo(), tokens)

	seed := func() *models.User {
		user, err := svc.Create("Ana Lima", "ana@example.edu", "s3cret")
		require.NoError(t, err)
		return user
	}
	return svc, seed
}

func TestUserCreate(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Create("Ana Lima", "ana@example.edu", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserCreateMissingFields(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create("", "ana@example.edu", "s3cret")
	assert.True(t, errs.IsBadRequest(err))
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	svc, seed := newUserService(t)
	seed()

	_, err := svc.Create("Other Ana", "ana@example.edu", "other")
	assert.True(t, errs.IsConflict(err))

	all, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1, "conflicting signup must not create a second row")
}

func TestUserLogin(t *testing.T) {
	svc, seed := newUserService(t)
	created := seed()

	token, user, err := svc.Login("ana@example.edu", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, user.ID)
}

func TestUserLoginBadCredentials(t *testing.T) {
	svc, seed := newUserService(t)
	seed()

	_, _, unknownErr := svc.Login("nobody@example.edu", "s3cret")
	_, _, wrongErr := svc.Login("ana@example.edu", "wrong")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.True(t, errs.IsUnauthorized(unknownErr))
	assert.True(t, errs.IsUnauthorized(wrongErr))
	// unknown address and wrong password must be indistinguishable
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestUserUpdatePartial(t *testing.T) {
	svc, seed := newUserService(t)
	created := seed()

	newName := "Ana L. Souza"
	updated, err := svc.Update(created.ID, UpdateUserInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "ana@example.edu", updated.Email, "omitted fields keep their value")

	// old password still works since it was not part of the update
	_, _, err = svc.Login("ana@example.edu", "s3cret")
	assert.NoError(t, err)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	svc, seed := newUserService(t)
	created := seed()

	other, err := svc.Create("Beto", "beto@example.edu", "pw")
	require.NoError(t, err)

	taken := created.Email
	_, err = svc.Update(other.ID, UpdateUserInput{Email: &taken})
	assert.True(t, errs.IsConflict(err))
}

func TestUserDelete(t *testing.T) {
	svc, seed := newUserService(t)
	created := seed()

	require.NoError(t, svc.Delete(created.ID))

	err := svc.Delete(created.ID)
	assert.True(t, errs.IsNotFound(err))
}
