package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
)

const bcryptCost = 10

// UserService owns account creation, credentials and profile maintenance.
type UserService struct {
	users  *database.UserRepo
	tokens *auth.TokenIssuer
}

func NewUserService(users *database.UserRepo, tokens *auth.TokenIssuer) *UserService {
	return &UserService{users: users, tokens: tokens}
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Create registers a new account with the default TEACHER role.
func (s *UserService) Create(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errs.NewBadRequestError("name, email and password are required")
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errs.NewDatabaseError("hash password for", "user", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleTeacher,
	}
	if err := s.users.Add(user); err != nil {
		return nil, errs.NewDatabaseError("create", "user", err)
	}

	return user, nil
}

// Login checks the credentials and issues a bearer token. Unknown email and
// wrong password produce the same error, so callers cannot enumerate users.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, errs.NewBadRequestError("email and password are required")
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return "", nil, errs.NewUnauthorizedError("invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, errs.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, errs.NewInternalError("failed to issue token")
	}

	return token, user, nil
}

// Update applies a partial profile update to the caller's own record.
// Omitted fields keep their previous value; the password is re-hashed only
// when a new one is supplied.
func (s *UserService) Update(userID uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError("user not found")
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.users.FindByEmail(*input.Email)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "user", err)
		}
		if taken != nil {
			return nil, errs.NewConflictError("email already registered")
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, errs.NewDatabaseError("hash password for", "user", err)
		}
		user.Password = string(hash)
	}

	if err := s.users.Update(user); err != nil {
		return nil, errs.NewDatabaseError("update", "user", err)
	}

	return user, nil
}

// GetAll lists every account. Password hashes never serialize.
func (s *UserService) GetAll() ([]*models.User, error) {
	users, err := s.users.FindAll()
	if err != nil {
		return nil, errs.NewDatabaseError("find", "users", err)
	}
	return users, nil
}

// Delete removes an account by id.
func (s *UserService) Delete(userID uuid.UUID) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return errs.NewDatabaseError("find", "user", err)
	}
	if user == nil {
		return errs.NewNotFoundError("user not found")
	}

	if err := s.users.Delete(userID); err != nil {
		return errs.NewDatabaseError("delete", "user", err)
	}
	return nil
}
