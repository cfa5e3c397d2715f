package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     *services.UserService
}

func newUserHandler(users *services.UserService) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
	}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// createUser registers a new account
// @Summary Create user
// @Description Registers a new account with the default TEACHER role
// @Tags Users
// @Accept json
// @Produce json
// @Success 201 {object} successEnvelope "Created user without the password field"
// @Failure 400 {object} errorEnvelope "Bad Request - missing fields"
// @Failure 409 {object} errorEnvelope "Conflict - email already registered"
// @Router /user [post]
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.users.Create(req.Name, req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "user created", user)
	}
}

// login authenticates a user and issues a bearer token
// @Summary Login
// @Description Validates credentials and returns a signed token plus the user
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} successEnvelope "Token and user"
// @Failure 400 {object} errorEnvelope "Bad Request - missing fields"
// @Failure 401 {object} errorEnvelope "Unauthorized - bad credentials"
// @Router /login [post]
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		token, user, err := h.users.Login(req.Email, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "login successful", map[string]any{
			"token": token,
			"user":  user,
		})
	}
}

// updateProfile applies a partial update to the caller's own account
// @Summary Update profile
// @Description Updates the authenticated user's own record; omitted fields keep their value
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} successEnvelope "Updated user"
// @Failure 404 {object} errorEnvelope "Not Found - user no longer exists"
// @Failure 409 {object} errorEnvelope "Conflict - email taken by another user"
// @Router /profile [put]
func (h userHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, _, err := ctxCaller(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		var input services.UpdateUserInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.users.Update(callerID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "profile updated", user)
	}
}

// getAllUsers lists every account
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.users.GetAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "users retrieved", users)
	}
}

// deleteUser removes an account by id
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		if err := h.users.Delete(userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "user deleted", nil)
	}
}
