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

type courseHandler struct {
	responder Responder
	logger    zerolog.Logger
	courses   *services.CourseService
}

func newCourseHandler(courses *services.CourseService) courseHandler {
	logger := log.With().Str("handlerName", "courseHandler").Logger()

	return courseHandler{
		responder: NewResponder(logger),
		logger:    logger,
		courses:   courses,
	}
}

type createCourseRequest struct {
	Name string `json:"name"`
}

// createCourse adds a course with a unique name
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Success 201 {object} successEnvelope "Created course"
// @Failure 400 {object} errorEnvelope "Bad Request - empty name"
// @Failure 409 {object} errorEnvelope "Conflict - duplicate name"
// @Router /courses [post]
func (h courseHandler) createCourse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCourseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		course, err := h.courses.Create(req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "course created", course)
	}
}

func (h courseHandler) getAllCourses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := h.courses.GetAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "courses retrieved", courses)
	}
}

func (h courseHandler) getCourse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid courseID"))
			return
		}

		course, err := h.courses.GetByID(courseID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "course retrieved", course)
	}
}

func (h courseHandler) deleteCourse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID, err := uuid.Parse(chi.URLParam(r, "courseID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid courseID"))
			return
		}

		if err := h.courses.Delete(courseID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "course deleted", nil)
	}
}
