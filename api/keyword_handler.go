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

type keywordHandler struct {
	responder Responder
	logger    zerolog.Logger
	keywords  *services.KeywordService
}

func newKeywordHandler(keywords *services.KeywordService) keywordHandler {
	logger := log.With().Str("handlerName", "keywordHandler").Logger()

	return keywordHandler{
		responder: NewResponder(logger),
		logger:    logger,
		keywords:  keywords,
	}
}

type addKeywordsRequest struct {
	Keywords []string `json:"keywords"`
}

// addToProject upserts keywords by name and links them to a project
// @Summary Add keywords to project
// @Tags Keywords
// @Accept json
// @Produce json
// @Success 201 {object} successEnvelope "Linked keywords"
// @Failure 400 {object} errorEnvelope "Bad Request - empty keyword list"
// @Failure 403 {object} errorEnvelope "Forbidden - not creator nor admin"
// @Failure 404 {object} errorEnvelope "Not Found - project absent"
// @Router /keywords/projects/{projectID} [post]
func (h keywordHandler) addToProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, callerRole, err := ctxCaller(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var req addKeywordsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		linked, err := h.keywords.AddToProject(projectID, callerID, callerRole, req.Keywords)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "keywords added", linked)
	}
}

// removeFromProject unlinks a keyword; the global keyword survives
func (h keywordHandler) removeFromProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keywordID, err := uuid.Parse(chi.URLParam(r, "keywordID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid keywordID"))
			return
		}
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.keywords.RemoveFromProject(projectID, keywordID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "keyword removed from project", nil)
	}
}

func (h keywordHandler) getByProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		keywords, err := h.keywords.GetByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "keywords retrieved", keywords)
	}
}

func (h keywordHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keywordID, err := uuid.Parse(chi.URLParam(r, "keywordID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid keywordID"))
			return
		}

		projects, err := h.keywords.GetProjects(keywordID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "projects retrieved", projects)
	}
}

func (h keywordHandler) getAllKeywords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keywords, err := h.keywords.GetAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "keywords retrieved", keywords)
	}
}
