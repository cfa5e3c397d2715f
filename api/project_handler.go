package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conectaext/conecta-backend/errs"
	"github.com/conectaext/conecta-backend/models"
	"github.com/conectaext/conecta-backend/services"
	"github.com/conectaext/conecta-backend/storage"
)

// multipart uploads are capped at 10 MB, matching the object store layout
const maxUploadBytes = 10 << 20

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
	files     *storage.Client
}

func newProjectHandler(projects *services.ProjectService, files *storage.Client) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
		files:     files,
	}
}

// createProject stores a new project owned by the caller
// @Summary Create project
// @Description Creates a project; the initial status is always SUBMITTED
// @Tags Projects
// @Accept json
// @Produce json
// @Success 201 {object} successEnvelope "Created project"
// @Failure 400 {object} errorEnvelope "Bad Request - missing or invalid fields"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, _, err := ctxCaller(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		var input services.CreateProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.projects.Create(input, callerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "project created", project)
	}
}

// getProjects serves the public listing. With no explicit status filter only
// ACTIVE and FINISHED projects are returned.
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param keywords query string false "Comma-separated keyword ids, ANY-match"
// @Param course query string false "Course id"
// @Param status query string false "Explicit status, overrides the default gate"
// @Param search query string false "Case-insensitive substring match on name"
// @Success 200 {object} successEnvelope "Matching projects"
// @Router /projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		projects, err := h.projects.GetAllFiltered(services.FilterInput{
			Keywords: query.Get("keywords"),
			Course:   query.Get("course"),
			Status:   query.Get("status"),
			Search:   query.Get("search"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "projects retrieved", projects)
	}
}

// getAllProjects returns every project regardless of status, so reviewers can
// see SUBMITTED submissions.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.GetAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "projects retrieved", projects)
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projects.GetByID(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project retrieved", project)
	}
}

// updateProject applies a partial edit under the ownership and status guards
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {object} successEnvelope "Updated project"
// @Failure 403 {object} errorEnvelope "Forbidden - not owner/admin, or status-locked"
// @Failure 404 {object} errorEnvelope "Not Found"
// @Router /projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
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

		var fields services.UpdateProjectInput
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project, err := h.projects.Update(projectID, callerID, callerRole, fields)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project updated", project)
	}
}

// deleteProject removes the row first, then releases the attachment blobs.
// Blob cleanup is best-effort and never fails the deletion.
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		deleted, err := h.projects.Delete(projectID, callerID, callerRole)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if deleted.ProposalDocumentURL != nil {
			h.files.Delete(r.Context(), *deleted.ProposalDocumentURL)
		}
		if deleted.ImgURL != nil {
			h.files.Delete(r.Context(), *deleted.ImgURL)
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project deleted", nil)
	}
}

// uploadProposal replaces the proposal PDF. Creator-only; admins have no
// bypass on this endpoint.
// @Summary Upload proposal document
// @Tags Projects
// @Accept mpfd
// @Produce json
// @Success 200 {object} successEnvelope "Project with the new proposal URL"
// @Failure 400 {object} errorEnvelope "Bad Request - missing file or not a PDF"
// @Failure 403 {object} errorEnvelope "Forbidden - not the creator, or status-locked"
// @Router /projects/{projectID}/proposal [post]
func (h projectHandler) uploadProposal() http.HandlerFunc {
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

		project, err := h.projects.ValidateProposalUpdate(projectID, callerID, callerRole)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		file, header, err := h.formFile(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer file.Close()

		if fileExtension(header.Filename) != "pdf" {
			h.responder.WriteError(w, errs.NewBadRequestError("only PDF files are accepted"))
			return
		}

		url, err := h.files.SaveProposal(r.Context(), file, header.Size, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to store proposal document"))
			return
		}

		updated, err := h.projects.SetProposalURL(projectID, url)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// release the previous blob only after the row points at the new one
		if project.ProposalDocumentURL != nil {
			h.files.Delete(r.Context(), *project.ProposalDocumentURL)
		}

		h.responder.WriteSuccess(w, http.StatusOK, "proposal updated", updated)
	}
}

// uploadImage replaces the project image. Creator or admin.
func (h projectHandler) uploadImage() http.HandlerFunc {
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

		project, err := h.projects.ValidateImageUpdate(projectID, callerID, callerRole)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		file, header, err := h.formFile(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer file.Close()

		if !imageExtensions[fileExtension(header.Filename)] {
			h.responder.WriteError(w, errs.NewBadRequestError("unsupported image type"))
			return
		}

		url, err := h.files.SavePhoto(r.Context(), file, header.Size, header.Filename, header.Header.Get("Content-Type"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to store image"))
			return
		}

		updated, err := h.projects.SetImageURL(projectID, url)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if project.ImgURL != nil {
			h.files.Delete(r.Context(), *project.ImgURL)
		}

		h.responder.WriteSuccess(w, http.StatusOK, "image updated", updated)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// updateStatus approves or rejects a submitted project. Admin-only.
// @Summary Update project status
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {object} successEnvelope "Project with the new status"
// @Failure 400 {object} errorEnvelope "Bad Request - status outside APPROVED/REJECTED"
// @Failure 403 {object} errorEnvelope "Forbidden - caller is not an admin"
// @Failure 404 {object} errorEnvelope "Not Found"
// @Router /projects/{projectID}/status [patch]
func (h projectHandler) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, callerRole, err := ctxCaller(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		status := models.ProjectStatus(strings.ToUpper(req.Status))
		project, err := h.projects.UpdateStatus(projectID, callerRole, status)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "project "+strings.ToLower(string(status)), project)
	}
}

// getMetrics returns the aggregate status counts
func (h projectHandler) getMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := h.projects.GetMetrics()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "metrics retrieved", metrics)
	}
}

// formFile extracts the uploaded file from the multipart form, enforcing the
// size cap.
func (h projectHandler) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, errs.NewBadRequestError("no file sent")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, errs.NewBadRequestError("no file sent")
	}
	return file, header, nil
}

func fileExtension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
