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

type indicatorHandler struct {
	responder  Responder
	logger     zerolog.Logger
	indicators *services.IndicatorService
}

func newIndicatorHandler(indicators *services.IndicatorService) indicatorHandler {
	logger := log.With().Str("handlerName", "indicatorHandler").Logger()

	return indicatorHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		indicators: indicators,
	}
}

type createIndicatorsRequest struct {
	Indicators []services.IndicatorInput `json:"indicators"`
}

// createIndicators stores a batch of indicators for a project
// @Summary Create impact indicators
// @Tags Indicators
// @Accept json
// @Produce json
// @Success 201 {object} successEnvelope "Created indicators"
// @Failure 400 {object} errorEnvelope "Bad Request - empty batch"
// @Failure 403 {object} errorEnvelope "Forbidden - not creator nor admin"
// @Failure 404 {object} errorEnvelope "Not Found - project absent"
// @Router /projects/{projectID}/impact-indicators [post]
func (h indicatorHandler) createIndicators() http.HandlerFunc {
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

		var req createIndicatorsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		indicators, err := h.indicators.Create(projectID, callerID, callerRole, req.Indicators)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, "indicators created", indicators)
	}
}

func (h indicatorHandler) updateIndicator() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, callerRole, err := ctxCaller(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		indicatorID, err := uuid.Parse(chi.URLParam(r, "indicatorID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid indicatorID"))
			return
		}

		var input services.UpdateIndicatorInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		indicator, err := h.indicators.Update(indicatorID, callerID, callerRole, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "indicator updated", indicator)
	}
}

func (h indicatorHandler) deleteIndicator() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, callerRole, err := ctxCaller(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing bearer token"))
			return
		}

		indicatorID, err := uuid.Parse(chi.URLParam(r, "indicatorID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid indicatorID"))
			return
		}

		if err := h.indicators.Delete(indicatorID, callerID, callerRole); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "indicator deleted", nil)
	}
}

func (h indicatorHandler) getByProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		indicators, err := h.indicators.GetByProject(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "indicators retrieved", indicators)
	}
}
