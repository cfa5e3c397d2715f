package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/conectaext/conecta-backend/database"
)

type healthHandler struct {
	logger zerolog.Logger
	db     database.Database
}

func newHealthHandler(db database.Database) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{logger: logger, db: db}
}

// check reports liveness plus database connectivity. This endpoint keeps the
// original bare shape instead of the response envelope so load balancers can
// parse it directly.
func (h healthHandler) check() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if err := h.db.Ping(); err != nil {
			h.logger.Error().Err(err).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status":   "error",
				"database": "disconnected",
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"status":   "ok",
			"database": "connected",
		})
	}
}
