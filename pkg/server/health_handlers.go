package server

import (
	"errors"
	"net/http"

	"github.com/medctx/medctx/pkg/models"
)

type ReadyResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

// ReadyHandler godoc
//
//	@Summary	Reports whether the NLP server behind the context model is ready
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	ReadyResponse
//	@Failure	503	{object}	APIError	"Service Unavailable"
//	@Router		/readyz [get]
func ReadyHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hc, ok := appState.ContextModel.(models.HealthChecker)
		if !ok {
			renderError(
				w,
				errors.New("context model does not support health checks"),
				http.StatusServiceUnavailable,
			)
			return
		}

		info, err := hc.Health(r.Context())
		if err != nil {
			renderError(w, err, http.StatusServiceUnavailable)
			return
		}

		if err := encodeJSON(w, ReadyResponse{
			Status:  "ok",
			Model:   info.Model,
			Version: info.Version,
		}); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
