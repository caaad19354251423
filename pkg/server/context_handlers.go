package server

import (
	"net/http"

	"github.com/medctx/medctx/internal"
	"github.com/medctx/medctx/pkg/models"
	"github.com/medctx/medctx/pkg/reconcile"
)

var log = internal.GetLogger()

// ProcessHandler godoc
//
//	@Summary		Enrich annotations with context attributes
//	@Description	Runs the context model over the report and merges its negation, uncertainty,
//	@Description	conditionality, historicity and subject attributes into the matching annotations.
//	@Description	Annotations with no matching model entity are omitted from the response.
//	@Tags			context
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.ProcessRequest	true	"Report and annotations"
//	@Success		200		{object}	models.ProcessResponse
//	@Failure		400		{object}	APIError	"Bad Request"
//	@Failure		413		{object}	APIError	"Request Entity Too Large"
//	@Failure		500		{object}	APIError	"Internal Server Error"
//	@Failure		503		{object}	APIError	"Service Unavailable"
//	@Router			/spacy_context/process [post]
func ProcessHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := models.DecodeProcessRequest(r.Body)
		if err != nil {
			renderError(w, err, statusForError(err))
			return
		}

		response, err := reconcile.Process(r.Context(), appState.ContextModel, request)
		if err != nil {
			renderError(w, err, statusForError(err))
			return
		}

		if err := encodeJSON(w, response); err != nil {
			renderError(w, err, http.StatusInternalServerError)
			return
		}
	}
}
