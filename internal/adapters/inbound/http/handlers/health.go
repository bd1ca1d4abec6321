package handlers

import (
	"net/http"

	"github.com/pitosalas/blogbridge-sub012/internal/usecases"
	"github.com/pitosalas/blogbridge-sub012/internal/usecases/queries"
)

type HealthHandler struct {
	app *usecases.Application
}

func NewHealthHandler(app *usecases.Application) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchLiveness.Execute(r.Context(), queries.FetchLivenessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})

		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchReadiness.Execute(r.Context(), queries.FetchReadinessQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})

		return
	}

	status := http.StatusOK
	if !result.Ready {
		status = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, status, result)
}

func (h *HealthHandler) Report(w http.ResponseWriter, r *http.Request) {
	result, err := h.app.Queries.FetchHealthReport.Execute(r.Context(), queries.FetchHealthReportQuery{})
	if err != nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})

		return
	}

	status := http.StatusOK
	if result.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, status, result)
}
