package api

import (
	"net/http"

	"farewatch/backend/internal/jobs"
	"farewatch/backend/internal/logging"
)

// JobsHandler exposes manual triggers for the tracker jobs.
type JobsHandler struct {
	jobs *jobs.JobsContainer
}

func NewJobsHandler(container *jobs.JobsContainer) *JobsHandler {
	return &JobsHandler{jobs: container}
}

// TriggerPriceWatch handles POST /api/v1/admin/jobs/price-watch.
func (h *JobsHandler) TriggerPriceWatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logging.Info("Manual price watch trigger received")

		if err := h.jobs.PriceWatch.Run(r.Context()); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		message := "price watch completed"
		respondWithSuccess(w, http.StatusOK, &message)
	}
}

// TriggerRouteRefresh handles POST /api/v1/admin/jobs/route-refresh.
func (h *JobsHandler) TriggerRouteRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logging.Info("Manual route refresh trigger received")

		if err := h.jobs.RouteRefresh.Run(r.Context()); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		message := "route refresh completed"
		respondWithSuccess(w, http.StatusOK, &message)
	}
}
