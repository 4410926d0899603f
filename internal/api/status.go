package api

import (
	"net/http"

	"farewatch/backend/internal/store"
)

// StoreStatusHandler handles GET /api/v1/status, summarizing the snapshot
// directory.
func StoreStatusHandler(st *store.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := st.Stats(r.Context())
		respondWithSuccess(w, http.StatusOK, &stats)
	}
}
