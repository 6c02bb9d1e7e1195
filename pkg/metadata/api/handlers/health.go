package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler serves the unauthenticated health probes.
type HealthHandler struct {
	store     *store.GORMStore
	startTime time.Time
}

func NewHealthHandler(s *store.GORMStore) *HealthHandler {
	return &HealthHandler{store: s, startTime: time.Now()}
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, map[string]any{
		"status":     "healthy",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime_sec": int64(time.Since(h.startTime).Seconds()),
	})
}

// Readiness handles GET /health/ready. It pings the underlying database.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	sqlDB, err := h.store.DB().DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unhealthy"})
		return
	}
	WriteJSONOK(w, map[string]any{"status": "healthy"})
}
