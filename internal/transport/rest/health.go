package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/jmoiron/sqlx"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// HealthHandler probes the configured store. A nil db means the in-memory
// store, which is always ready.
type HealthHandler struct {
	*transport.BaseHandler
	db     *sqlx.DB
	driver string
}

func NewHealthHandler(baseHandler *transport.BaseHandler, db *sqlx.DB, driver string) *HealthHandler {
	return &HealthHandler{BaseHandler: baseHandler, db: db, driver: driver}
}

// Ping says the process is up.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Health checks the storage connection.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	entry := h.probe(r.Context())

	resp := HealthResponse{
		Status:     entry.Status,
		CheckedAt:  entry.CheckedAt,
		Components: map[string]CheckEntry{h.driver: entry},
	}

	status := http.StatusOK
	if entry.Status == HealthUnhealthy {
		h.Logger.Warn("health check failed", "driver", h.driver, "error", entry.Message)
		status = http.StatusServiceUnavailable
	}
	h.WriteJSON(w, status, resp)
}

func (h *HealthHandler) probe(ctx context.Context) CheckEntry {
	start := time.Now()
	entry := CheckEntry{Status: HealthHealthy, CheckedAt: start}
	if h.db == nil {
		return entry
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var one int
	if err := h.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	entry.DurationMs = time.Since(start).Milliseconds()
	return entry
}
