package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// glossaryState reports the state of the matcher's glossary snapshot.
type glossaryState interface {
	Ready() bool
	LoadedAt() time.Time
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	glossary glossaryState
	db       dbPinger
	version  string
}

// NewHealthHandler creates a HealthHandler. db may be nil when the glossary
// is stored on disk.
func NewHealthHandler(glossary glossaryState, db dbPinger, version string) *HealthHandler {
	return &HealthHandler{glossary: glossary, db: db, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status   string     `json:"status"`
	Latency  string     `json:"latency,omitempty"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// Component and overall statuses.
const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDegraded = "degraded"
	statusFallback = "fallback"
)

// Live is the liveness check. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    statusOK,
		Timestamp: time.Now(),
	})
}

// Ready is the readiness check. The matcher answers from its fallback table
// before the glossary loads, so only an unreachable database makes it 503.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	components, overall := h.check(r.Context())
	status := http.StatusOK
	if overall == statusDown {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// Health is the full health check, including the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, overall := h.check(r.Context())
	status := http.StatusOK
	if overall == statusDown {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, string) {
	components := make(map[string]CompStatus, 2)
	overall := statusOK

	if h.glossary.Ready() {
		loadedAt := h.glossary.LoadedAt()
		components["glossary"] = CompStatus{Status: statusOK, LoadedAt: &loadedAt}
	} else {
		components["glossary"] = CompStatus{Status: statusFallback}
		overall = statusDegraded
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: statusDown}
			overall = statusDown
		} else {
			components["database"] = CompStatus{Status: statusOK, Latency: latency.String()}
		}
	}

	return components, overall
}
