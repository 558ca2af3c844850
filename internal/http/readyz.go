package http

import (
	"net/http"
	"time"

	"github.com/kidzegeye/akoma-backend/internal/store"
	"github.com/kidzegeye/akoma-backend/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It verifies the database is
// reachable and reports 503 with a degraded status when it is not.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
