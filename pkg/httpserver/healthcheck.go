package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/oddlzenie/intake/pkg/logger"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Env       string `json:"env,omitempty"`
}

// HealthCheckHandler returns the /health endpoint handler. Without
// dependency functions it reports 200 {"status":"OK",...}; with them it runs
// each check and degrades to 500 {"status":"UNAVAILABLE",...} on the first
// failure, logging the cause.
func HealthCheckHandler(log *slog.Logger, env string, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := healthResponse{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Env:       env,
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "health check failed", logger.Error(err))
				status = http.StatusInternalServerError
				body.Status = "UNAVAILABLE"
				break
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
