package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService reports process health for the /api/health endpoint.
type HealthService struct {
	version   string
	startTime time.Time
	logger    *slog.Logger
	recon     *ReconService
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	GoVersion     string    `json:"go_version"`
	HasRun        bool      `json:"has_run"`
	LastRunID     string    `json:"last_run_id,omitempty"`
}

// NewHealthService creates a health service.
func NewHealthService(version string, recon *ReconService, logger *slog.Logger) *HealthService {
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
		recon:     recon,
	}
}

// Check returns the current health snapshot. The service is always "ok"
// when reachable; the run fields tell operators whether results exist.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:        "ok",
		Timestamp:     time.Now().UTC(),
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		GoVersion:     runtime.Version(),
	}
	if last, ok := s.recon.Latest(); ok {
		status.HasRun = true
		status.LastRunID = last.RunID
	}
	return status
}
