package usecase

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"itemsapi/src/core/domain"
	"itemsapi/src/core/ports"
)

// HealthService handles liveness, configuration and database checks.
type HealthService struct {
	repo    ports.Repository
	config  ports.ConfigInspector
	env     string
	started time.Time
	now     func() time.Time
	log     *slog.Logger
}

// NewHealthService creates a new HealthService. Uptime is measured from now.
func NewHealthService(repo ports.Repository, config ports.ConfigInspector, env string, log *slog.Logger) *HealthService {
	return &HealthService{
		repo:    repo,
		config:  config,
		env:     env,
		started: time.Now(),
		now:     time.Now,
		log:     log,
	}
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Go       string `json:"go"`
	Platform string `json:"platform"`
	Env      string `json:"env"`
}

// Uptime returns seconds since the service was created. It never touches storage.
func (s *HealthService) Uptime() float64 {
	return s.now().Sub(s.started).Seconds()
}

// ConfigStatus reports database configuration completeness without secrets.
func (s *HealthService) ConfigStatus() ports.ConfigStatus {
	return s.config.Status()
}

// Ping runs a trivial statement through the shared connection.
func (s *HealthService) Ping(ctx context.Context) (int, error) {
	return s.repo.Ping(ctx)
}

// Version reports the Go runtime, platform and deployment environment.
func (s *HealthService) Version() VersionInfo {
	return VersionInfo{
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Env:      s.env,
	}
}

// Check performs a health check of all application components.
// A component failure degrades the status; it never fails the call.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth),
	}

	cfg := s.config.Status()
	if cfg.OK {
		status.Components["config"] = ComponentHealth{Status: "healthy"}
	} else {
		status.Status = "degraded"
		status.Components["config"] = ComponentHealth{Status: "incomplete", Missing: cfg.Missing}
	}

	if _, err := s.repo.Ping(ctx); err != nil {
		status.Status = "degraded"
		db := ComponentHealth{Status: "unhealthy", Message: "database unreachable"}
		if domain.IsNotConfigured(err) {
			db = ComponentHealth{Status: "not_configured", Message: "database not configured"}
		}
		s.log.Warn("database health check failed", "error", err)
		status.Components["database"] = db
	} else {
		status.Components["database"] = ComponentHealth{Status: "healthy"}
	}

	return status
}
