// Package handler contains HTTP handlers for the API.
// Handlers are responsible for:
// - Parsing and validating HTTP requests
// - Calling use case methods
// - Converting results to HTTP responses
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itemsapi/src/app/http/response"
	"itemsapi/src/app/middleware"
	"itemsapi/src/core/usecase"
)

// HealthHandler handles health, configuration and database check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	OK     bool    `json:"ok"`
	Uptime float64 `json:"uptime"`
}

// PingResponse is the response for the database ping endpoint.
type PingResponse struct {
	OK     bool       `json:"ok"`
	Result PingResult `json:"result"`
}

// PingResult mirrors the row returned by SELECT 1 AS ok.
type PingResult struct {
	OK int `json:"ok"`
}

// Health is the liveness probe. It never touches the database.
// GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		OK:     true,
		Uptime: h.healthService.Uptime(),
	})
}

// DetailedHealth returns health status including configuration and database.
// GET /api/health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	status := h.healthService.Check(c.Request.Context())
	c.JSON(http.StatusOK, status)
}

// ConfigStatus reports which database variables are missing.
// Secret variables are never echoed.
// GET /api/config-status
func (h *HealthHandler) ConfigStatus(c *gin.Context) {
	st := h.healthService.ConfigStatus()
	body := gin.H{
		"ok":      st.OK,
		"missing": st.Missing,
	}
	for name, value := range st.Visible {
		body[name] = value
	}
	c.JSON(http.StatusOK, body)
}

// Ping runs SELECT 1 through the shared connection.
// GET /api/db/ping
func (h *HealthHandler) Ping(c *gin.Context) {
	ok, err := h.healthService.Ping(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	c.JSON(http.StatusOK, PingResponse{OK: true, Result: PingResult{OK: ok}})
}

// Version reports runtime information.
// GET /api/version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.Version())
}
