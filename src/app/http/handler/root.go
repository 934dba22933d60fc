package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootHandler describes the service at GET /.
type RootHandler struct {
	service string
	routes  func() []string
}

// NewRootHandler creates a RootHandler. routes is evaluated per request so it
// reflects the router once setup is complete.
func NewRootHandler(service string, routes func() []string) *RootHandler {
	return &RootHandler{service: service, routes: routes}
}

// RootResponse is the response for the root endpoint.
type RootResponse struct {
	Service string   `json:"service"`
	Status  string   `json:"status"`
	Routes  []string `json:"routes"`
}

// Index lists the registered routes.
// GET /
func (h *RootHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Service: h.service,
		Status:  "ok",
		Routes:  h.routes(),
	})
}
