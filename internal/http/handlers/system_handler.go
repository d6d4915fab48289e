// README: Service-level endpoints (root info, liveness).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceInfo identifies the running build.
type ServiceInfo struct {
	Name    string
	Version string
}

type SystemHandler struct {
	info ServiceInfo
}

func NewSystemHandler(info ServiceInfo) *SystemHandler {
	return &SystemHandler{info: info}
}

// Root handles GET /.
func (h *SystemHandler) Root(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"service": h.info.Name,
		"version": h.info.Version,
		"status":  "running",
	})
}

// Health handles GET /health.
func (h *SystemHandler) Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.info.Name,
		"version": h.info.Version,
	})
}
