package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/internal/pkg/httputils"
	"github.com/kart-io/datanikah/pkg/component"
	"github.com/kart-io/datanikah/pkg/infra/app"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

// HealthHandler reports liveness, dependency health and build version.
type HealthHandler struct {
	clients []component.Client
}

// NewHealthHandler creates a HealthHandler checking clients.
func NewHealthHandler(clients ...component.Client) *HealthHandler {
	return &HealthHandler{clients: clients}
}

// Healthz handles GET /healthz.
func (h *HealthHandler) Healthz(c *gin.Context) {
	checks := make(map[string]string, len(h.clients))
	healthy := true
	for _, client := range h.clients {
		if err := client.Health()(); err != nil {
			checks[client.Name()] = err.Error()
			healthy = false
			continue
		}
		checks[client.Name()] = "ok"
	}

	if !healthy {
		resp := response.Err(errors.ErrInternal.WithMessages("Service unavailable", "Layanan tidak tersedia"))
		resp.HTTPCode = http.StatusServiceUnavailable
		resp.Data = checks
		httputils.WriteResponse(c, nil, resp)
		return
	}
	httputils.WriteResponse(c, nil, gin.H{"status": "ok", "checks": checks})
}

// Version handles GET /version.
func (h *HealthHandler) Version(c *gin.Context) {
	httputils.WriteResponse(c, nil, app.GetVersionInfo())
}
