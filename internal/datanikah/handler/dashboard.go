package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/datanikah/internal/datanikah/biz"
	"github.com/kart-io/datanikah/internal/pkg/httputils"
	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/kart-io/datanikah/pkg/utils/response"
)

// DashboardHandler serves the chart data.
type DashboardHandler struct {
	svc *biz.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *biz.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /v1/dashboard/stats?year=YYYY. The year defaults to the
// most recent selectable one.
func (h *DashboardHandler) Stats(c *gin.Context) {
	year := h.svc.Years()[0]
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			httputils.WriteResponse(c, errors.ErrInvalidParam.WithMessagef("invalid year %q", raw), nil)
			return
		}
		year = y
	}

	stats, err := h.svc.Stats(c.Request.Context(), year)
	if err != nil {
		httputils.WriteResponse(c, err, nil)
		return
	}
	httputils.WriteResponse(c, nil, stats)
}

// Years handles GET /v1/dashboard/years.
func (h *DashboardHandler) Years(c *gin.Context) {
	years := h.svc.Years()
	httputils.WriteResponse(c, nil, response.List(years, len(years)))
}
