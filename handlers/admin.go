package handlers

import (
	"net/http"

	"decorhub/services/analytics"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves admin-only reports.
type AdminHandler struct {
	Analytics *analytics.Service
}

func NewAdminHandler(svc *analytics.Service) *AdminHandler {
	return &AdminHandler{Analytics: svc}
}

// AnalyticsReport handles GET /admin/analytics.
func (h *AdminHandler) AnalyticsReport(c *gin.Context) {
	report, err := h.Analytics.Report(c.Request.Context(), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
