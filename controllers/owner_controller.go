package controllers

import (
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/gin-gonic/gin"
)

type OwnerController struct{ Svc *services.AnalyticsService }

func NewOwnerController(svc *services.AnalyticsService) *OwnerController {
	return &OwnerController{Svc: svc}
}

// GET /owner/analytics?period=today|week|month
func (h *OwnerController) Analytics(c *gin.Context) {
	summary, err := h.Svc.Summary(c.DefaultQuery("period", "today"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, summary)
}
