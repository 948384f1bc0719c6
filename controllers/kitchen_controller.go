package controllers

import (
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/gin-gonic/gin"
)

type KitchenController struct{ Svc *services.OrderService }

func NewKitchenController(svc *services.OrderService) *KitchenController {
	return &KitchenController{Svc: svc}
}

// GET /kitchen/dashboard — ออเดอร์ที่ยังไม่จบ + นับตามสถานะ
func (h *KitchenController) Dashboard(c *gin.Context) {
	dash, err := h.Svc.Dashboard()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, dash)
}

// GET /kitchen/orders?status=
func (h *KitchenController) Orders(c *gin.Context) {
	views, err := h.Svc.List(utils.CurrentUserID(c), utils.CurrentRole(c), c.Query("status"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, views)
}

// PUT /kitchen/orders/:id/status — ตัวนี้แหละที่ auto-complete ออเดอร์ card/upi
// ตอนส่งอาหารเสร็จ แล้ว broadcast order_update เข้า kitchen group
func (h *KitchenController) UpdateStatus(c *gin.Context) {
	var req UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := h.Svc.UpdateStatus(utils.CurrentUserID(c), utils.CurrentRole(c), parseID(c), req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, view)
}
