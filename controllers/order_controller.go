package controllers

import (
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{Svc: svc}
}

// POST /orders — สั่งตรงไม่ผ่าน flow ตะกร้า
func (h *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	view, err := h.Svc.Create(uid, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.Created(c, view)
}

// GET /orders — staff เห็นทั้งหมด (filter ?status= ได้) ลูกค้าเห็นของตัวเอง
func (h *OrderController) List(c *gin.Context) {
	views, err := h.Svc.List(utils.CurrentUserID(c), utils.CurrentRole(c), c.Query("status"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, views)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	view, err := h.Svc.Detail(utils.CurrentUserID(c), utils.CurrentRole(c), parseID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	resp.OK(c, view)
}

type UpdateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /orders/:id/status — ลูกค้าใช้ cancel, staff ใช้เดินสถานะก็ได้
func (h *OrderController) UpdateStatus(c *gin.Context) {
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
