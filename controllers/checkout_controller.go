package controllers

import (
	"errors"
	"net/http"

	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ Svc *services.CheckoutService }

func NewCheckoutController(svc *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Svc: svc}
}

// POST /checkout/start
func (h *CheckoutController) Start(c *gin.Context) {
	h.upsert(c)
}

// POST /checkout/update — เรียกโดยไม่เคย start ก็ได้ (ทำตัวเป็น start)
func (h *CheckoutController) Update(c *gin.Context) {
	h.upsert(c)
}

func (h *CheckoutController) upsert(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var in services.CheckoutIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Start(c.Request.Context(), uid, &in); err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /checkout/status — TTL หมดเงียบ ๆ client ต้อง poll เอง
func (h *CheckoutController) Status(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	state, err := h.Svc.Status(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		handleServiceError(c, err)
		return
	}

	out := gin.H{"success": true, "in_progress": state != nil}
	if state != nil {
		out["payment_method"] = state.PaymentMethod
		out["special_instructions"] = state.SpecialInstructions
	}
	c.JSON(http.StatusOK, out)
}

// POST /checkout/cancel
func (h *CheckoutController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	if err := h.Svc.Cancel(c.Request.Context(), uid); err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /checkout/complete — จุดเดียวที่ตะกร้ากลายเป็นออเดอร์จริง
func (h *CheckoutController) Complete(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var in services.CompleteIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := h.Svc.Complete(c.Request.Context(), uid, &in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	view := services.NewOrderView(order)
	resp.Created(c, gin.H{"order": view})
}
