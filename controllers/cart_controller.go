package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/pkg/resp"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(svc *services.CartService) *CartController {
	return &CartController{Svc: svc}
}

// POST /cart/sync — รับ snapshot ทั้งใบจากเครื่องไหนก็ได้ของ user
// store ล่ม = soft failure: ตอบ success:false ไม่ใช่ 5xx
// (cart sync เป็น best-effort ห้าม block ส่วนอื่นของระบบ)
func (h *CartController) Sync(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var snap entity.CartSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	if err := h.Svc.Sync(c.Request.Context(), uid, &snap); err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			c.JSON(http.StatusOK, gin.H{"success": false})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "last_updated": snap.LastUpdated})
}

// GET /cart/sync?last_updated=V — ส่ง V เดิมมา ถ้าไม่มีอะไรใหม่จะได้ cart:null
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var knownVersion int64
	if v := c.Query("last_updated"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			resp.BadRequest(c, "last_updated must be an integer")
			return
		}
		knownVersion = parsed
	}

	snap, err := h.Svc.Get(c.Request.Context(), uid, knownVersion)
	if err != nil {
		if errors.Is(err, services.ErrStoreUnavailable) {
			c.JSON(http.StatusOK, gin.H{"success": false, "cart": nil})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cart": snap})
}
