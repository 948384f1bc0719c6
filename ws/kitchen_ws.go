package ws

import (
	"log"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/gin-gonic/gin"
)

// WS route: /ws/kitchen?token=... — เฉพาะ staff (kitchen/owner)
func (h *Hub) HandleKitchenWS(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		token := c.Query("token")
		if token == "" {
			closeWithCode(conn, CloseMissingToken, "missing token")
			return
		}

		claims, err := utils.ParseToken(token, secret)
		if err != nil {
			closeWithCode(conn, CloseInvalidClaims, "invalid token")
			return
		}
		if !entity.IsStaffRole(claims.Role) {
			closeWithCode(conn, CloseInvalidToken, "staff only")
			return
		}

		sub := Subscription{Conn: conn, Group: services.KitchenGroup, UserID: claims.UserID}
		h.register <- sub

		go h.listen(sub)
	}
}
