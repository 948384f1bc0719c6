package ws

import (
	"log"
	"net/http"

	"github.com/ar363/restaurant-live-ordering/services"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// close codes เดียวกับที่ client เดิมแยกเคสอยู่แล้ว
const (
	CloseMissingToken  = 4001
	CloseInvalidClaims = 4002
	CloseInvalidToken  = 4003
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/cart?token=...
// รับ token ทาง query เพราะ browser ตั้ง header ตอนเปิด WS ไม่ได้
// accept ก่อนแล้วค่อยปิดด้วย code เฉพาะ เพื่อให้ client อ่านเหตุผลได้
func (h *Hub) HandleCartWS(secret string) gin.HandlerFunc {
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
			closeWithCode(conn, CloseInvalidToken, "invalid token")
			return
		}
		if claims.UserID == 0 {
			closeWithCode(conn, CloseInvalidClaims, "missing user id")
			return
		}

		sub := Subscription{Conn: conn, Group: services.CartGroup(claims.UserID), UserID: claims.UserID}
		h.register <- sub

		go h.listen(sub)
	}
}

// listen อ่านทิ้งจนกว่า connection จะหลุด — ฝั่ง client ไม่มีอะไรต้องส่งมา
// (mutation ทั้งหมดเข้าทาง REST, WS เอาไว้รับอย่างเดียว)
func (h *Hub) listen(sub Subscription) {
	defer func() { h.unregister <- sub }()

	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func closeWithCode(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	conn.Close()
}
