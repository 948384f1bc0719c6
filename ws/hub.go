package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// เขียนไม่ทันใน 10 วิ = เตะออก — ห้ามให้ client ค้างตัวเดียว block ทั้ง loop
const writeWait = 10 * time.Second

// Hub คือศูนย์กลาง fan-out: group หนึ่งชื่อ → client หลายตัว
// group มีสองแบบ: cart_{userId} ต่อ user และ "kitchen" กลุ่มเดียวของ staff
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool // group -> set of clients
	broadcast  chan GroupMessage
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
}

// Subscription = 1 connection เข้า 1 group
type Subscription struct {
	Conn   *websocket.Conn
	Group  string
	UserID uint
}

// GroupMessage = payload ที่จะกระจายให้ทุกคนใน group
type GroupMessage struct {
	Group   string
	Payload any
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan GroupMessage),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
	}
}

// Publish ส่งเข้า group — ผ่าน channel เดียวเสมอ
// ลำดับ publish ใน group เดียวกันเลยคงเดิมถึงทุก client
func (h *Hub) Publish(group string, payload any) {
	h.broadcast <- GroupMessage{Group: group, Payload: payload}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *Hub) Run() {
	for {
		select {
		// มี client ใหม่เข้า group
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.Group] == nil {
				h.clients[sub.Group] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.Group][sub.Conn] = true
			h.mu.Unlock()

		// client หลุด/ออกจาก group
		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Group][sub.Conn]; ok {
				delete(h.clients[sub.Group], sub.Conn)
				sub.Conn.Close()
			}
			if len(h.clients[sub.Group]) == 0 {
				delete(h.clients, sub.Group)
			}
			h.mu.Unlock()

		// มี event ใหม่ → กระจายให้ทุกคนใน group (join ทีหลังไม่ได้ย้อนหลัง)
		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.Group] {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg.Payload); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.Group], conn)
				}
			}
			if len(h.clients[msg.Group]) == 0 {
				delete(h.clients, msg.Group)
			}
			h.mu.Unlock()
		}
	}
}
