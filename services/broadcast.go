package services

import (
	"fmt"
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/shopspring/decimal"
)

// Broadcaster คือ fan-out channel (ws.Hub ของจริง / fake ตอนเทส)
// ส่งแบบ best-effort ให้สมาชิกที่ต่ออยู่ตอนนั้น ไม่มี replay
type Broadcaster interface {
	Publish(group string, payload any)
}

// กลุ่ม broadcast: ต่อ user หนึ่งกลุ่ม + kitchen กลุ่มเดียวสำหรับ staff
const KitchenGroup = "kitchen"

func CartGroup(userID uint) string { return fmt.Sprintf("cart_%d", userID) }

// ---- event payloads (shape เดียวกับที่ frontend ฟังอยู่) ----

type CartUpdateEvent struct {
	Type string               `json:"type"`
	Data *entity.CartSnapshot `json:"data"`
}

func NewCartUpdateEvent(snap *entity.CartSnapshot) CartUpdateEvent {
	return CartUpdateEvent{Type: "cart_update", Data: snap}
}

type CheckoutStatusEvent struct {
	Type                string `json:"type"`
	InProgress          bool   `json:"is_checkout_in_progress"`
	PaymentMethod       string `json:"payment_method,omitempty"`
	SpecialInstructions string `json:"special_instructions"`
}

func NewCheckoutStatusEvent(state *entity.CheckoutState) CheckoutStatusEvent {
	ev := CheckoutStatusEvent{Type: "checkout_status"}
	if state != nil {
		ev.InProgress = true
		ev.PaymentMethod = state.PaymentMethod
		ev.SpecialInstructions = state.SpecialInstructions
	}
	return ev
}

type CheckoutCompleteEvent struct {
	Type    string `json:"type"`
	OrderID uint   `json:"order_id"`
}

type NewOrderEvent struct {
	Type  string    `json:"type"`
	Order OrderView `json:"order"`
}

type OrderUpdateEvent struct {
	Type  string    `json:"type"`
	Order OrderView `json:"order"`
}

// ---- order views (ใช้ทั้ง REST response และ broadcast) ----

type OrderLineView struct {
	ID                  uint            `json:"id"`
	MenuItemID          uint            `json:"menuItemId"`
	MenuItemName        string          `json:"menuItemName,omitempty"`
	Quantity            int             `json:"quantity"`
	PriceAtOrder        decimal.Decimal `json:"priceAtOrder"`
	SpecialInstructions string          `json:"specialInstructions"`
}

type OrderView struct {
	ID                  uint            `json:"id"`
	UserID              uint            `json:"userId"`
	TableID             *uint           `json:"tableId"`
	TableNumber         *int            `json:"tableNumber"`
	Status              string          `json:"status"`
	SpecialInstructions string          `json:"specialInstructions"`
	PaymentMethod       string          `json:"paymentMethod"`
	PaymentStatus       bool            `json:"paymentStatus"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	Items               []OrderLineView `json:"items"`
}

// NewOrderView แปลง entity เป็น view — ชื่อเมนู/เลขโต๊ะใส่ได้เมื่อ preload มา
func NewOrderView(o *entity.Order) OrderView {
	v := OrderView{
		ID:                  o.ID,
		UserID:              o.UserID,
		TableID:             o.TableID,
		Status:              o.Status,
		SpecialInstructions: o.SpecialInstructions,
		PaymentMethod:       o.PaymentMethod,
		PaymentStatus:       o.PaymentStatus,
		TotalAmount:         o.TotalAmount,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Items:               make([]OrderLineView, 0, len(o.Items)),
	}
	if o.Table != nil {
		v.TableNumber = &o.Table.TableNumber
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, OrderLineView{
			ID:                  it.ID,
			MenuItemID:          it.MenuItemID,
			MenuItemName:        it.MenuItem.Name,
			Quantity:            it.Quantity,
			PriceAtOrder:        it.PriceAtOrder,
			SpecialInstructions: it.SpecialInstructions,
		})
	}
	return v
}
