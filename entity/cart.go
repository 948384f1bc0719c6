package entity

import (
	"github.com/shopspring/decimal"
)

// CartLine หนึ่งบรรทัดในตะกร้า — เก็บชื่อ/ราคาเมนูแบบ snapshot
// เพื่อให้ฝั่ง ephemeral store ไม่ต้องพึ่ง DB ตอนแก้ตะกร้า
type CartLine struct {
	MenuItemID          uint            `json:"menu_item_id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// CartSnapshot ตะกร้าทั้งใบของ user หนึ่งคน (replace ทั้งก้อนทุกครั้งที่ sync)
// LastUpdated เป็น logical version ที่ client เลือกเอง (ms since epoch)
type CartSnapshot struct {
	Items       []CartLine `json:"items"`
	LastUpdated int64      `json:"last_updated"`
}

// Total รวมราคาจาก captured price ในตะกร้า ไม่ lookup เมนูใหม่
func (c *CartSnapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// CheckoutState สถานะ "กำลังจะจ่าย" อายุสั้น อยู่ใน ephemeral store เท่านั้น
type CheckoutState struct {
	PaymentMethod       string `json:"payment_method,omitempty"`
	SpecialInstructions string `json:"special_instructions"`
}
