package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"` // preload แค่ตอนต้องการ order detail

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload เฉพาะตอนต้องการชื่อเมนู

	Quantity int `gorm:"default:1" json:"quantity"`
	// ราคา ณ ตอนสั่ง — แก้ราคาเมนูทีหลังไม่กระทบออเดอร์เก่า
	PriceAtOrder        decimal.Decimal `gorm:"type:decimal(10,2)" json:"priceAtOrder"`
	SpecialInstructions string          `json:"specialInstructions"`
}

// Subtotal = quantity × captured price
func (oi *OrderItem) Subtotal() decimal.Decimal {
	return oi.PriceAtOrder.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
