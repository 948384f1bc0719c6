package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID uint `json:"userId"`
	User   User `json:"-"` // preload เฉพาะตอนต้องการ user detail

	// โต๊ะเป็น nullable: ลบโต๊ะแล้วออเดอร์เก่ายังอยู่
	TableID *uint  `json:"tableId"`
	Table   *Table `json:"-"`

	Status              string          `gorm:"size:20;default:pending" json:"status"`
	SpecialInstructions string          `json:"specialInstructions"`
	PaymentMethod       string          `gorm:"size:20" json:"paymentMethod"`
	PaymentStatus       bool            `json:"paymentStatus"`
	TotalAmount         decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalAmount"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
