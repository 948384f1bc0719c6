package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Category    string          `gorm:"size:100" json:"category"`
	IsAvailable bool            `gorm:"default:true" json:"isAvailable"`
	Image       string          `json:"image"`

	OrderItems []OrderItem `json:"-"`
}
