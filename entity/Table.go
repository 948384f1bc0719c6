package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	TableNumber int    `gorm:"uniqueIndex;not null" json:"tableNumber"`
	QRCode      string `gorm:"size:255" json:"qrCode"`
	IsOccupied  bool   `json:"isOccupied"`

	// order เก็บ reference ไว้ฝั่งเดียว ถ้าโต๊ะถูกลบ order ยังอยู่
	Orders []Order `json:"-"`
}
