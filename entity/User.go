package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // ปลอดภัย
	Name     string `json:"name"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// Relations — preload เฉพาะตอนจำเป็น
	Orders []Order `json:"-"`
}

// Role values
const (
	RoleCustomer = "customer"
	RoleKitchen  = "kitchen"
	RoleOwner    = "owner"
)

// IsStaffRole: kitchen กับ owner ถือเป็น staff ทั้งคู่
func IsStaffRole(role string) bool {
	return role == RoleKitchen || role == RoleOwner
}
