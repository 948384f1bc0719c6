package configs

import (
	"log"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// สร้าง staff account ครั้งแรก (kitchen / owner)
func SeedStaff() error {
	db := DB()

	type staffSeed struct {
		emailKey, passKey, role, name string
	}
	for _, s := range []staffSeed{
		{"KITCHEN_EMAIL", "KITCHEN_PASSWORD", entity.RoleKitchen, "Kitchen Console"},
		{"OWNER_EMAIL", "OWNER_PASSWORD", entity.RoleOwner, "Owner"},
	} {
		email := getEnv(s.emailKey, "")
		pass := getEnv(s.passKey, "")
		if email == "" || pass == "" {
			log.Printf("⚠️ skip seeding %s: missing %s/%s", s.role, s.emailKey, s.passKey)
			continue
		}

		var count int64
		db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
		if count > 0 {
			log.Printf("ℹ️ %s already exists: %s", s.role, email)
			continue
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		u := entity.User{Email: email, Password: string(hash), Name: s.name, Role: s.role}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}
	return nil
}

// Seed โต๊ะ + เมนูตัวอย่างตอนฐานข้อมูลยังว่าง
func SeedDemoData() error {
	db := DB()

	for i := 1; i <= 10; i++ {
		db.FirstOrCreate(&entity.Table{}, entity.Table{TableNumber: i})
	}

	var count int64
	db.Model(&entity.MenuItem{}).Count(&count)
	if count > 0 {
		return nil
	}

	type seedItem struct {
		name, desc, category string
		price                string
	}
	items := []seedItem{
		{"Spring Rolls", "Crispy vegetable spring rolls served with sweet chili sauce", "Starters", "120.00"},
		{"Paneer Tikka", "Grilled cottage cheese marinated in Indian spices", "Starters", "180.00"},
		{"Chicken Wings", "Spicy buffalo wings with ranch dip", "Starters", "220.00"},
		{"French Fries", "Crispy golden fries with ketchup", "Starters", "100.00"},
		{"Butter Chicken", "Tender chicken in rich tomato and butter gravy", "Main Course", "320.00"},
		{"Paneer Butter Masala", "Cottage cheese cubes in creamy tomato gravy", "Main Course", "280.00"},
		{"Biryani (Veg)", "Fragrant basmati rice with mixed vegetables and spices", "Main Course", "250.00"},
		{"Masala Chai", "Spiced Indian tea with milk", "Beverages", "40.00"},
		{"Fresh Lime Soda", "Refreshing lime soda, sweet or salted", "Beverages", "60.00"},
		{"Gulab Jamun", "Soft milk dumplings in rose syrup", "Desserts", "90.00"},
	}
	for _, it := range items {
		price, _ := decimal.NewFromString(it.price)
		m := entity.MenuItem{
			Name:        it.name,
			Description: it.desc,
			Price:       price,
			Category:    it.category,
			IsAvailable: true,
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
	}
	log.Printf("✓ seeded %d menu items", len(items))
	return nil
}
