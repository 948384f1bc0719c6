package repository

import (
	"github.com/ar363/restaurant-live-ordering/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderWithItems preload รายการ + ชื่อเมนู ใช้ตอนส่ง detail/broadcast
func (r *OrderRepository) GetOrderWithItems(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Table").Preload("Items").Preload("Items.MenuItem").First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Preload("Table").Preload("Items").Preload("Items.MenuItem").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListAll(status string) ([]entity.Order, error) {
	q := r.DB.Preload("Table").Preload("Items").Preload("Items.MenuItem").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []entity.Order
	err := q.Find(&orders).Error
	return orders, err
}

// ListActive = ออเดอร์ที่ครัวยังต้องสนใจ (ตัด completed/cancelled ทิ้ง)
func (r *OrderRepository) ListActive() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("status NOT IN ?", []string{entity.StatusCompleted, entity.StatusCancelled}).
		Preload("Table").Preload("Items").Preload("Items.MenuItem").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatusGuard เปลี่ยนสถานะเฉพาะเมื่อสถานะปัจจุบันตรงตามคาด
// affected == 0 แปลว่าแพ้ race หรือ transition ไม่ถูก
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetPaymentSettled(tx *gorm.DB, orderID uint) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("payment_status", true).Error
}

func (r *OrderRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.Count
	}
	return out, nil
}
