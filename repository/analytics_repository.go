package repository

import (
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AnalyticsRepository struct{ DB *gorm.DB }

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// CountOrdersSince นับทุกออเดอร์ยกเว้นที่ยกเลิก
func (r *AnalyticsRepository) CountOrdersSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Order{}).
		Where("created_at >= ? AND status <> ?", since, entity.StatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *AnalyticsRepository) RevenueSince(since time.Time) (decimal.Decimal, error) {
	var row struct {
		Revenue decimal.Decimal
	}
	err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").
		Where("created_at >= ? AND status <> ?", since, entity.StatusCancelled).
		Scan(&row).Error
	return row.Revenue, err
}

func (r *AnalyticsRepository) OrdersByStatusSince(since time.Time) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ?", since).
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

type TopItem struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
}

// TopItemsSince เมนูขายดีตามจำนวนชิ้น
func (r *AnalyticsRepository) TopItemsSince(since time.Time, limit int) ([]TopItem, error) {
	var rows []TopItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("order_items.menu_item_id AS menu_item_id, menu_items.name AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.created_at >= ? AND orders.status <> ?", since, entity.StatusCancelled).
		Group("order_items.menu_item_id, menu_items.name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
