package repository

import (
	"errors"

	"github.com/ar363/restaurant-live-ordering/entity"
	"gorm.io/gorm"
)

type TableRepository struct{ DB *gorm.DB }

func NewTableRepository(db *gorm.DB) *TableRepository { return &TableRepository{DB: db} }

func (r *TableRepository) List() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Order("table_number").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) GetByID(id uint) (*entity.Table, error) {
	var t entity.Table
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// GetOrCreateByNumber ใช้ตอน commit order: ไม่มีโต๊ะนี้ก็สร้างใหม่แล้ว mark ว่ามีคนนั่ง
func (r *TableRepository) GetOrCreateByNumber(tx *gorm.DB, tableNumber int) (*entity.Table, error) {
	var t entity.Table
	err := tx.Where("table_number = ?", tableNumber).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t = entity.Table{TableNumber: tableNumber, IsOccupied: true}
		if err := tx.Create(&t).Error; err != nil {
			return nil, err
		}
		return &t, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
