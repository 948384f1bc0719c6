package services

import (
	"errors"
	"fmt"

	"github.com/ar363/restaurant-live-ordering/entity"
	"gorm.io/gorm"
)

// UpdateStatus เดิน state machine ของออเดอร์
// staff เปลี่ยนได้ทุก transition ที่ valid, ลูกค้า cancel ของตัวเองได้อย่างเดียว
// กติกาพิเศษ: staff เปลี่ยนเป็น delivered แล้ว order ไม่ใช่เงินสด
// → เด้งต่อเป็น completed ใน update เดียว (จ่ายไปแล้วตั้งแต่สั่ง)
func (s *OrderService) UpdateStatus(actorID uint, role string, orderID uint, newStatus string) (*OrderView, error) {
	if !entity.IsValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	staff := entity.IsStaffRole(role)
	if !staff {
		// ลูกค้า: ยกเลิกออเดอร์ตัวเองที่ยังไม่จบเท่านั้น
		if o.UserID != actorID || newStatus != entity.StatusCancelled {
			return nil, ErrForbidden
		}
	}
	if !entity.CanTransition(o.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, o.Status, newStatus)
	}

	finalStatus := newStatus
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, newStatus)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: order changed concurrently", ErrInvalidTransition)
		}

		if staff && newStatus == entity.StatusDelivered && entity.IsPrepaid(o.PaymentMethod) {
			affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, entity.StatusDelivered, entity.StatusCompleted)
			if err != nil {
				return err
			}
			if affected > 0 {
				finalStatus = entity.StatusCompleted
			}
		}

		// เงินสดถือว่าเก็บเงินตอนปิดออเดอร์
		if finalStatus == entity.StatusCompleted && !o.PaymentStatus {
			return s.Repo.SetPaymentSettled(tx, o.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	full, err := s.Repo.GetOrderWithItems(o.ID)
	if err != nil {
		return nil, err
	}
	view := NewOrderView(full)
	s.Bus.Publish(KitchenGroup, OrderUpdateEvent{Type: "order_update", Order: view})
	return &view, nil
}
