package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/pkg/kv"
	"github.com/ar363/restaurant-live-ordering/repository"
	"gorm.io/gorm"
)

// CheckoutService คุมช่วงเปลี่ยนผ่าน "แก้ตะกร้าอยู่" → "กำลังจ่าย" → "เป็นออเดอร์แล้ว"
// สถานะ checkout อยู่ใน ephemeral store (มี key = กำลัง checkout) หมดอายุเอง 5 นาที
type CheckoutService struct {
	DB        *gorm.DB
	Store     kv.Store
	OrderRepo *repository.OrderRepository
	TableRepo *repository.TableRepository
	Bus       Broadcaster
	TTL       time.Duration
	LockTTL   time.Duration
}

func NewCheckoutService(
	db *gorm.DB,
	store kv.Store,
	orderRepo *repository.OrderRepository,
	tableRepo *repository.TableRepository,
	bus Broadcaster,
	ttl time.Duration,
) *CheckoutService {
	return &CheckoutService{
		DB:        db,
		Store:     store,
		OrderRepo: orderRepo,
		TableRepo: tableRepo,
		Bus:       bus,
		TTL:       ttl,
		LockTTL:   10 * time.Second,
	}
}

type CheckoutIn struct {
	PaymentMethod       string `json:"payment_method"`
	SpecialInstructions string `json:"special_instructions"`
}

// Start เขียนสถานะ checkout ทั้งก้อน (เรียกซ้ำ = refresh TTL + ทับค่าเดิม)
// Update ใช้ตัวเดียวกัน — เรียก update โดยไม่เคย start ก็ valid
func (s *CheckoutService) Start(ctx context.Context, userID uint, in *CheckoutIn) error {
	if in.PaymentMethod != "" && !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}

	state := entity.CheckoutState{
		PaymentMethod:       in.PaymentMethod,
		SpecialInstructions: in.SpecialInstructions,
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := s.Store.Set(ctx, kv.CheckoutKey(userID), string(raw), s.TTL); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.Bus.Publish(CartGroup(userID), NewCheckoutStatusEvent(&state))
	return nil
}

// Status คืน nil = ไม่ได้ checkout อยู่ (key หาย/หมดอายุ)
func (s *CheckoutService) Status(ctx context.Context, userID uint) (*entity.CheckoutState, error) {
	raw, err := s.Store.Get(ctx, kv.CheckoutKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var state entity.CheckoutState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Cancel กลับไปสถานะแก้ตะกร้า ตะกร้าไม่หาย
func (s *CheckoutService) Cancel(ctx context.Context, userID uint) error {
	if err := s.Store.Delete(ctx, kv.CheckoutKey(userID)); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.Bus.Publish(CartGroup(userID), NewCheckoutStatusEvent(nil))
	return nil
}

type CompleteIn struct {
	TableNumber         int    `json:"table_number"`
	PaymentMethod       string `json:"payment_method"`
	SpecialInstructions string `json:"special_instructions"`
}

// Complete = order commit engine:
// อ่านตะกร้า → หา/สร้างโต๊ะ → คิดเงินจาก captured price → เขียน order+items
// ใน transaction เดียว → ล้าง cart/checkout keys → broadcast
// กันกดซ้ำด้วย per-user lock (SETNX) — คนแพ้ได้ ErrCheckoutConflict
func (s *CheckoutService) Complete(ctx context.Context, userID uint, in *CompleteIn) (*entity.Order, error) {
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}
	if in.TableNumber <= 0 {
		return nil, fmt.Errorf("%w: table number must be positive", ErrValidation)
	}

	lockKey := kv.CheckoutLockKey(userID)
	locked, err := s.Store.SetNX(ctx, lockKey, "1", s.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !locked {
		return nil, ErrCheckoutConflict
	}
	// cleanup ใช้ ctx ที่ตัด cancel ทิ้ง — client หลุดหลัง commit
	// ต้องไม่ทำให้ lock/key ค้างจนกดซ้ำแล้วได้ออเดอร์ใบที่สอง
	cleanupCtx := context.WithoutCancel(ctx)
	defer func() {
		if err := s.Store.Delete(cleanupCtx, lockKey); err != nil {
			log.Printf("release checkout lock for user %d failed: %v", userID, err)
		}
	}()

	raw, err := s.Store.Get(ctx, kv.CartKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var snap entity.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		table, err := s.TableRepo.GetOrCreateByNumber(tx, in.TableNumber)
		if err != nil {
			return err
		}

		order = entity.Order{
			UserID:              userID,
			TableID:             &table.ID,
			Status:              entity.StatusPending,
			PaymentMethod:       in.PaymentMethod,
			PaymentStatus:       entity.IsPrepaid(in.PaymentMethod),
			TotalAmount:         snap.Total(), // จากราคาในตะกร้า ไม่ lookup เมนูใหม่
			SpecialInstructions: in.SpecialInstructions,
		}
		for _, line := range snap.Items {
			order.Items = append(order.Items, entity.OrderItem{
				MenuItemID:          line.MenuItemID,
				Quantity:            line.Quantity,
				PriceAtOrder:        line.Price,
				SpecialInstructions: line.SpecialInstructions,
			})
		}
		return s.OrderRepo.CreateOrder(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	// order เขียนลง DB แล้ว — การล้าง key เป็น best-effort
	// (ลบสามตัวใน DEL เดียว ตะกร้ากับ checkout จะหายพร้อมกัน)
	if err := s.Store.Delete(cleanupCtx,
		kv.CartKey(userID), kv.CartVersionKey(userID), kv.CheckoutKey(userID)); err != nil {
		log.Printf("clear cart keys for user %d failed: %v", userID, err)
	}

	s.Bus.Publish(CartGroup(userID), CheckoutCompleteEvent{Type: "checkout_complete", OrderID: order.ID})

	full, err := s.OrderRepo.GetOrderWithItems(order.ID)
	if err != nil {
		full = &order
	}
	s.Bus.Publish(KitchenGroup, NewOrderEvent{Type: "new_order", Order: NewOrderView(full)})

	return full, nil
}
