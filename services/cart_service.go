package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/pkg/kv"
	"github.com/ar363/restaurant-live-ordering/repository"
)

// CartService sync ตะกร้าข้ามอุปกรณ์ของ user คนเดียวกัน
// เก็บ full snapshot ใน ephemeral store แล้ว fan-out ให้ทุกเครื่องที่ต่ออยู่
type CartService struct {
	Store    kv.Store
	MenuRepo *repository.MenuRepository
	Bus      Broadcaster
	TTL      time.Duration
}

func NewCartService(store kv.Store, menuRepo *repository.MenuRepository, bus Broadcaster, ttl time.Duration) *CartService {
	return &CartService{Store: store, MenuRepo: menuRepo, Bus: bus, TTL: ttl}
}

// Sync รับ snapshot ทั้งใบแล้ว replace ของเดิม (last write wins)
// ทุกเครื่องรวมถึงเครื่องที่เขียนเองจะได้ cart_update กลับไป
func (s *CartService) Sync(ctx context.Context, userID uint, snap *entity.CartSnapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}

	ids := make([]uint, 0, len(snap.Items))
	seen := make(map[uint]bool, len(snap.Items))
	for _, it := range snap.Items {
		if !seen[it.MenuItemID] {
			seen[it.MenuItemID] = true
			ids = append(ids, it.MenuItemID)
		}
	}
	if len(ids) > 0 {
		count, err := s.MenuRepo.CountExisting(ids)
		if err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return fmt.Errorf("%w: unknown menu item in cart", ErrValidation)
		}
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := s.Store.Set(ctx, kv.CartKey(userID), string(raw), s.TTL); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := s.Store.Set(ctx, kv.CartVersionKey(userID), strconv.FormatInt(snap.LastUpdated, 10), s.TTL); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.Bus.Publish(CartGroup(userID), NewCartUpdateEvent(snap))
	return nil
}

// Get อ่าน snapshot ปัจจุบัน — ถ้า knownVersion ตรงกับที่เก็บไว้จะคืน nil
// (long-poll "no change" ไม่ต้องส่ง payload ซ้ำ)
func (s *CartService) Get(ctx context.Context, userID uint, knownVersion int64) (*entity.CartSnapshot, error) {
	if knownVersion != 0 {
		vstr, err := s.Store.Get(ctx, kv.CartVersionKey(userID))
		if err == nil {
			if v, perr := strconv.ParseInt(vstr, 10, 64); perr == nil && v == knownVersion {
				return nil, nil
			}
		} else if !errors.Is(err, kv.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	raw, err := s.Store.Get(ctx, kv.CartKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil // ไม่มีตะกร้า = absent ไม่ใช่ error
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var snap entity.CartSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func validateSnapshot(snap *entity.CartSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: missing cart payload", ErrValidation)
	}
	for _, it := range snap.Items {
		if it.MenuItemID == 0 {
			return fmt.Errorf("%w: missing menu item id", ErrValidation)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		if it.Price.IsNegative() {
			return fmt.Errorf("%w: negative price", ErrValidation)
		}
	}
	return nil
}
