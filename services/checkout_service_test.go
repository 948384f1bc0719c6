package services

import (
	"context"
	"testing"
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/pkg/kv"
	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type checkoutFixture struct {
	db    *gorm.DB
	store kv.Store
	bus   *fakeBroadcaster
	cart  *CartService
	svc   *CheckoutService
	item  *entity.MenuItem
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	db := newTestDB(t)
	store := kv.NewMemoryStore()
	bus := &fakeBroadcaster{}
	item := seedMenuItem(t, db, "Butter Chicken", "100.00")

	return &checkoutFixture{
		db:    db,
		store: store,
		bus:   bus,
		cart:  NewCartService(store, repository.NewMenuRepository(db), bus, time.Hour),
		svc: NewCheckoutService(db, store,
			repository.NewOrderRepository(db),
			repository.NewTableRepository(db),
			bus, 5*time.Minute),
		item: item,
	}
}

func (f *checkoutFixture) syncCart(t *testing.T, userID uint, qty int, version int64) {
	t.Helper()
	require.NoError(t, f.cart.Sync(context.Background(), userID, snapshotFor(f.item, qty, version)))
}

func TestCheckoutService_StartAndStatus(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Start(ctx, 42, &CheckoutIn{
		PaymentMethod:       entity.PaymentCard,
		SpecialInstructions: "no onions",
	}))

	state, err := f.svc.Status(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, entity.PaymentCard, state.PaymentMethod)
	assert.Equal(t, "no onions", state.SpecialInstructions)

	events := f.bus.eventsFor(CartGroup(42))
	require.Len(t, events, 1)
	ev := events[0].Payload.(CheckoutStatusEvent)
	assert.True(t, ev.InProgress)
	assert.Equal(t, entity.PaymentCard, ev.PaymentMethod)
}

func TestCheckoutService_StartWithoutMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	// ยังเลือกวิธีจ่ายไม่เสร็จก็ start ได้
	require.NoError(t, f.svc.Start(ctx, 42, &CheckoutIn{SpecialInstructions: "extra spicy"}))

	state, err := f.svc.Status(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Empty(t, state.PaymentMethod)
}

func TestCheckoutService_StartRejectsUnknownMethod(t *testing.T) {
	f := newCheckoutFixture(t)
	err := f.svc.Start(context.Background(), 42, &CheckoutIn{PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckoutService_CancelReturnsToEditing(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Start(ctx, 42, &CheckoutIn{PaymentMethod: entity.PaymentCash}))
	require.NoError(t, f.svc.Cancel(ctx, 42))

	state, err := f.svc.Status(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, state, "cancel must land back in editing state")

	events := f.bus.eventsFor(CartGroup(42))
	require.Len(t, events, 2)
	assert.False(t, events[1].Payload.(CheckoutStatusEvent).InProgress)
}

func TestCheckoutService_CompleteEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.svc.Complete(context.Background(), 42, &CompleteIn{
		TableNumber:   7,
		PaymentMethod: entity.PaymentCash,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	f.db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count, "empty cart must never create an order")
}

func TestCheckoutService_CompleteHappyPath(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.syncCart(t, 42, 2, 1000)
	require.NoError(t, f.svc.Start(ctx, 42, &CheckoutIn{PaymentMethod: entity.PaymentCash}))

	order, err := f.svc.Complete(ctx, 42, &CompleteIn{
		TableNumber:   7,
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, order.Status)
	assert.False(t, order.PaymentStatus, "cash is settled later")
	assert.True(t, decimal.RequireFromString("200.00").Equal(order.TotalAmount),
		"total must be 2 × captured price 100.00, got %s", order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("100.00").Equal(order.Items[0].PriceAtOrder))

	// โต๊ะ 7 ถูกสร้างและ mark ว่ามีคนนั่ง
	var table entity.Table
	require.NoError(t, f.db.Where("table_number = ?", 7).First(&table).Error)
	assert.True(t, table.IsOccupied)
	require.NotNil(t, order.TableID)
	assert.Equal(t, table.ID, *order.TableID)

	// cart + version + checkout หายเกลี้ยง
	for _, key := range []string{kv.CartKey(42), kv.CartVersionKey(42), kv.CheckoutKey(42)} {
		_, err := f.store.Get(ctx, key)
		assert.ErrorIs(t, err, kv.ErrNotFound, key)
	}

	// user group: cart_update, checkout_status, checkout_complete ตามลำดับ
	userEvents := f.bus.eventsFor(CartGroup(42))
	require.Len(t, userEvents, 3)
	done, ok := userEvents[2].Payload.(CheckoutCompleteEvent)
	require.True(t, ok)
	assert.Equal(t, order.ID, done.OrderID)

	// kitchen group ได้ new_order พร้อมรายการ
	kitchenEvents := f.bus.eventsFor(KitchenGroup)
	require.Len(t, kitchenEvents, 1)
	newOrder, ok := kitchenEvents[0].Payload.(NewOrderEvent)
	require.True(t, ok)
	assert.Equal(t, "new_order", newOrder.Type)
	assert.Equal(t, order.ID, newOrder.Order.ID)
	require.Len(t, newOrder.Order.Items, 1)
	assert.Equal(t, "Butter Chicken", newOrder.Order.Items[0].MenuItemName)
}

func TestCheckoutService_CompletePrepaidMethods(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	for i, method := range []string{entity.PaymentCard, entity.PaymentUPI} {
		userID := uint(100 + i)
		f.syncCart(t, userID, 1, 1000)

		order, err := f.svc.Complete(ctx, userID, &CompleteIn{
			TableNumber:   3 + i,
			PaymentMethod: method,
		})
		require.NoError(t, err)
		assert.True(t, order.PaymentStatus, "%s is paid at order time", method)
	}
}

func TestCheckoutService_CompleteInvalidInput(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.syncCart(t, 42, 1, 1000)

	_, err := f.svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: "credit"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Complete(ctx, 42, &CompleteIn{TableNumber: 0, PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckoutService_CompleteDoubleSubmitGuard(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.syncCart(t, 42, 1, 1000)

	// จำลองอีก device ที่กำลัง complete ค้างอยู่: lock ถูกถือไว้แล้ว
	locked, err := f.store.SetNX(ctx, kv.CheckoutLockKey(42), "1", time.Minute)
	require.NoError(t, err)
	require.True(t, locked)

	_, err = f.svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCard})
	assert.ErrorIs(t, err, ErrCheckoutConflict)

	var count int64
	f.db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCheckoutService_CompleteTwiceNeedsNewCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.syncCart(t, 42, 1, 1000)

	_, err := f.svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCard})
	require.NoError(t, err)

	// ตะกร้าถูกล้างไปแล้ว ยิงซ้ำต้องเจอ EmptyCart ไม่ใช่ออเดอร์ใบที่สอง
	_, err = f.svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCard})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	f.db.Model(&entity.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// ctxStore เช็ค ctx ก่อนทุก operation แบบเดียวกับ redis client จริง
// afterGet ไว้ยิง cancel กลางทางจากในเทส
type ctxStore struct {
	inner    kv.Store
	afterGet func(key string)
}

func (s *ctxStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inner.Set(ctx, key, value, ttl)
}

func (s *ctxStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := s.inner.Get(ctx, key)
	if err == nil && s.afterGet != nil {
		s.afterGet(key)
	}
	return v, err
}

func (s *ctxStore) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inner.Delete(ctx, keys...)
}

func (s *ctxStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.inner.SetNX(ctx, key, value, ttl)
}

func TestCheckoutService_DisconnectAfterCommitStillClearsCart(t *testing.T) {
	db := newTestDB(t)
	inner := kv.NewMemoryStore()
	bus := &fakeBroadcaster{}
	item := seedMenuItem(t, db, "Butter Chicken", "100.00")
	cart := NewCartService(inner, repository.NewMenuRepository(db), bus, time.Hour)

	// มือถือตัด connection ทันทีที่อ่านตะกร้าเสร็จ (ก่อน commit + cleanup)
	ctx, cancel := context.WithCancel(context.Background())
	store := &ctxStore{inner: inner, afterGet: func(key string) {
		if key == kv.CartKey(42) {
			cancel()
		}
	}}
	svc := NewCheckoutService(db, store,
		repository.NewOrderRepository(db),
		repository.NewTableRepository(db),
		bus, 5*time.Minute)

	require.NoError(t, cart.Sync(context.Background(), 42, snapshotFor(item, 2, 1000)))

	_, err := svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCard})
	require.NoError(t, err)

	// key ทุกตัวรวมถึง lock ต้องหายแม้ request ctx ถูก cancel ไปแล้ว
	for _, key := range []string{
		kv.CartKey(42), kv.CartVersionKey(42), kv.CheckoutKey(42), kv.CheckoutLockKey(42),
	} {
		_, err := inner.Get(context.Background(), key)
		assert.ErrorIs(t, err, kv.ErrNotFound, key)
	}

	// retry จาก client ต้องเจอตะกร้าว่าง ไม่ใช่ออเดอร์ใบที่สอง
	_, err = svc.Complete(context.Background(), 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCard})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&entity.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCheckoutService_StoreDown(t *testing.T) {
	db := newTestDB(t)
	bus := &fakeBroadcaster{}
	svc := NewCheckoutService(db, downStore{},
		repository.NewOrderRepository(db),
		repository.NewTableRepository(db),
		bus, 5*time.Minute)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"start", func() error {
			return svc.Start(ctx, 42, &CheckoutIn{PaymentMethod: entity.PaymentCash})
		}},
		{"status", func() error {
			_, err := svc.Status(ctx, 42)
			return err
		}},
		{"cancel", func() error {
			return svc.Cancel(ctx, 42)
		}},
		{"complete", func() error {
			_, err := svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCash})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), ErrStoreUnavailable)
		})
	}

	// store ล่มต้องไม่มี order หลุดมาและไม่มี broadcast สักตัว
	var count int64
	db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, bus.eventsFor(CartGroup(42)))
}

func TestCheckoutService_CompleteReusesExistingTable(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	existing := entity.Table{TableNumber: 7, IsOccupied: false}
	require.NoError(t, f.db.Create(&existing).Error)

	f.syncCart(t, 42, 1, 1000)
	order, err := f.svc.Complete(ctx, 42, &CompleteIn{TableNumber: 7, PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)

	require.NotNil(t, order.TableID)
	assert.Equal(t, existing.ID, *order.TableID)

	var count int64
	f.db.Model(&entity.Table{}).Where("table_number = ?", 7).Count(&count)
	assert.Equal(t, int64(1), count, "must not duplicate the table")
}
