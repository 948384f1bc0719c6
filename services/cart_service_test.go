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
)

func newCartService(t *testing.T) (*CartService, *fakeBroadcaster, *entity.MenuItem) {
	t.Helper()
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Butter Chicken", "100.00")
	bus := &fakeBroadcaster{}
	svc := NewCartService(kv.NewMemoryStore(), repository.NewMenuRepository(db), bus, time.Hour)
	return svc, bus, item
}

func snapshotFor(item *entity.MenuItem, qty int, version int64) *entity.CartSnapshot {
	return &entity.CartSnapshot{
		Items: []entity.CartLine{{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   qty,
		}},
		LastUpdated: version,
	}
}

func TestCartService_SyncAndGet(t *testing.T) {
	svc, bus, item := newCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Sync(ctx, 42, snapshotFor(item, 2, 1000)))

	t.Run("known version suppresses payload", func(t *testing.T) {
		snap, err := svc.Get(ctx, 42, 1000)
		require.NoError(t, err)
		assert.Nil(t, snap, "matching version must return no-change")
	})

	t.Run("stale version returns full snapshot", func(t *testing.T) {
		snap, err := svc.Get(ctx, 42, 999)
		require.NoError(t, err)
		require.NotNil(t, snap)
		assert.Equal(t, int64(1000), snap.LastUpdated)
		require.Len(t, snap.Items, 1)
		assert.Equal(t, item.ID, snap.Items[0].MenuItemID)
		assert.Equal(t, 2, snap.Items[0].Quantity)
		assert.True(t, decimal.RequireFromString("100.00").Equal(snap.Items[0].Price))
	})

	t.Run("no version returns full snapshot", func(t *testing.T) {
		snap, err := svc.Get(ctx, 42, 0)
		require.NoError(t, err)
		require.NotNil(t, snap)
	})

	t.Run("sync publishes cart_update to the user group", func(t *testing.T) {
		events := bus.eventsFor(CartGroup(42))
		require.NotEmpty(t, events)
		ev, ok := events[0].Payload.(CartUpdateEvent)
		require.True(t, ok)
		assert.Equal(t, "cart_update", ev.Type)
		assert.Equal(t, int64(1000), ev.Data.LastUpdated)
	})
}

func TestCartService_LastWriteWins(t *testing.T) {
	svc, bus, item := newCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Sync(ctx, 42, snapshotFor(item, 1, 100)))
	require.NoError(t, svc.Sync(ctx, 42, snapshotFor(item, 3, 101)))

	snap, err := svc.Get(ctx, 42, 0)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(101), snap.LastUpdated)
	assert.Equal(t, 3, snap.Items[0].Quantity)

	// ทั้งสอง broadcast ต้องออกตามลำดับที่เขียน
	events := bus.eventsFor(CartGroup(42))
	require.Len(t, events, 2)
	assert.Equal(t, int64(100), events[0].Payload.(CartUpdateEvent).Data.LastUpdated)
	assert.Equal(t, int64(101), events[1].Payload.(CartUpdateEvent).Data.LastUpdated)
}

func TestCartService_SyncValidation(t *testing.T) {
	svc, bus, item := newCartService(t)
	ctx := context.Background()

	t.Run("zero quantity rejected", func(t *testing.T) {
		err := svc.Sync(ctx, 42, snapshotFor(item, 0, 1000))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown menu item rejected", func(t *testing.T) {
		snap := snapshotFor(item, 1, 1000)
		snap.Items[0].MenuItemID = 9999
		err := svc.Sync(ctx, 42, snap)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejected sync publishes nothing", func(t *testing.T) {
		assert.Empty(t, bus.eventsFor(CartGroup(42)))
	})
}

func TestCartService_StoreDownIsSoftFailure(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Paneer Tikka", "180.00")
	svc := NewCartService(downStore{}, repository.NewMenuRepository(db), &fakeBroadcaster{}, time.Hour)
	ctx := context.Background()

	err := svc.Sync(ctx, 42, snapshotFor(item, 1, 1000))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = svc.Get(ctx, 42, 0)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestCartService_GetMissingCart(t *testing.T) {
	svc, _, _ := newCartService(t)

	snap, err := svc.Get(context.Background(), 77, 0)
	require.NoError(t, err)
	assert.Nil(t, snap, "absent cart is not an error")
}
