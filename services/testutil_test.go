package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// in-memory sqlite มีชีวิตผูกกับ connection — ห้ามให้ pool เปิดตัวที่สอง
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Table{},
		&entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
	))
	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string) *entity.MenuItem {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	m := entity.MenuItem{Name: name, Price: p, Category: "Main Course", IsAvailable: true}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

// fakeBroadcaster เก็บทุก publish ไว้ให้เทสตรวจลำดับ/เนื้อหา
type fakeBroadcaster struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Group   string
	Payload any
}

func (f *fakeBroadcaster) Publish(group string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{Group: group, Payload: payload})
}

func (f *fakeBroadcaster) eventsFor(group string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.events {
		if e.Group == group {
			out = append(out, e)
		}
	}
	return out
}

// downStore จำลอง redis ล่ม — ทุก operation พัง
type downStore struct{}

var errStoreDown = errors.New("connection refused")

func (downStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errStoreDown
}
func (downStore) Get(ctx context.Context, key string) (string, error) { return "", errStoreDown }
func (downStore) Delete(ctx context.Context, keys ...string) error    { return errStoreDown }
func (downStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return false, errStoreDown
}
