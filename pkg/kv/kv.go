package kv

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound = key ไม่มีหรือหมดอายุไปแล้ว
var ErrNotFound = errors.New("kv: key not found")

// Store คือ contract ของ ephemeral store (redis จริง หรือ in-memory ตอนเทส)
// Delete รับหลาย key เพื่อให้ลบ cart+checkout พร้อมกันตอน commit
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	// SetNX คืน true ถ้า key ถูกตั้งใหม่ (ใช้เป็น short-lived lock)
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Key helpers — namespace ตามชนิดข้อมูล + user id
func CartKey(userID uint) string         { return fmt.Sprintf("cart:%d", userID) }
func CartVersionKey(userID uint) string  { return fmt.Sprintf("cart:%d:last_updated", userID) }
func CheckoutKey(userID uint) string     { return fmt.Sprintf("checkout:%d", userID) }
func CheckoutLockKey(userID uint) string { return fmt.Sprintf("checkout:%d:lock", userID) }
