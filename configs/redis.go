package configs

import (
	"log"

	"github.com/ar363/restaurant-live-ordering/pkg/kv"
)

// ConnectKV เลือก ephemeral store ตาม config:
// มี REDIS_ADDR → redis, ไม่มี → in-memory (dev/test เท่านั้น)
func ConnectKV(cfg *Config) kv.Store {
	if cfg.RedisAddr == "" {
		log.Println("⚠️ REDIS_ADDR not set, using in-memory cart store")
		return kv.NewMemoryStore()
	}

	store, err := kv.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}
	return store
}
