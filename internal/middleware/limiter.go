package middleware

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	gocache "github.com/patrickmn/go-cache"
)

// RateLimit allows max requests per window per client IP using a sliding
// window. name keeps counters of different limiters apart in a shared
// storage. A max of zero or less disables limiting.
func RateLimit(name string, max int, window time.Duration, storage fiber.Storage) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           storage,
		KeyGenerator:      func(c *fiber.Ctx) string { return name + ":" + c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Error: "Too many requests, please try again later",
			})
		},
	})
}

// MemoryStorage adapts go-cache to fiber.Storage for limiter counters.
type MemoryStorage struct {
	cache *gocache.Cache
}

func NewMemoryStorage(cleanupInterval time.Duration) *MemoryStorage {
	return &MemoryStorage{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Get returns nil without error for missing keys, as fiber.Storage requires.
func (s *MemoryStorage) Get(key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	b, _ := v.([]byte)
	return b, nil
}

func (s *MemoryStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if exp <= 0 {
		exp = gocache.NoExpiration
	}
	buf := make([]byte, len(val))
	copy(buf, val)
	s.cache.Set(key, buf, exp)
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *MemoryStorage) Reset() error {
	s.cache.Flush()
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
