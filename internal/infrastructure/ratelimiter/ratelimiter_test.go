package ratelimiter

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

type cacheStub struct {
	values map[string]int
	getErr error
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: make(map[string]int)}
}

func (c *cacheStub) Get(key string) (int, error) {
	if c.getErr != nil {
		return 0, c.getErr
	}
	v, ok := c.values[key]
	if !ok {
		return 0, ErrCacheMiss
	}
	return v, nil
}

func (c *cacheStub) Set(key string, value int) error {
	return c.SetWithExpiration(key, value, 0)
}

func (c *cacheStub) SetWithExpiration(key string, value int, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *cacheStub) Close() error { return nil }

func TestAllowExhaustsBurst(t *testing.T) {
	// A zero rate never refills, so the outcome is deterministic.
	rl := New(Options{MaxRatePerSecond: 0, MaxBurst: 3, Cache: newCacheStub()})

	for i := 0; i < 3; i++ {
		if !rl.Allow("client-1") {
			t.Fatalf("request %d should fit in the burst", i+1)
		}
	}
	if rl.Allow("client-1") {
		t.Fatal("the bucket should be empty after the burst")
	}
	if !rl.Allow("client-2") {
		t.Fatal("a fresh source key gets its own bucket")
	}
}

func TestAllowRefillsFromElapsedTime(t *testing.T) {
	cache := newCacheStub()
	rl := New(Options{MaxRatePerSecond: 1000, MaxBurst: 5, Cache: cache})

	// An empty bucket last filled 100ms ago has earned tokens again at
	// 1 token/ms.
	cache.values[bucketKeyPrefix+"client-1"] = 0
	cache.values[lastFillKeyPrefix+"client-1"] = int(time.Now().UnixMilli() - 100)

	if !rl.Allow("client-1") {
		t.Fatal("elapsed time should have refilled the bucket")
	}
}

func TestRefillAccruesAtTheConfiguredRate(t *testing.T) {
	cache := newCacheStub()
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 5, Cache: cache})

	// At 1 token/s, 100ms is not enough for a whole token.
	cache.values[bucketKeyPrefix+"client-1"] = 0
	cache.values[lastFillKeyPrefix+"client-1"] = int(time.Now().UnixMilli() - 100)

	if rl.Allow("client-1") {
		t.Fatal("100ms at 1 token/s must not yield a token")
	}
}

func TestAllowEmptyBucketWithNoElapsedTime(t *testing.T) {
	cache := newCacheStub()
	rl := New(Options{MaxRatePerSecond: 1000, MaxBurst: 5, Cache: cache})

	// A fill stamp in the future means no refill is due.
	cache.values[bucketKeyPrefix+"client-1"] = 0
	cache.values[lastFillKeyPrefix+"client-1"] = int(time.Now().UnixMilli() + time.Minute.Milliseconds())

	if rl.Allow("client-1") {
		t.Fatal("an empty bucket with no elapsed time must deny")
	}
}

func TestAllowFailsOpenOnCacheError(t *testing.T) {
	cache := newCacheStub()
	cache.getErr = errors.New("cache down")
	rl := New(Options{MaxRatePerSecond: 1, MaxBurst: 1, Cache: cache})

	if !rl.Allow("client-1") {
		t.Fatal("a broken cache must fail open, not lock everyone out")
	}
}

func TestGetSourceKeyPrefersHeader(t *testing.T) {
	rl := New(Options{MaxRatePerSecond: 1, Cache: newCacheStub()})

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := rl.GetSourceKey(r); got != "10.0.0.1:1234" {
		t.Fatalf("expected the remote address fallback, got %q", got)
	}

	r.Header.Set(defaultSourceKey, "api-key-1")
	if got := rl.GetSourceKey(r); got != "api-key-1" {
		t.Fatalf("expected the header key, got %q", got)
	}
}
