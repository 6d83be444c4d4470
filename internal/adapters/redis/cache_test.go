package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotelia/internal/adapters/redis"
)

func newCache(t *testing.T) *redisad.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := newCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string
		Count int
	}

	ok, err := c.Get(ctx, "k", &payload{})
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "k", payload{Name: "seaside", Count: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got payload
	ok, err = c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Name != "seaside" || got.Count != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "k", &got)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 30*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var got string
	ok, err := c.Get(ctx, "k", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected expiry after TTL")
	}
}
