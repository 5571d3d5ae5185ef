package ristretto

import (
	"context"
	"testing"
	"time"
)

func TestSetVisibleToNextGet(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{MaxEntries: 64, TTL: time.Minute, Metrics: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close(ctx) })

	c.Set("rate_limit", 10.0)
	if v, ok := c.Get("rate_limit"); !ok || v != 10.0 {
		t.Fatalf("got %v ok=%v", v, ok)
	}
	if c.Metrics() == nil {
		t.Fatalf("metrics requested but nil")
	}
}

func TestEntryExpires(t *testing.T) {
	ctx := context.Background()
	c, err := New(Config{MaxEntries: 8, TTL: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close(ctx) })

	c.Set("k", "v")
	time.Sleep(120 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("entry outlived its TTL")
	}
}

func TestInvalidConfig(t *testing.T) {
	for _, cfg := range []Config{{}, {MaxEntries: 1}, {TTL: time.Second}} {
		if _, err := New(cfg); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestCloseTwice(t *testing.T) {
	c, err := New(Config{MaxEntries: 1, TTL: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	_ = c.Close(context.Background())
	if err := c.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
}
