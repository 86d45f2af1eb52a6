package cache

import (
	"testing"
	"time"
)

func TestGetReturnsStoredValueBeforeExpiry(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("paris", 42)

	v, ok := c.Get("paris")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if v.(int) != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}

func TestGetMissesAfterExpiry(t *testing.T) {
	c := New(5 * time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("paris", 42)

	c.now = func() time.Time { return base.Add(6 * time.Minute) }
	if _, ok := c.Get("paris"); ok {
		t.Fatal("expected cache miss after TTL elapsed")
	}
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New(0)
	c.Set("paris", 42)
	if _, ok := c.Get("paris"); ok {
		t.Fatal("expected zero-TTL cache to always miss")
	}
}

func TestSweepDropsOnlyExpiredEntries(t *testing.T) {
	c := New(5 * time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("old", 1)

	c.now = func() time.Time { return base.Add(4 * time.Minute) }
	c.Set("fresh", 2)

	c.now = func() time.Time { return base.Add(6 * time.Minute) }
	c.Sweep()

	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after sweep, got %d", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Fatal("expected fresh entry to survive sweep")
	}
}
