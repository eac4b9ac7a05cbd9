package nexus

import (
	"testing"
	"time"
)

func TestCacheHitAndExpiry(t *testing.T) {
	now := time.Now()
	c := newResponseCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Put("key", []byte("value"))

	if data, ok := c.Get("key"); !ok || string(data) != "value" {
		t.Errorf("Get() = %q, %t; want value, true", data, ok)
	}

	// Advance past the TTL.
	now = now.Add(time.Minute)
	if _, ok := c.Get("key"); ok {
		t.Error("Get() hit after TTL, want miss")
	}
}

func TestCacheDisabled(t *testing.T) {
	c := newResponseCache(0)
	c.Put("key", []byte("value"))
	if _, ok := c.Get("key"); ok {
		t.Error("zero-TTL cache returned a hit")
	}
}

func TestCacheMiss(t *testing.T) {
	c := newResponseCache(time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("Get() on empty cache returned a hit")
	}
}

func TestCachePutPrunesExpired(t *testing.T) {
	now := time.Now()
	c := newResponseCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Put("old", []byte("1"))
	now = now.Add(2 * time.Minute)
	c.Put("new", []byte("2"))

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after pruning", c.Len())
	}
}
