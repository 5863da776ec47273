package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	t.Parallel()

	c := NewMemory()
	c.Set("k", []byte("v"), time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected hit")
	}
	if string(got) != "v" {
		t.Fatalf("value mismatch: got %q", got)
	}
}

func TestGetMiss(t *testing.T) {
	t.Parallel()

	c := NewMemory()
	if _, ok := c.Get("absent"); ok {
		t.Fatalf("expected miss")
	}
}

func TestSetOverwrites(t *testing.T) {
	t.Parallel()

	c := NewMemory()
	c.Set("k", []byte("old"), time.Minute)
	c.Set("k", []byte("new"), time.Minute)

	got, ok := c.Get("k")
	if !ok || string(got) != "new" {
		t.Fatalf("expected overwritten value, got %q ok=%v", got, ok)
	}
}

func TestEntryExpires(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := NewMemoryWithClock(func() time.Time { return now })

	c.Set("k", []byte("v"), 1800*time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	now = now.Add(1801 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after ttl elapsed")
	}
}

func TestSweepRemovesExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := NewMemoryWithClock(func() time.Time { return now })

	c.Set("old", []byte("x"), time.Second)
	c.Set("fresh", []byte("y"), time.Hour)

	now = now.Add(2 * time.Second)
	c.deleteExpired()

	c.mu.Lock()
	_, oldThere := c.entries["old"]
	_, freshThere := c.entries["fresh"]
	c.mu.Unlock()

	if oldThere {
		t.Fatalf("expected expired entry swept")
	}
	if !freshThere {
		t.Fatalf("expected live entry kept")
	}
}
