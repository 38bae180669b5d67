package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok {
		t.Fatalf("expected a hit right after Set")
	}
	if got != "v" {
		t.Fatalf("expected %q, got %v", "v", got)
	}
}

func TestExpiredEntryIsAMiss(t *testing.T) {
	c := New(time.Minute, time.Minute)

	c.SetTTL("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected a miss after ttl elapsed")
	}

	// The read itself must have evicted the entry.
	if n := c.Len(); n != 0 {
		t.Fatalf("expected 0 entries after lazy eviction, got %d", n)
	}
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	c := New(time.Minute, 20*time.Millisecond)
	c.Start()
	defer c.Stop()

	c.SetTTL("a", 1, 5*time.Millisecond)
	c.SetTTL("b", 2, 5*time.Millisecond)
	c.Set("keep", 3)

	deadline := time.Now().Add(time.Second)
	for c.Len() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("sweep did not evict expired entries, size %d", c.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, ok := c.Get("keep"); !ok {
		t.Fatalf("live entry should survive the sweep")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k-%d", j%10)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if n := c.Len(); n != 10 {
		t.Fatalf("expected 10 entries, got %d", n)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	c := New(time.Minute, time.Millisecond)
	c.Start()
	c.Stop()
	c.Stop()
}
