package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[int](10, time.Minute)
	if _, ok := c.Get("missing"); ok {
		t.Fatal("Get on empty cache reported a hit")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("overwrite failed, got %d", v)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestCapacityEvictsLRU(t *testing.T) {
	c := New[int](3, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// touch "a" so "b" becomes the oldest
	c.Get("a")

	c.Set("d", 4)
	if _, ok := c.Get("b"); ok {
		t.Error("least-recently-used entry survived eviction")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("entry %q evicted unexpectedly", k)
		}
	}
}

func TestTTLExpiryIsLazy(t *testing.T) {
	c := New[int](10, 20*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(40 * time.Millisecond)

	// still resident until something looks at it
	if c.Len() != 1 {
		t.Fatalf("Len = %d before access, want 1", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry returned from Get")
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d after expired Get, want 0", c.Len())
	}
}

func TestGetRefreshesTTL(t *testing.T) {
	c := New[int](10, 50*time.Millisecond)
	c.Set("a", 1)
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		if _, ok := c.Get("a"); !ok {
			t.Fatalf("entry expired despite access on iteration %d", i)
		}
	}
}

func TestCleanExpired(t *testing.T) {
	c := New[int](10, 20*time.Millisecond)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	time.Sleep(40 * time.Millisecond)
	c.Set("fresh", 99)

	if n := c.CleanExpired(); n != 5 {
		t.Errorf("CleanExpired removed %d, want 5", n)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry removed by cleanup")
	}
}

func TestDelete(t *testing.T) {
	c := New[int](10, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a") // deleting twice is fine
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	c := New[int](10, time.Minute)
	c.StartCleanup(time.Millisecond)
	c.Stop()
	c.Stop()
}
