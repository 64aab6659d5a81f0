package cache

import "testing"

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	c.Add("b", 2)

	if _, ok := c.Get("a"); !ok { // a becomes MRU
		t.Fatalf("expected a to be cached")
	}
	if evicted := c.Add("c", 3); !evicted {
		t.Fatalf("expected an eviction at capacity")
	}
	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Fatalf("c = %d, %v; want 3, true", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
}

func TestLRU_ReplaceKeepsSize(t *testing.T) {
	c := New[string, int](2)
	c.Add("a", 1)
	if evicted := c.Add("a", 2); evicted {
		t.Fatalf("replace must not evict")
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Fatalf("a = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d, want 1", c.Len())
	}
}

func TestLRU_Purge(t *testing.T) {
	c := New[int, string](4)
	c.Add(1, "x")
	c.Add(2, "y")
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("len = %d after purge", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Fatalf("entry survived purge")
	}
	c.Add(3, "z")
	if v, ok := c.Get(3); !ok || v != "z" {
		t.Fatalf("cache unusable after purge")
	}
}

func TestNew_PanicsOnNegativeCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New[string, int](-1)
}

func TestZeroCapacityIsUnbounded(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 5000; i++ {
		if c.Add(i, i) {
			t.Fatalf("evicted at %d", i)
		}
	}
	if c.Len() != 5000 {
		t.Fatalf("Len = %d", c.Len())
	}
	if v, ok := c.Get(0); !ok || v != 0 {
		t.Fatalf("oldest entry lost")
	}
}
