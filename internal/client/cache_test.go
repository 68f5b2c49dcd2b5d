package client

import "testing"

func TestCacheGetSetDrop(t *testing.T) {
	c := NewCache()
	k := Key{Entity: "user", Op: OpDetail, Params: "abc"}

	if _, ok := c.Get(k); ok {
		t.Fatal("empty cache should miss")
	}
	c.Set(k, []byte(`{"id":"abc"}`))
	if data, ok := c.Get(k); !ok || string(data) != `{"id":"abc"}` {
		t.Fatalf("got %q, %v", data, ok)
	}
	c.Drop(k)
	if _, ok := c.Get(k); ok {
		t.Fatal("dropped key should miss")
	}
}

func TestCacheDropOp(t *testing.T) {
	c := NewCache()
	c.Set(Key{"user", OpList, "page=1"}, []byte("a"))
	c.Set(Key{"user", OpList, "page=2"}, []byte("b"))
	c.Set(Key{"user", OpDetail, "abc"}, []byte("c"))
	c.Set(Key{"role", OpList, "page=1"}, []byte("d"))

	c.DropOp("user", OpList)

	if c.Len() != 2 {
		t.Errorf("len: got %d, want 2", c.Len())
	}
	if _, ok := c.Get(Key{"user", OpDetail, "abc"}); !ok {
		t.Error("user detail should survive a list drop")
	}
	if _, ok := c.Get(Key{"role", OpList, "page=1"}); !ok {
		t.Error("other entities should survive")
	}
}

func TestCacheDropOwned(t *testing.T) {
	c := NewCache()
	c.Set(Key{"stage", OpStats, "s1"}, []byte("a"))
	c.Set(Key{"stage", OpStats, "s2"}, []byte("b"))
	c.Set(Key{"party", OpTransactions, subParams("p1", "page=1")}, []byte("c"))
	c.Set(Key{"party", OpTransactions, subParams("p1", "page=2")}, []byte("d"))
	c.Set(Key{"party", OpTransactions, subParams("p2", "page=1")}, []byte("e"))

	c.DropOwned("stage", OpStats, "s1")
	if _, ok := c.Get(Key{"stage", OpStats, "s1"}); ok {
		t.Error("s1 stats should be gone")
	}
	if _, ok := c.Get(Key{"stage", OpStats, "s2"}); !ok {
		t.Error("s2 stats should survive")
	}

	c.DropOwned("party", OpTransactions, "p1")
	if _, ok := c.Get(Key{"party", OpTransactions, subParams("p1", "page=1")}); ok {
		t.Error("p1 page 1 should be gone")
	}
	if _, ok := c.Get(Key{"party", OpTransactions, subParams("p1", "page=2")}); ok {
		t.Error("p1 page 2 should be gone")
	}
	if _, ok := c.Get(Key{"party", OpTransactions, subParams("p2", "page=1")}); !ok {
		t.Error("p2 should survive")
	}
}
