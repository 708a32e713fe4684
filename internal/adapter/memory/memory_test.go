package memory

import (
	"context"
	"testing"
)

func TestKVStore(t *testing.T) {
	db := New()
	ctx := context.Background()

	// Absent key
	_, ok, err := db.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected missing key to be absent")
	}

	// Set and get
	if err := db.Set(ctx, "a", `{"x":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := db.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || v != `{"x":1}` {
		t.Errorf("expected stored value, got %q (ok=%v)", v, ok)
	}

	// Overwrite
	_ = db.Set(ctx, "a", "2")
	v, _, _ = db.Get(ctx, "a")
	if v != "2" {
		t.Errorf("expected overwritten value, got %q", v)
	}
	if db.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", db.Writes())
	}

	// Delete
	_ = db.Set(ctx, "b", "3")
	if err := db.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := db.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	keys := db.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("expected [b], got %v", keys)
	}
}
