package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "plan:abc")
	if err != nil || hit {
		t.Fatalf("Get before Set: hit=%v err=%v, want miss", hit, err)
	}

	// Round trip
	if err := c.Set(ctx, "plan:abc", []byte("svg bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "plan:abc")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "svg bytes" {
		t.Errorf("Get = %q, want %q", data, "svg bytes")
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "plan:ttl", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set with TTL: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "plan:ttl"); hit {
		t.Error("expired entry should be a miss")
	}

	// Delete
	if err := c.Delete(ctx, "plan:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "plan:abc"); hit {
		t.Error("deleted entry should be a miss")
	}
	if err := c.Delete(ctx, "plan:missing"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	opts := PlanKeyOpts{NInput: 3, NHidden: 2, NOutput: 1, DiameterMM: 400}
	if k.PlanKey(opts) != k.PlanKey(opts) {
		t.Error("PlanKey should be deterministic")
	}

	other := opts
	other.DiameterMM = 500
	if k.PlanKey(opts) == k.PlanKey(other) {
		t.Error("different options should produce different keys")
	}

	a1 := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg"})
	a2 := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png"})
	if a1 == a2 {
		t.Error("different formats should produce different artifact keys")
	}
	if k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg"}) != a1 {
		t.Error("ArtifactKey should be deterministic")
	}
}
