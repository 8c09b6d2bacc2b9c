package cache

import (
	"testing"
	"time"
)

func TestPageKey(t *testing.T) {
	a := PageKey("https://example.com/part07")
	b := PageKey("https://example.com/part07")
	c := PageKey("https://example.com/part08")

	if a != b {
		t.Error("same URL must produce the same key")
	}
	if a == c {
		t.Error("different URLs must produce different keys")
	}
	if a[:12] != "lexdrift:v1:" {
		t.Errorf("key missing namespace prefix: %s", a)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("unexpected hit for missing key")
	}

	if err := c.Set("k", []byte("page text"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "page text" {
		t.Errorf("get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("key survived delete")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("page text"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "page text" {
		t.Errorf("get = %q, %v", val, found)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("k", []byte("stale"), time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expired entry still served")
	}
}

func TestLayeredCachePromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	// Seed only the disk layer, as a previous run would have.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("k", []byte("page text"), 0); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	val, found := layered.Get("k")
	if !found || string(val) != "page text" {
		t.Fatalf("disk hit not served: %q, %v", val, found)
	}

	// Now present in memory too.
	if _, found := layered.memory.Get("k"); !found {
		t.Error("disk hit not promoted to memory")
	}
}

func TestForCacheConfig(t *testing.T) {
	if c := ForCacheConfig(false, "", time.Minute); c != nil {
		t.Error("disabled cache must be nil")
	}
	if _, ok := ForCacheConfig(true, "", time.Minute).(*MemoryCache); !ok {
		t.Error("no dir must give a memory cache")
	}
	if _, ok := ForCacheConfig(true, t.TempDir(), time.Minute).(*LayeredCache); !ok {
		t.Error("dir must give a layered cache")
	}
}
