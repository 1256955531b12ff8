package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/creditline/internal/credit"
)

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("digest", "subject")
	k2 := CacheKey("digest", "subject")
	k3 := CacheKey("digests", "ubject")

	if !strings.HasPrefix(k1, "creditline:v1:") {
		t.Errorf("Expected versioned prefix, got %q", k1)
	}
	if k1 != k2 {
		t.Error("Expected stable keys")
	}
	if k1 == k3 {
		t.Error("Expected part boundaries to affect the key")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, ok := c.Get("k"); !ok || string(val) != "v" {
		t.Fatalf("Expected hit, got %q %v", val, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", c.Len())
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	c.Set("k", []byte("v"), time.Millisecond)

	time.Sleep(10 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)
	key := CacheKey("a")

	if _, ok := c.Get(key); ok {
		t.Fatal("Expected miss on empty cache")
	}
	if err := c.Set(key, []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, ok := c.Get(key); !ok || string(val) != "payload" {
		t.Fatalf("Expected hit, got %q %v", val, ok)
	}

	name := key[strings.LastIndexByte(key, ':')+1:]
	if _, err := os.Stat(filepath.Join(dir, name[:2], name+".json")); err != nil {
		t.Errorf("Expected sharded file: %v", err)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(key); err != nil {
		t.Errorf("Expected deleting a missing key to succeed, got %v", err)
	}
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := CacheKey("b")

	c.Set(key, []byte("old"), -time.Second)
	if _, ok := c.Get(key); ok {
		t.Error("Expected expired entry to miss")
	}
	if _, err := os.Stat(c.path(key)); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be removed")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	key := CacheKey("c")

	NewDiskCache(dir, time.Hour).Set(key, []byte("from disk"), 0)

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	if val, ok := c.Get(key); !ok || string(val) != "from disk" {
		t.Fatalf("Expected disk hit, got %q %v", val, ok)
	}
	if val, ok := c.memory.Get(key); !ok || string(val) != "from disk" {
		t.Error("Expected disk hit to be promoted to memory")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("Expected miss after clear")
	}
}

func TestLayeredCache_SetWritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	key := CacheKey("digest", "photo.nt")

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	if err := c.Set(key, []byte("entry"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := c.memory.Get(key); !ok {
		t.Error("Expected entry in memory")
	}
	if _, ok := NewDiskCache(dir, time.Hour).Get(key); !ok {
		t.Error("Expected entry on disk")
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Error("Expected miss after delete")
	}
}

func TestPutGetCredit(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	cr := credit.FromRecord(credit.Record{
		TitleText: "Sunset",
		Sources:   []credit.Record{{AttribText: "Alice"}},
	})

	if err := PutCredit(c, "hit", cr, "rdfa", 0); err != nil {
		t.Fatalf("PutCredit: %v", err)
	}
	got, loader, ok := GetCredit(c, "hit")
	if !ok || loader != "rdfa" || !got.Equal(cr) {
		t.Errorf("Expected cached credit, got %+v %q %v", got, loader, ok)
	}

	if err := PutCredit(c, "none", nil, "ntriples", 0); err != nil {
		t.Fatalf("PutCredit: %v", err)
	}
	got, _, ok = GetCredit(c, "none")
	if !ok || got != nil {
		t.Errorf("Expected negative hit, got %+v %v", got, ok)
	}

	if _, _, ok := GetCredit(c, "missing"); ok {
		t.Error("Expected miss")
	}
	if _, _, ok := GetCredit(NopCache{}, "hit"); ok {
		t.Error("Expected NopCache to miss")
	}
}
