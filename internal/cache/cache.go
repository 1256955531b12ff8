// Package cache stores extracted credit records so unchanged inputs are not
// parsed again. A memory layer backed by go-cache sits in front of a JSON
// file store on disk.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ppiankov/creditline/internal/credit"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey hashes parts into a versioned key. Callers pass everything that
// affects the cached value: input digest, subject, base URI, depth limits.
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "creditline:v1:" + hex.EncodeToString(h.Sum(nil))
}

// entry is the cached form of an extraction result. Found is false when
// the input held no credit, which is cached too.
type entry struct {
	Found  bool          `json:"found"`
	Loader string        `json:"loader"`
	Record credit.Record `json:"record"`
}

// GetCredit looks up an extraction result. ok reports a cache hit; c is
// nil on a hit for an input without credit.
func GetCredit(c Cache, key string) (cr *credit.Credit, loader string, ok bool) {
	data, found := c.Get(key)
	if !found {
		return nil, "", false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, "", false
	}
	if !e.Found {
		return nil, e.Loader, true
	}
	return credit.FromRecord(e.Record), e.Loader, true
}

// PutCredit stores an extraction result. A nil credit is stored as a
// negative entry.
func PutCredit(c Cache, key string, cr *credit.Credit, loader string, ttl time.Duration) error {
	e := entry{Found: cr != nil, Loader: loader}
	if cr != nil {
		e.Record = cr.Record()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal credit: %w", err)
	}
	return c.Set(key, data, ttl)
}

// NopCache never stores anything
type NopCache struct{}

func (NopCache) Get(string) ([]byte, bool)               { return nil, false }
func (NopCache) Set(string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(string) error                     { return nil }
func (NopCache) Clear() error                            { return nil }
