package compiler

import (
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"
)

// DefaultCacheSize is the number of compiled units kept by NewCache(0)
const DefaultCacheSize = 256

// Cache keeps finished compile results keyed by the Keccak-256 hash of their
// source. Cached modules are shared and must not be modified.
type Cache struct {
	entries *lru.Cache
}

// NewCache creates a cache holding up to size results
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Fingerprint returns the hex Keccak-256 digest of source
func Fingerprint(source []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a copy of the cached result for source, re-labelled with path
func (c *Cache) Get(path string, source []byte) (*Result, bool) {
	v, ok := c.entries.Get(Fingerprint(source))
	if !ok {
		return nil, false
	}
	res := *v.(*Result)
	res.Path = path
	res.Cached = true
	return &res, true
}

// Add stores a successful result
func (c *Cache) Add(source []byte, res *Result) {
	c.entries.Add(Fingerprint(source), res)
}

// Len returns the number of cached results
func (c *Cache) Len() int {
	return c.entries.Len()
}
