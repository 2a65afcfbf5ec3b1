package resolver

import "github.com/lepinkainen/bookinfo/internal/enrichment/book"

// Cache maps an ISBN to the most recently fetched metadata for it.
// It lives for a single run: no eviction, no TTL, no size bound.
// A Cache is owned by one Resolver and is not safe for concurrent use.
type Cache struct {
	entries map[string]book.Metadata
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]book.Metadata)}
}

// Get returns the cached metadata for isbn.
func (c *Cache) Get(isbn string) (book.Metadata, bool) {
	meta, ok := c.entries[isbn]
	return meta, ok
}

// Has reports whether isbn is cached.
func (c *Cache) Has(isbn string) bool {
	_, ok := c.entries[isbn]
	return ok
}

// Set stores metadata for isbn, replacing any earlier entry.
func (c *Cache) Set(isbn string, meta book.Metadata) {
	c.entries[isbn] = meta
}

// Len returns the number of cached ISBNs.
func (c *Cache) Len() int {
	return len(c.entries)
}
