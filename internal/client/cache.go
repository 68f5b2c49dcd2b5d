// internal/client/cache.go
package client

import (
	"strings"
	"sync"
)

// Operation names used in cache keys. Sub-resource reads carry the owning
// id in Params so they can be invalidated per owner.
const (
	OpList          = "list"
	OpDetail        = "detail"
	OpStats         = "stats"
	OpSummary       = "expense_summary"
	OpTransactions  = "transactions"
	OpMembers       = "members"
	OpOrganizations = "organizations"
	OpDocuments     = "documents"
)

// Key identifies one cached read: the entity, the operation, and the
// serialized parameters (query string for lists, id for details,
// "id|query" for sub-resource lists).
type Key struct {
	Entity string
	Op     string
	Params string
}

// subParams builds the Params value for a sub-resource list read.
func subParams(id, query string) string {
	if query == "" {
		return id
	}
	return id + "|" + query
}

// Cache stores raw response payloads by key. Reads outnumber writes, so
// access is guarded by an RWMutex.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[Key][]byte)}
}

func (c *Cache) Get(k Key) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[k]
	return data, ok
}

func (c *Cache) Set(k Key, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = data
}

// Drop removes one exact key.
func (c *Cache) Drop(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, k)
}

// DropOp removes every key for the entity and operation, regardless of
// parameters.
func (c *Cache) DropOp(entity, op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Entity == entity && k.Op == op {
			delete(c.entries, k)
		}
	}
}

// DropOwned removes every entity+op key whose Params belong to the given
// owner id: the exact id, or any "id|..." sub-resource variant.
func (c *Cache) DropOwned(entity, op, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Entity != entity || k.Op != op {
			continue
		}
		if k.Params == id || strings.HasPrefix(k.Params, id+"|") {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
