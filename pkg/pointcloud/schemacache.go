package pointcloud

import (
	"container/list"
	"fmt"
	"sync"
)

// SchemaCache resolves pcid -> *Schema with LRU eviction, standing in
// for the spec's "small schema cache keyed by pcid" in front of the
// external DB binding layer (spec §9).
//
// Adapted from pkg/v1's ChartCache: an LRU list plus map plus mutex,
// here bounded by entry count rather than estimated memory, since a
// Schema is small and fixed-size unlike a parsed chart.
type SchemaCache struct {
	maxEntries int
	schemas    map[int]*list.Element
	lru        *list.List
	mu         sync.RWMutex
}

type schemaCacheEntry struct {
	pcid   int
	schema *Schema
}

// NewSchemaCache returns a cache holding at most maxEntries schemas.
// maxEntries <= 0 means unlimited.
func NewSchemaCache(maxEntries int) *SchemaCache {
	return &SchemaCache{
		maxEntries: maxEntries,
		schemas:    make(map[int]*list.Element),
		lru:        list.New(),
	}
}

// Get returns the schema for pcid, loading it via resolve on a cache
// miss and caching the result.
func (c *SchemaCache) Get(pcid int, resolve func(int) (*Schema, error)) (*Schema, error) {
	c.mu.RLock()
	if el, ok := c.schemas[pcid]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		c.lru.MoveToFront(el)
		c.mu.Unlock()
		return el.Value.(*schemaCacheEntry).schema, nil
	}
	c.mu.RUnlock()

	schema, err := resolve(pcid)
	if err != nil {
		return nil, fmt.Errorf("resolve schema for pcid %d: %w", pcid, err)
	}
	c.Add(pcid, schema)
	return schema, nil
}

// Add inserts or refreshes pcid's cached schema, evicting the
// least-recently-used entry if the cache is at capacity.
func (c *SchemaCache) Add(pcid int, schema *Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.schemas[pcid]; ok {
		el.Value.(*schemaCacheEntry).schema = schema
		c.lru.MoveToFront(el)
		return
	}

	el := c.lru.PushFront(&schemaCacheEntry{pcid: pcid, schema: schema})
	c.schemas[pcid] = el

	if c.maxEntries > 0 {
		for c.lru.Len() > c.maxEntries {
			c.evictOldest()
		}
	}
}

func (c *SchemaCache) evictOldest() {
	back := c.lru.Back()
	if back == nil {
		return
	}
	c.lru.Remove(back)
	delete(c.schemas, back.Value.(*schemaCacheEntry).pcid)
}

// Len returns the number of schemas currently cached.
func (c *SchemaCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}
