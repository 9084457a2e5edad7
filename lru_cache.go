// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"container/list"
	"sync"
)

// lruCache is a thread-safe least recently used cache from range text to
// the parsed CellRange. Keys are compared byte for byte; callers own any
// normalisation. When the cache is full, the least recently used entry is
// evicted to make room for the new one.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*list.Element
	lruList  *list.List
}

// lruEntry is one key-value pair held in the list.
type lruEntry struct {
	key   string
	value CellRange
}

// newLRUCache creates a new LRU cache with the specified capacity.
func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

// Load returns the cached range and moves it to the front.
func (c *lruCache) Load(key string) (CellRange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lruList.MoveToFront(elem)
		return elem.Value.(*lruEntry).value, true
	}
	return CellRange{}, false
}

// Store adds or updates a range. Returns true if an entry was evicted.
func (c *lruCache) Store(key string, value CellRange) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lruList.MoveToFront(elem)
		elem.Value.(*lruEntry).value = value
		return false
	}

	evicted := false
	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Back(); oldest != nil {
			c.lruList.Remove(oldest)
			delete(c.cache, oldest.Value.(*lruEntry).key)
			evicted = true
		}
	}

	c.cache[key] = c.lruList.PushFront(&lruEntry{key: key, value: value})
	return evicted
}

// Clear removes all entries.
func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*list.Element)
	c.lruList = list.New()
}

// Len returns the current number of entries.
func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lruList.Len()
}
