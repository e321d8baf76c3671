package db

import (
	"container/list"
	"database/sql"
	"sync"
)

const dirCacheSize = 4096

type dirCacheEntry struct {
	dir       string
	listingID int64
}

// dirCache is an LRU of normalized directory path to latest listing ID.
type dirCache struct {
	mu    sync.Mutex
	max   int
	ll    *list.List
	items map[string]*list.Element
}

func newDirCache(max int) *dirCache {
	return &dirCache{
		max:   max,
		ll:    list.New(),
		items: make(map[string]*list.Element),
	}
}

func (c *dirCache) Get(dir string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[dir]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(dirCacheEntry).listingID, true
	}
	return 0, false
}

func (c *dirCache) Set(dir string, listingID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[dir]; ok {
		el.Value = dirCacheEntry{dir: dir, listingID: listingID}
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(dirCacheEntry{dir: dir, listingID: listingID})
	c.items[dir] = el

	if c.ll.Len() > c.max {
		last := c.ll.Back()
		if last == nil {
			return
		}
		c.ll.Remove(last)
		delete(c.items, last.Value.(dirCacheEntry).dir)
	}
}

func (c *dirCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

var dbDirCaches sync.Map // map[*sql.DB]*dirCache

func getDirCache(db *sql.DB) *dirCache {
	if db == nil {
		return nil
	}
	if existing, ok := dbDirCaches.Load(db); ok {
		return existing.(*dirCache)
	}
	cache := newDirCache(dirCacheSize)
	actual, _ := dbDirCaches.LoadOrStore(db, cache)
	return actual.(*dirCache)
}

// Forget drops the directory cache attached to db. Call it when db is
// closed so the handle and its cache can be collected.
func Forget(db *sql.DB) {
	if db != nil {
		dbDirCaches.Delete(db)
	}
}
