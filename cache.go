package main

import (
	"encoding/gob"
	"os"
	"sync"
)

const _cacheFilePerm = 0644

type _CacheKey struct {
	Checksum uint32
	Query    string
	Param    int64
}

type _CacheEntry struct {
	Key   _CacheKey
	Value []int64
}

// _ResultCache keeps query answers between runs. An empty name keeps
// them in memory only.
type _ResultCache struct {
	mu      sync.Mutex
	name    string
	entries []_CacheEntry
	dirty   bool
}

func _openResultCache(name string) (c *_ResultCache, err error) {
	c = &_ResultCache{name: name}
	if name == "" {
		return
	}

	file, err := os.Open(name + "New")
	if err != nil {
		file, err = os.Open(name)
	} else {
		os.Rename(name+"New", name)
	}
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
		}
		return
	}
	defer file.Close()

	var entries []_CacheEntry
	err = gob.NewDecoder(file).Decode(&entries)
	if err != nil {
		return
	}

	c.entries = entries
	return
}

// Get returns the value stored for key. Values not holding exactly size
// elements are treated as missing.
func (c *_ResultCache) Get(key _CacheKey, size int) ([]int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.Key == key && len(e.Value) == size {
			return e.Value, true
		}
	}
	return nil, false
}

func (c *_ResultCache) Put(key _CacheKey, value []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
	for i := range c.entries {
		if c.entries[i].Key == key {
			c.entries[i].Value = value
			return
		}
	}
	c.entries = append(c.entries, _CacheEntry{key, value})
}

func (c *_ResultCache) syncLocked() error {
	file, err := os.OpenFile(c.name+"New", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, _cacheFilePerm)
	if err != nil {
		return err
	}

	nerr := gob.NewEncoder(file).Encode(&c.entries)
	serr := file.Sync()
	cerr := file.Close()

	for _, err := range []error{nerr, serr, cerr} {
		if err != nil {
			return err
		}
	}
	return os.Rename(c.name+"New", c.name)
}

func (c *_ResultCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty || c.name == "" {
		return nil
	}
	c.dirty = false
	return c.syncLocked()
}
