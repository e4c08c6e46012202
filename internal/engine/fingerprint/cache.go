// Package fingerprint memoizes file fingerprints for the duration of one invocation.
package fingerprint

import (
	"sync"

	"go.trai.ch/tend/internal/core/domain"
	"go.trai.ch/tend/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Cache computes each path's fingerprint at most once until it is invalidated.
// Concurrent lookups of the same path share one computation.
type Cache struct {
	fp   ports.Fingerprinter
	mode domain.FingerprintMode

	mu      sync.RWMutex
	entries map[domain.InternedString]domain.Fingerprint
	// gens counts invalidations per path. A computation only stores its result
	// when no invalidation happened since it started.
	gens  map[domain.InternedString]uint64
	group singleflight.Group
}

// NewCache creates an empty cache backed by fp.
func NewCache(fp ports.Fingerprinter, mode domain.FingerprintMode) *Cache {
	return &Cache{
		fp:      fp,
		mode:    mode,
		entries: make(map[domain.InternedString]domain.Fingerprint),
		gens:    make(map[domain.InternedString]uint64),
	}
}

// Get returns the fingerprint of file.
func (c *Cache) Get(file domain.TrackedFile) (domain.Fingerprint, error) {
	c.mu.RLock()
	cached, ok := c.entries[file.Path]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	path := file.Path.String()
	v, err, _ := c.group.Do(path, func() (any, error) {
		c.mu.RLock()
		gen := c.gens[file.Path]
		c.mu.RUnlock()

		fp, err := c.fp.Fingerprint(path, c.mode)
		if err != nil {
			return domain.Absent(), err
		}
		c.mu.Lock()
		if c.gens[file.Path] == gen {
			c.entries[file.Path] = fp
		}
		c.mu.Unlock()
		return fp, nil
	})
	if err != nil {
		return domain.Absent(), err
	}
	return v.(domain.Fingerprint), nil
}

// GetAll returns the fingerprints of files in order.
func (c *Cache) GetAll(files []domain.TrackedFile) ([]domain.Fingerprint, error) {
	out := make([]domain.Fingerprint, len(files))
	for i, f := range files {
		fp, err := c.Get(f)
		if err != nil {
			return nil, err
		}
		out[i] = fp
	}
	return out, nil
}

// Invalidate drops the cached fingerprints of files, e.g. after an action rewrote them.
func (c *Cache) Invalidate(files ...domain.TrackedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range files {
		delete(c.entries, f.Path)
		c.gens[f.Path]++
		c.group.Forget(f.Path.String())
	}
}
