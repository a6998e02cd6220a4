package search

import "sync"

// Cache memoizes the most recent locate result so repeated searches of
// an unchanged document skip the scan.
//
// A cached entry is valid only while the query compares equal by value
// and the content length is unchanged. Length is a fast invalidation
// heuristic, not a content hash: the controller invalidates explicitly
// on every mutation, so the length check only guards against the buffer
// being swapped wholesale between searches.
type Cache struct {
	mu         sync.Mutex
	query      Query
	contentLen int
	matches    []Span
	valid      bool

	hits   uint64
	misses uint64
}

// Get returns the cached matches for (content, q), or ok=false on a
// cache miss. A hit returns the identical stored slice.
func (c *Cache) Get(content string, q Query) ([]Span, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || c.query != q || c.contentLen != len(content) {
		c.misses++
		return nil, false
	}
	c.hits++
	return c.matches, true
}

// Put stores the locate result for (content, q).
func (c *Cache) Put(content string, q Query, matches []Span) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = q
	c.contentLen = len(content)
	c.matches = matches
	c.valid = true
}

// Invalidate clears the stored result. Called on every content
// mutation: typing, paste, replace.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
	c.matches = nil
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Searcher combines the locator with the cache: Find consults the cache
// first and only scans on a miss.
type Searcher struct {
	cache Cache
}

// NewSearcher creates a Searcher with an empty cache.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Find returns the ordered matches for q in content, cached.
func (s *Searcher) Find(content string, q Query) ([]Span, error) {
	if spans, ok := s.cache.Get(content, q); ok {
		return spans, nil
	}
	spans, err := Locate(content, q)
	if err != nil {
		return nil, err
	}
	s.cache.Put(content, q, spans)
	return spans, nil
}

// Invalidate drops the cached result.
func (s *Searcher) Invalidate() {
	s.cache.Invalidate()
}

// CacheStats returns the underlying cache counters.
func (s *Searcher) CacheStats() (hits, misses uint64) {
	return s.cache.Stats()
}
