// Package stream tracks which live stream URL to try next.
//
// A Cursor walks an ordered fallback list once:
//
//	Current(0) → Advance → Current(1) → ... → Current(N-1) → Advance → Exhausted
//
// After N failures on a list of length N the cursor yields no further URL
// until Reset.
package stream

import "github.com/samber/lo"

// Cursor is a finite-state cursor over an ordered URL list.
// It is not safe for concurrent use.
type Cursor struct {
	urls      []string
	idx       int
	exhausted bool
}

// NewCursor creates a cursor over urls. Empty and duplicate entries are
// dropped, keeping the first occurrence.
func NewCursor(urls []string) *Cursor {
	clean := lo.Uniq(lo.Compact(urls))
	return &Cursor{urls: clean, exhausted: len(clean) == 0}
}

// Current returns the URL to try, or false when exhausted.
func (c *Cursor) Current() (string, bool) {
	if c.exhausted {
		return "", false
	}
	return c.urls[c.idx], true
}

// Index returns the position of the current URL.
func (c *Cursor) Index() int { return c.idx }

// Len returns the number of URLs.
func (c *Cursor) Len() int { return len(c.urls) }

// Advance records a failure of the current URL and moves to the next one.
// It returns false once the list is exhausted.
func (c *Cursor) Advance() bool {
	if c.exhausted {
		return false
	}
	if c.idx+1 >= len(c.urls) {
		c.exhausted = true
		return false
	}
	c.idx++
	return true
}

// Exhausted reports whether every URL has failed.
func (c *Cursor) Exhausted() bool { return c.exhausted }

// Reset moves back to the first URL.
func (c *Cursor) Reset() {
	c.idx = 0
	c.exhausted = len(c.urls) == 0
}
