// Package versesync estimates which verse is being recited from the
// playback position alone.
//
// Recordings carry no per-verse timestamps, so the estimate bends linear
// progress with a power curve: early verses get slightly less time than
// later ones.
package versesync

import (
	"math"
	"time"
)

// Exponent shapes the progress curve. Values below 1 move the highlight
// ahead of linear progress early in the recording.
const Exponent = 0.8

// Index returns the estimated verse index in [0, count-1] for a position
// within a recording of the given duration. It returns 0 when count or
// dur is not positive.
func Index(pos, dur time.Duration, count int) int {
	if count <= 0 || dur <= 0 {
		return 0
	}
	progress := max(float64(pos)/float64(dur), 0)
	adjusted := math.Pow(progress, Exponent)
	idx := int(math.Floor(adjusted * float64(count)))
	return max(min(idx, count-1), 0)
}

// Cursor remembers the last estimated index.
type Cursor struct {
	index int
}

// Index returns the current verse index.
func (c *Cursor) Index() int { return c.index }

// Update recomputes the index and reports whether it changed.
func (c *Cursor) Update(pos, dur time.Duration, count int) bool {
	next := Index(pos, dur, count)
	if next == c.index {
		return false
	}
	c.index = next
	return true
}

// Reset moves the cursor back to the first verse.
func (c *Cursor) Reset() { c.index = 0 }
