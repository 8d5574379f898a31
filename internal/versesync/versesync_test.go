package versesync

import (
	"testing"
	"time"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		name  string
		pos   time.Duration
		dur   time.Duration
		count int
		want  int
	}{
		{"start", 0, 100 * time.Second, 10, 0},
		{"midpoint runs ahead of linear", 50 * time.Second, 100 * time.Second, 10, 5},
		{"end clamps to last", 100 * time.Second, 100 * time.Second, 10, 9},
		{"past end clamps to last", 150 * time.Second, 100 * time.Second, 10, 9},
		{"unknown duration", 30 * time.Second, 0, 10, 0},
		{"negative duration", 30 * time.Second, -time.Second, 10, 0},
		{"negative position", -5 * time.Second, 100 * time.Second, 10, 0},
		{"no verses", 50 * time.Second, 100 * time.Second, 0, 0},
		{"single verse", 99 * time.Second, 100 * time.Second, 1, 0},
		{"ten percent", 10 * time.Second, 100 * time.Second, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Index(tt.pos, tt.dur, tt.count)
			if got != tt.want {
				t.Errorf("Index(%v, %v, %d) = %d, want %d", tt.pos, tt.dur, tt.count, got, tt.want)
			}
		})
	}
}

func TestIndex_Monotonic(t *testing.T) {
	const count = 286
	dur := 2 * time.Hour
	prev := 0
	for pos := time.Duration(0); pos <= dur; pos += 7 * time.Second {
		got := Index(pos, dur, count)
		if got < prev {
			t.Fatalf("Index decreased at %v: %d < %d", pos, got, prev)
		}
		if got < 0 || got >= count {
			t.Fatalf("Index(%v) = %d out of range", pos, got)
		}
		prev = got
	}
}

func TestCursor(t *testing.T) {
	var c Cursor
	dur := 100 * time.Second

	if c.Update(0, dur, 10) {
		t.Error("Update at start should not change index 0")
	}
	if !c.Update(50*time.Second, dur, 10) {
		t.Error("Update at midpoint should change index")
	}
	if c.Index() != 5 {
		t.Errorf("Index() = %d, want 5", c.Index())
	}
	if c.Update(51*time.Second, dur, 10) {
		t.Error("Update within the same verse should not report a change")
	}

	c.Reset()
	if c.Index() != 0 {
		t.Errorf("Index() after Reset = %d, want 0", c.Index())
	}
}
