package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStripANSI(t *testing.T) {
	if got := StripANSI("\x1b[1;32mقرآن\x1b[0m"); got != "قرآن" {
		t.Errorf("StripANSI = %q", got)
	}
}

func TestFindLine(t *testing.T) {
	out := "first\n\x1b[1msecond line\x1b[0m\nthird"
	if got := FindLine(out, "second"); got != "second line" {
		t.Errorf("FindLine = %q", got)
	}
	if ContainsLine(out, "fourth") {
		t.Error("ContainsLine found missing text")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\nb\n\n  \n")
	if len(got) != 2 {
		t.Errorf("SplitLines = %q", got)
	}
}

type pingMsg struct{ n int }

func TestCollect_FlattensBatch(t *testing.T) {
	cmd := tea.Batch(
		func() tea.Msg { return pingMsg{1} },
		tea.Batch(func() tea.Msg { return pingMsg{2} }, nil),
	)

	msgs := Collect(cmd)
	if len(msgs) != 2 {
		t.Fatalf("Collect returned %d messages, want 2", len(msgs))
	}

	got, ok := Find[pingMsg](cmd)
	if !ok || got.n != 1 {
		t.Errorf("Find = %+v, %v", got, ok)
	}
	if _, ok := Find[pingMsg](nil); ok {
		t.Error("Find(nil) should report false")
	}
}
