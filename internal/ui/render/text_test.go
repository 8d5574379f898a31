package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean text unchanged", "سورة الكهف", "سورة الكهف"},
		{"control chars removed", "al\x00-\x1bkahf", "al-kahf"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp to space", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Yaseen", 10, "Yaseen"},
		{"exact", "Yaseen", 6, "Yaseen"},
		{"truncated", "Al-Baqarah", 6, "Al-Ba…"},
		{"empty", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncate_KeepsStyles(t *testing.T) {
	got := Truncate("\x1b[1mAl-Baqarah\x1b[0m", 6)
	if w := lipgloss.Width(got); w != 6 {
		t.Errorf("Truncate styled width = %d, want 6 (%q)", w, got)
	}
	if !strings.HasPrefix(got, "\x1b[1m") {
		t.Errorf("Truncate dropped the style: %q", got)
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, width := range []int{3, 8, 20} {
		got := TruncateAndPad("Al-Fatiha", width)
		if w := lipgloss.Width(got); w != width {
			t.Errorf("TruncateAndPad width = %d, want %d (%q)", w, width, got)
		}
	}
}

func TestAlignRight(t *testing.T) {
	got := AlignRight("abc", 6)
	if got != "   abc" {
		t.Errorf("AlignRight = %q, want %q", got, "   abc")
	}
	if got := AlignRight("abcdefgh", 4); lipgloss.Width(got) != 4 {
		t.Errorf("AlignRight overflow width = %d, want 4", lipgloss.Width(got))
	}
}

func TestCenter(t *testing.T) {
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center = %q", got)
	}
	if got := Center("abcdef", 3); got != "abcdef" {
		t.Errorf("Center overflow = %q", got)
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 15)
	if lipgloss.Width(got) != 15 {
		t.Errorf("Row width = %d, want 15", lipgloss.Width(got))
	}
	// Always at least one space between sides.
	if got := Row("left", "right", 4); got != "left right" {
		t.Errorf("Row overflow = %q", got)
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(3); got != "───" {
		t.Errorf("Separator(3) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{65 * time.Second, "1:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{1500 * time.Millisecond, "0:02"},
	}
	for _, tt := range tests {
		if got := Duration(tt.in); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
