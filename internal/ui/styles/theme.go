package styles

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Name string

	// Brand/accent colors
	Primary   lipgloss.Color // Emerald - focused items, active states
	Secondary lipgloss.Color // Gold - verse highlight, secondary accent

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Backgrounds
	BgBase   lipgloss.Color // Panel backgrounds
	BgCursor lipgloss.Color // Cursor/selection highlight

	// Borders
	Border      lipgloss.Color // Unfocused panel borders
	BorderFocus lipgloss.Color // Focused panel borders

	// Status colors
	Success lipgloss.Color // Green - playing
	Error   lipgloss.Color // Red - errors
	Warning lipgloss.Color // Amber - loading, warnings
	Live    lipgloss.Color // Red dot of the live indicator

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Subtle  lipgloss.Style // Very dim text
	Title   lipgloss.Style // Bold, bright
	Playing lipgloss.Style // Currently playing item
	Cursor  lipgloss.Style // Cursor background highlight
	Verse   lipgloss.Style // Currently recited verse
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Live    lipgloss.Style
}

var darkTheme = Theme{
	Name: "dark",

	Primary:   lipgloss.Color("#34d399"),
	Secondary: lipgloss.Color("#fbbf24"),

	FgBase:   lipgloss.Color("#e2e8f0"),
	FgMuted:  lipgloss.Color("#94a3b8"),
	FgSubtle: lipgloss.Color("#64748b"),

	BgBase:   lipgloss.Color("#1e293b"),
	BgCursor: lipgloss.Color("#334155"),

	Border:      lipgloss.Color("#475569"),
	BorderFocus: lipgloss.Color("#34d399"),

	Success: lipgloss.Color("#10b981"),
	Error:   lipgloss.Color("#f87171"),
	Warning: lipgloss.Color("#f59e0b"),
	Live:    lipgloss.Color("#ef4444"),
}

var lightTheme = Theme{
	Name: "light",

	Primary:   lipgloss.Color("#047857"),
	Secondary: lipgloss.Color("#b45309"),

	FgBase:   lipgloss.Color("#1e293b"),
	FgMuted:  lipgloss.Color("#475569"),
	FgSubtle: lipgloss.Color("#94a3b8"),

	BgBase:   lipgloss.Color("#f8fafc"),
	BgCursor: lipgloss.Color("#d1fae5"),

	Border:      lipgloss.Color("#cbd5e1"),
	BorderFocus: lipgloss.Color("#059669"),

	Success: lipgloss.Color("#059669"),
	Error:   lipgloss.Color("#dc2626"),
	Warning: lipgloss.Color("#d97706"),
	Live:    lipgloss.Color("#dc2626"),
}

var current atomic.Pointer[Theme]

func init() {
	current.Store(&darkTheme)
}

// T returns the active theme.
func T() *Theme {
	return current.Load()
}

// SetLight switches between the light and dark themes.
func SetLight(light bool) {
	if light {
		current.Store(&lightTheme)
		return
	}
	current.Store(&darkTheme)
}

// IsLight reports whether the light theme is active.
func IsLight() bool {
	return T() == &lightTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Verse: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Live:    lipgloss.NewStyle().Foreground(t.Live).Bold(true),
	}
}
