package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tilawa/internal/ui/styles"
)

// SizeConfig defines how a popup should be sized.
type SizeConfig struct {
	WidthPct  int // Percentage of screen width (0 = auto-fit)
	HeightPct int // Percentage of screen height (0 = auto-fit)
	MaxWidth  int // Maximum width in columns (0 = no limit)
}

// Common size configurations.
var (
	SizeLarge = SizeConfig{WidthPct: 80, HeightPct: 70} // Tafsir
	SizeAuto  = SizeConfig{}                            // Help, errors
)

// InnerSize returns the content area available inside a bordered popup.
func InnerSize(screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct == 0 {
		return max(screenW-10, 0), max(screenH-8, 0)
	}
	w := screenW * size.WidthPct / 100
	h := screenH * size.HeightPct / 100
	return max(w-6, 0), max(h-4, 0)
}

// RenderBordered wraps content in a rounded border and centers it.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := calculateDimensions(content, screenW, screenH, size)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Width(width-2). // Account for border
		Height(height-2).
		Padding(1, 2)

	return Center(boxStyle.Render(content), screenW, screenH)
}

func calculateDimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}
	contentWidth := maxLineWidth(content) + 6 // padding + border
	if size.MaxWidth > 0 {
		contentWidth = min(contentWidth, size.MaxWidth)
	}
	contentWidth = min(contentWidth, screenW-4)

	contentHeight := strings.Count(content, "\n") + 1 + 4 // padding + border
	contentHeight = min(contentHeight, screenH-4)

	return contentWidth, contentHeight
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		maxW = max(maxW, lipgloss.Width(line))
	}
	return maxW
}

// Center centers pre-rendered content in the terminal.
func Center(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxWidth := maxLineWidth(box)

	padTop := max((termHeight-len(lines))/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var result strings.Builder
	for range padTop {
		result.WriteString(strings.Repeat(" ", termWidth) + "\n")
	}
	for _, line := range lines {
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
		result.WriteString("\n")
	}
	return result.String()
}

// Compose overlays a centered popup on top of a base view. Visible cells
// of the popup replace the base at the same position.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, overlayLine := range strings.Split(popupView, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(overlayLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := len(plain) - len(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))
		content := ansi.Cut(overlayLine, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		// A wide rune cut at the edge leaves the prefix short; pad it back.
		prefix := ansi.Cut(baseLine, 0, startCol)
		if pw := ansi.StringWidth(prefix); pw < startCol {
			prefix += strings.Repeat(" ", startCol-pw)
		}
		line := prefix + content
		if endCol < width {
			line += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[i] = line
	}

	return strings.Join(baseLines, "\n")
}
