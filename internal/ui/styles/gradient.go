package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackColor replaces theme colors that are not "#rrggbb".
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient renders text in bold, blending from one color to the other
// across its grapheme clusters.
func Gradient(text string, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range blend(len(clusters), from, to) {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex()))
		b.WriteString(style.Render(clusters[i]))
	}
	return b.String()
}

func graphemes(text string) []string {
	var out []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// blend returns n colors from..to, interpolated in HCL space.
func blend(n int, from, to lipgloss.Color) []colorful.Color {
	c1, c2 := parseColor(from), parseColor(to)
	if n < 2 {
		return []colorful.Color{c1}
	}
	out := make([]colorful.Color, n)
	for i := range n {
		out[i] = c1.BlendHcl(c2, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

func parseColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackColor
	}
	return col
}
