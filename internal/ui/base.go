package ui

// Base holds the dimensions assigned to a component by its parent.
// Embed it in component models:
//
//	type Model struct {
//	    ui.Base
//	    verses []quran.Verse
//	}
type Base struct {
	width, height int
}

// SetSize sets the component dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Width returns the component width.
func (b Base) Width() int {
	return b.width
}

// Height returns the component height.
func (b Base) Height() int {
	return b.height
}

// ListHeight returns the rows left for scrolling content once overhead
// rows are taken. It may be negative on tiny terminals.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
