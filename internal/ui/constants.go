// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// LineHeight is one line of header or footer text.
	LineHeight = 1

	// ListOverhead is the vertical space around scrolling content.
	ListOverhead = HeaderHeight + LineHeight
)
