// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogLoad    Op = "load recordings"
	OpSheikhLoad     Op = "load sheikhs"
	OpRecordingsLoad Op = "load sheikh recordings"
	OpSadaqaLoad     Op = "load sadaqa banner"

	// Verse text operations
	OpVersesLoad  Op = "load verse text"
	OpSurahsLoad  Op = "load surah list"
	OpVerseCache  Op = "cache verse text"
	OpTafsirLoad  Op = "load tafsir"
	OpPrayerLoad  Op = "load prayer times"
	OpDownloadGet Op = "download recording"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"
	OpLiveStream    Op = "play live stream"

	// State
	OpStateSave Op = "save state"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
