//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpCatalogLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpCatalogLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load recordings: connection refused",
		},
		{
			name:     "verse text operation",
			op:       OpVersesLoad,
			err:      errors.New("timeout"),
			expected: "Failed to load verse text: timeout",
		},
		{
			name:     "download operation",
			op:       OpDownloadGet,
			err:      errors.New("network error"),
			expected: "Failed to download recording: network error",
		},
		{
			name:     "tafsir operation",
			op:       OpTafsirLoad,
			err:      errors.New("bad gateway"),
			expected: "Failed to load tafsir: bad gateway",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpDownloadGet,
			context:  "al-kahf.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpDownloadGet,
			context:  "al-kahf.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to download recording 'al-kahf.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpDownloadGet,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to download recording: permission denied",
		},
		{
			name:     "sheikh recordings with id context",
			op:       OpRecordingsLoad,
			context:  "64f0c2",
			err:      errors.New("not found"),
			expected: "Failed to load sheikh recordings '64f0c2': not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpCatalogLoad, OpSheikhLoad, OpRecordingsLoad, OpSadaqaLoad,
		OpVersesLoad, OpSurahsLoad, OpVerseCache, OpTafsirLoad, OpPrayerLoad, OpDownloadGet,
		OpPlaybackStart, OpPlaybackSeek, OpLiveStream,
		OpStateSave,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			result := Format(op, testErr)
			expected := "Failed to " + string(op) + ": test error"
			if result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
