package tafsirview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/tafsir"
	"github.com/llehouerou/tilawa/internal/ui/action"
)

// Close signals the tafsir popup should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "tafsir.close" }

// Passthrough signals a key should be passed to the main handler.
type Passthrough struct {
	Key tea.KeyMsg
}

// ActionType implements action.Action.
func (a Passthrough) ActionType() string { return "tafsir.passthrough" }

// FetchedMsg is sent when the commentary of a range has been fetched.
type FetchedMsg struct {
	Gen     uint64
	Entries []tafsir.Entry
	Err     error
}

// ActionMsg creates an action.Msg for a tafsir action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "tafsir", Action: a}
}

var (
	_ action.Action = Close{}
	_ action.Action = Passthrough{}
)
