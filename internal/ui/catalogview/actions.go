package catalogview

import (
	"github.com/llehouerou/tilawa/internal/catalog"
	"github.com/llehouerou/tilawa/internal/ui/action"
)

// Select signals a recording was chosen for playback.
type Select struct {
	Recording catalog.Recording
}

// ActionType implements action.Action.
func (a Select) ActionType() string { return "catalog.select" }

// ShowTafsir requests the tafsir popup for a recording.
type ShowTafsir struct {
	Recording catalog.Recording
}

// ActionType implements action.Action.
func (a ShowTafsir) ActionType() string { return "catalog.tafsir" }

// LoadedMsg carries the catalog fetch result.
type LoadedMsg struct {
	Recordings []catalog.Recording
	Err        error
}

// ActionMsg creates an action.Msg for a catalog action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "catalog", Action: a}
}

var (
	_ action.Action = Select{}
	_ action.Action = ShowTafsir{}
)
