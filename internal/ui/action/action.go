// Package action carries requests from UI components up to the root model.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a request emitted by a component, such as selecting a
// recording or closing the tafsir popup.
type Action interface {
	// ActionType names the action for logs, e.g. "catalog.select".
	ActionType() string
}

// Msg wraps an action with the name of the component that emitted it.
type Msg struct {
	Source string // "catalog" or "tafsir"
	Action Action
}

var _ tea.Msg = Msg{}
