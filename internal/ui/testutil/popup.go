package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/ui/action"
	"github.com/llehouerou/tilawa/internal/ui/popup"
)

// keyTypes maps key names to their tea key types. Other names are sent
// as runes.
var keyTypes = map[string]tea.KeyType{
	"esc":    tea.KeyEscape,
	"enter":  tea.KeyEnter,
	" ":      tea.KeySpace,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"ctrl+u": tea.KeyCtrlU,
	"ctrl+d": tea.KeyCtrlD,
}

// PopupHarness drives a popup the way the root model does: messages go
// in, returned commands are recorded and can be run and fed back.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness wraps p and records its Init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

func (h *PopupHarness) record(cmd tea.Cmd) {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
}

// Popup returns the wrapped popup.
func (h *PopupHarness) Popup() popup.Popup { return h.popup }

// SetSize sets the popup dimensions.
func (h *PopupHarness) SetSize(width, height int) { h.popup.SetSize(width, height) }

// View returns the popup content.
func (h *PopupHarness) View() string { return h.popup.View() }

// ViewContains reports whether a line of the view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return ContainsLine(h.View(), substr)
}

// SendMsg forwards msg and returns the command produced.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	h.record(cmd)
	return cmd
}

// SendKey presses a key given by name ("esc", "pgdown", "q").
func (h *PopupHarness) SendKey(name string) tea.Cmd {
	if t, ok := keyTypes[name]; ok {
		return h.SendMsg(tea.KeyMsg{Type: t})
	}
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
}

// SendEscape presses escape.
func (h *PopupHarness) SendEscape() tea.Cmd { return h.SendKey("esc") }

// SendDown presses the down arrow.
func (h *PopupHarness) SendDown() tea.Cmd { return h.SendKey("down") }

// LastCommand returns the most recent command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// LastAction runs the most recent command and returns the action it
// emitted, if any.
func (h *PopupHarness) LastAction() (action.Action, bool) {
	msg, ok := ExecuteCmd(h.LastCommand()).(action.Msg)
	if !ok {
		return nil, false
	}
	return msg.Action, true
}

// ExecuteAndSend runs cmd and feeds its message back to the popup.
func (h *PopupHarness) ExecuteAndSend(cmd tea.Cmd) (tea.Msg, tea.Cmd) {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil, nil
	}
	return msg, h.SendMsg(msg)
}
