package popup

import tea "github.com/charmbracelet/bubbletea"

// Popup is a modal component drawn over the main view. It receives every
// key while open and reports closing through an action message.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the content only; RenderBordered adds the frame.
	View() string

	SetSize(width, height int)
}
