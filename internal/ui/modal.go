package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Modal is a dialog drawn over the panes. While a modal is open it receives
// every message before the model does.
//
// Update returns the updated modal, a command, and true once the modal
// should close.
type Modal interface {
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// closeModalMsg asks the open modal to close itself.
type closeModalMsg struct{}

func closeModalAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return closeModalMsg{}
	})
}
