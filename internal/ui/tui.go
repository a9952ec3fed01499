// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the playback UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewModel creates a new TUI model. The quit channel receives one value
// when the user asks to exit.
func NewModel(quit chan struct{}) Model {
	return Model{
		state: "idle",
		quit:  quit,
	}
}

// Run starts the TUI
func Run(quit chan struct{}) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(quit), tea.WithAltScreen())
	return p, nil
}
