// ABOUTME: Bubbletea model for the playback TUI
// ABOUTME: Defines playback state display and update logic
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Device
	engine     string
	deviceID   string
	state      string
	sampleRate int
	channels   int
	format     string

	// Source
	source string

	// Data plane
	callbacks int64
	frames    int64
	underruns int64

	// Debug
	showDebug bool
	started   time.Time

	// Dimensions
	width  int
	height int

	quit chan struct{}
}

// StatusMsg updates TUI state
type StatusMsg struct {
	Engine     string
	DeviceID   string
	State      string
	SampleRate int
	Channels   int
	Format     string
	Source     string
	Callbacks  int64
	Frames     int64
	Underruns  int64
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderDeviceInfo()
	s += m.renderStats()

	if m.showDebug {
		s += m.renderDebug()
	}

	s += m.renderHelp()

	return s
}

// renderHeader renders the playback state line
func (m Model) renderHeader() string {
	state := m.state
	if state == "" {
		state = "idle"
	}

	return fmt.Sprintf(`┌─ Waveline Player ────────────────────────────────────┐
│ State:  %-45s │
│ Source: %-45s │
├──────────────────────────────────────────────────────┤
`, state, truncate(m.source, 45))
}

// renderDeviceInfo renders device and format details
func (m Model) renderDeviceInfo() string {
	if m.deviceID == "" {
		return "│ No device                                            │\n"
	}

	s := fmt.Sprintf("│ Device: %-45s │\n", fmt.Sprintf("%s (%s)", truncate(m.deviceID, 8), m.engine))
	s += fmt.Sprintf("│ Format: %dHz %s %s%-31s │\n",
		m.sampleRate, channelName(m.channels), m.format, "")

	return s
}

// renderStats renders data-plane statistics
func (m Model) renderStats() string {
	return fmt.Sprintf(`├──────────────────────────────────────────────────────┤
│ Stats:  Callbacks: %d  Frames: %d  Underruns: %d%-4s │
│                                                      │
`, m.callbacks, m.frames, m.underruns, "")
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return `│ d:Debug  q:Quit                                      │
└──────────────────────────────────────────────────────┘
`
}

// renderDebug renders debug information
func (m Model) renderDebug() string {
	uptime := time.Duration(0)
	if !m.started.IsZero() {
		uptime = time.Since(m.started).Round(time.Second)
	}
	return fmt.Sprintf(`│ DEBUG:                                               │
│   Uptime: %-42s │
│   Frames/callback: %-33s │
`, uptime, fmt.Sprintf("%d", perCallback(m.frames, m.callbacks)))
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.quit != nil {
			select {
			case m.quit <- struct{}{}:
			default:
			}
		}
		return m, tea.Quit
	case "d":
		m.showDebug = !m.showDebug
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Engine != "" {
		m.engine = msg.Engine
	}
	if msg.DeviceID != "" {
		m.deviceID = msg.DeviceID
	}
	if msg.State != "" {
		m.state = msg.State
		if msg.State == "playing" && m.started.IsZero() {
			m.started = time.Now()
		}
	}
	if msg.SampleRate != 0 {
		m.sampleRate = msg.SampleRate
		m.channels = msg.Channels
		m.format = msg.Format
	}
	if msg.Source != "" {
		m.source = msg.Source
	}
	if msg.Callbacks != 0 {
		m.callbacks = msg.Callbacks
		m.frames = msg.Frames
		m.underruns = msg.Underruns
	}
}

// Utility functions
func perCallback(frames, callbacks int64) int64 {
	if callbacks == 0 {
		return 0
	}
	return frames / callbacks
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}
