// ABOUTME: Tests for the playback TUI model
// ABOUTME: Verifies status application, rendering and key handling
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInitialViewShowsLoading(t *testing.T) {
	m := NewModel(nil)
	if m.View() != "Loading..." {
		t.Errorf("expected loading view before window size, got %q", m.View())
	}
}

func TestApplyStatus(t *testing.T) {
	m := NewModel(nil)
	m.applyStatus(StatusMsg{
		Engine:     "null",
		DeviceID:   "0123456789abcdef",
		State:      "playing",
		SampleRate: 48000,
		Channels:   1,
		Format:     "f32",
		Source:     "tone 440Hz",
		Callbacks:  10,
		Frames:     4800,
		Underruns:  1,
	})

	if m.engine != "null" || m.state != "playing" {
		t.Errorf("status not applied: %+v", m)
	}
	if m.sampleRate != 48000 || m.channels != 1 || m.format != "f32" {
		t.Errorf("format not applied: %+v", m)
	}
	if m.frames != 4800 || m.callbacks != 10 || m.underruns != 1 {
		t.Errorf("stats not applied: %+v", m)
	}
	if m.started.IsZero() {
		t.Error("expected started timestamp once playing")
	}
}

func TestPartialStatusKeepsState(t *testing.T) {
	m := NewModel(nil)
	m.applyStatus(StatusMsg{Engine: "malgo", State: "playing", Source: "tone"})
	m.applyStatus(StatusMsg{Callbacks: 5, Frames: 2400})

	if m.engine != "malgo" || m.state != "playing" || m.source != "tone" {
		t.Errorf("earlier status lost: %+v", m)
	}
	if m.callbacks != 5 {
		t.Errorf("stats not applied: %+v", m)
	}
}

func TestViewRendersDeviceInfo(t *testing.T) {
	m := NewModel(nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	updated, _ = m.Update(StatusMsg{
		Engine:     "null",
		DeviceID:   "0123456789abcdef",
		State:      "playing",
		SampleRate: 48000,
		Channels:   1,
		Format:     "f32",
		Source:     "tone 440Hz",
	})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"playing", "48000Hz", "Mono", "tone 440Hz", "01234567"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestQuitKeySignals(t *testing.T) {
	quit := make(chan struct{}, 1)
	m := NewModel(quit)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}

	select {
	case <-quit:
	default:
		t.Error("expected quit signal")
	}
}

func TestDebugToggle(t *testing.T) {
	m := NewModel(nil)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)
	if !m.showDebug {
		t.Error("expected debug enabled after d")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)
	if m.showDebug {
		t.Error("expected debug disabled after second d")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	if got := truncate("a very long source description", 10); got != "a very ..." {
		t.Errorf("unexpected truncation %q", got)
	}
}
