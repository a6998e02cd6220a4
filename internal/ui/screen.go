// Package ui is the terminal front end: tcell screen lifecycle, the
// wrap-aware text area, the status bar and the find/replace prompt
// line. It renders Frame snapshots handed over by the controller and
// never mutates document state itself.
package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/wenlu-dev/notepad/internal/config"
)

// Screen wraps a tcell.Screen with the lifecycle the notepad needs.
type Screen struct {
	tc tcell.Screen
}

// NewScreen opens and initializes the real terminal screen.
func NewScreen() (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := tc.Init(); err != nil {
		return nil, err
	}
	tc.EnablePaste()
	return &Screen{tc: tc}, nil
}

// NewSimulationScreen returns a screen backed by tcell's simulation
// backend, sized width x height. Used by tests.
func NewSimulationScreen(width, height int) (*Screen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, err
	}
	sim.SetSize(width, height)
	return &Screen{tc: sim}, nil
}

// Fini restores the terminal. Safe to call more than once.
func (s *Screen) Fini() { s.tc.Fini() }

// Size reports the current screen dimensions.
func (s *Screen) Size() (int, int) { return s.tc.Size() }

// PollEvent blocks for the next input event.
func (s *Screen) PollEvent() tcell.Event { return s.tc.PollEvent() }

// PostEvent injects an event into the queue. Background goroutines
// (config watcher, signals) use this to wake the event loop.
func (s *Screen) PostEvent(ev tcell.Event) {
	_ = s.tc.PostEvent(ev)
}

// Suspend releases the terminal, Resume reclaims it.
func (s *Screen) Suspend() error { return s.tc.Suspend() }
func (s *Screen) Resume() error  { return s.tc.Resume() }

// Beep rings the terminal bell.
func (s *Screen) Beep() { _ = s.tc.Beep() }

// Sim exposes the simulation backend for test assertions. Returns nil
// on a real terminal screen.
func (s *Screen) Sim() tcell.SimulationScreen {
	sim, _ := s.tc.(tcell.SimulationScreen)
	return sim
}

// ReloadEvent carries freshly loaded settings from the config watcher
// goroutine to the event loop, which applies them on its own thread.
type ReloadEvent struct {
	tcell.EventTime
	Settings config.Settings
}

// QuitEvent is posted by the signal handler.
type QuitEvent struct {
	tcell.EventTime
}

// AutosaveEvent is posted by the autosave ticker goroutine; the event
// loop performs the actual write.
type AutosaveEvent struct {
	tcell.EventTime
}
