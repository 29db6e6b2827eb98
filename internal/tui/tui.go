// Package tui is the interactive terminal viewer: it replays an
// assembled scene onto a braille cell canvas with zoom, pan, layer
// toggles, a segment sidebar, a control-point table and an in-app
// paste mode that re-runs the extraction pipeline.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"strokeviz/internal/scene"
)

// Show presents the scene and blocks until the viewer quits. Extra
// program options are appended after the defaults, so callers can
// redirect input to a tty when stdin was consumed by the dump.
func Show(sc *scene.Scene, o Options, progOpts ...tea.ProgramOption) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}, progOpts...)
	_, err := tea.NewProgram(New(sc, o), opts...).Run()
	return err
}
