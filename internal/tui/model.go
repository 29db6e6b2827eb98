package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"honnef.co/go/curve"

	"strokeviz/internal/scene"
)

// Options tune the viewer.
type Options struct {
	// Margin is the view padding applied when a pasted dump is rebuilt
	// into a new scene.
	Margin float64
	// Grid enables the coordinate grid at startup.
	Grid bool
}

type Model struct {
	width  int
	height int

	sc   *scene.Scene
	opts Options

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// Segment list
	l      list.Model
	selSeg int // highlighted segment, -1 when none

	// last rendered canvas size (for inspect and hover)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showCurves  bool
	showMarkers bool
	showLabels  bool
	showHull    bool
	showGrid    bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering bool
	hoverX   float64
	hoverY   float64

	// control-point table
	showTable bool
	tbl       table.Model
}

func New(sc *scene.Scene, o Options) Model {
	m := Model{
		sc:          sc,
		opts:        o,
		helpVisible: true,
		zoom:        1.0,
		selSeg:      -1,
		status:      "strokeviz ready",
		showCurves:  true,
		showMarkers: true,
		showLabels:  true,
		showGrid:    o.Grid,
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Segments"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste Bézier debug output here. Finish with a line of only END, or press ctrl+s; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// control-point table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshSegments()
	m.refreshPoints()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("strokeviz — brush stroke visualization")
}

// viewportFor builds the data-to-cell mapping for a canvas of w by h
// cells under the current zoom and pan.
func (m Model) viewportFor(w, h int) viewport {
	return newViewport(m.sc.View, w, h, m.zoom, m.offsetX*2, m.offsetY*4)
}

// canvasSize computes the cell dimensions of the canvas area from the
// current window size, mirroring the View layout.
func (m Model) canvasSize() (int, int) {
	if m.width == 0 || m.height == 0 {
		return 80, 24
	}
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = sidebarW
	}
	contentHeight := m.height - 3
	if contentHeight < 4 {
		contentHeight = 4
	}
	mapWidth := max(10, m.width) - sidebarWidth - 1
	if mapWidth < 10 {
		mapWidth = 10
	}
	return max(8, mapWidth), max(4, contentHeight)
}

// centerOn pans so p lands on the canvas center at the current zoom.
func (m *Model) centerOn(p curve.Point) {
	w, h := m.canvasSize()
	vp := newViewport(m.sc.View, w, h, m.zoom, 0, 0)
	x, y := vp.dev(p)
	m.offsetX = int(vp.cx-x) / 2
	m.offsetY = int(vp.cy-y) / 4
}
