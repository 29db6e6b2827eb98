package tui

import (
	"fmt"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"strokeviz/internal/dump"
	"strokeviz/internal/export"
	"strokeviz/internal/scene"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarW-2, m.height-1-2) // provisional; refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showCurves = !m.showCurves
			m.status = fmt.Sprintf("curves: %v", m.showCurves)
		case "2":
			m.showMarkers = !m.showMarkers
			m.status = fmt.Sprintf("markers: %v", m.showMarkers)
		case "3":
			m.showLabels = !m.showLabels
			m.status = fmt.Sprintf("labels: %v", m.showLabels)
		case "4":
			m.showHull = !m.showHull
			m.status = fmt.Sprintf("control polygons: %v", m.showHull)
		case "g":
			m.showGrid = !m.showGrid
			m.status = fmt.Sprintf("grid: %v", m.showGrid)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.l.SetSize(sidebarW-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "t":
			m.showTable = !m.showTable
			if m.showTable {
				m.refreshPoints()
			}
		case "i":
			if i, ok := m.nearestSegment(); ok {
				m.selSeg = i
				m.inspectPopup = m.inspectText(i)
				m.status = "inspect popup"
			} else {
				m.inspectPopup = ""
				m.status = "no segments to inspect"
			}
		case "l":
			// toggle all layers
			all := m.showCurves && m.showMarkers && m.showLabels && m.showHull
			m.showCurves = !all
			m.showMarkers = !all
			m.showLabels = !all
			m.showHull = !all
			m.status = fmt.Sprintf("layers: curves=%v marks=%v labels=%v hull=%v",
				m.showCurves, m.showMarkers, m.showLabels, m.showHull)
		case "s":
			name := time.Now().Format("strokeviz-20060102-150405.png")
			if err := export.PNG(m.sc, name, export.Options{Grid: m.showGrid}); err != nil {
				m.status = "save error: " + err.Error()
			} else {
				m.status = "saved: " + name
			}
		case "esc":
			m.inspectPopup = ""
			m.showTable = false
			m.selSeg = -1
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(segItem); ok {
					m.focusSegment(it.idx)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		// track hover over the canvas area; layout must match View
		sidebarWidth := 0
		if m.showSidebar {
			sidebarWidth = sidebarW
		}
		headerHeight := 1
		footerHeight := 2
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 4 {
			contentHeight = 4
		}
		contentWidth := max(10, m.width)

		if m.showSidebar {
			m.l.SetSize(sidebarW-2, contentHeight-2)
		}

		mapWidth := contentWidth - sidebarWidth - 1
		if mapWidth < 10 {
			mapWidth = 10
		}
		mapHeight := contentHeight
		mapOriginX := sidebarWidth
		if m.showSidebar {
			mapOriginX++
		}
		mapOriginY := headerHeight
		cx, cy := msg.X, msg.Y
		if cx >= mapOriginX && cx < mapOriginX+mapWidth && cy >= mapOriginY && cy < mapOriginY+mapHeight {
			m.hovering = true
			vp := m.viewportFor(mapWidth, mapHeight)
			p := vp.data(float64((cx-mapOriginX)*2), float64((cy-mapOriginY)*4))
			m.hoverX, m.hoverY = p.X, p.Y
		} else {
			m.hovering = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showTable {
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updatePaste handles keys while the paste textarea is focused. A line
// holding only the END sentinel, or ctrl+s, submits the buffer and
// re-runs the whole pipeline on it.
func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "ctrl+s":
		return m.submitPaste()
	case "enter":
		lines := strings.Split(m.ta.Value(), "\n")
		if strings.TrimSpace(lines[len(lines)-1]) == dump.Sentinel {
			return m.submitPaste()
		}
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) submitPaste() (tea.Model, tea.Cmd) {
	text := m.ta.Value()
	if strings.TrimSpace(text) == "" {
		m.status = "paste: empty"
		return m, nil
	}
	strokes := dump.ExtractStrokes(text)
	sc, err := scene.Build(strokes, scene.Options{Margin: m.opts.Margin})
	if err != nil {
		// an empty extraction is a status-line diagnostic, not an exit
		m.status = "no Bézier segments found in input"
		return m, nil
	}
	m.sc = sc
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.selSeg = -1
	m.inspectPopup = ""
	m.refreshSegments()
	m.refreshPoints()
	m.status = fmt.Sprintf("rendered %d segment(s) in %d stroke(s)", len(sc.Segments), len(sc.Strokes))
	m.pasteMode = false
	m.ta.Blur()
	return m, nil
}
