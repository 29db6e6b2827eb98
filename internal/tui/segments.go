package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	"honnef.co/go/curve"

	"strokeviz/internal/scene"
)

type segItem struct {
	idx int
	cb  curve.CubicBez
}

func (s segItem) Title() string       { return fmt.Sprintf("#%d  %v → %v", s.idx, s.cb.P0, s.cb.P3) }
func (s segItem) Description() string { return "" }
func (s segItem) FilterValue() string { return s.Title() }

// refreshSegments rebuilds the sidebar list from the current scene.
func (m *Model) refreshSegments() {
	items := make([]list.Item, len(m.sc.Segments))
	for i, cb := range m.sc.Segments {
		items[i] = segItem{idx: i, cb: cb}
	}
	m.l.SetItems(items)
}

// focusSegment highlights segment i and centers the view on it.
func (m *Model) focusSegment(i int) {
	if i < 0 || i >= len(m.sc.Segments) {
		return
	}
	m.selSeg = i
	cb := m.sc.Segments[i]
	m.centerOn(scene.SegmentExtent(cb).Center())
	m.status = fmt.Sprintf("segment #%d", i)
}
