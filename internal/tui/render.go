package tui

import (
	"fmt"
	"strings"

	"honnef.co/go/curve"

	"strokeviz/internal/scene"
)

// renderCanvas replays the scene onto a fresh cell canvas at the
// current zoom, pan and layer set, then draws the extras the replay
// does not know about: control polygons and the selection highlight.
func (m Model) renderCanvas(w, h int) string {
	c := newCellCanvas(w, h, m.zoom, m.offsetX*2, m.offsetY*4)
	c.showCurves = m.showCurves
	c.showMarkers = m.showMarkers
	c.showLabels = m.showLabels
	c.showGrid = m.showGrid

	m.sc.Replay(c)

	if m.showHull {
		for _, cb := range m.sc.Segments {
			c.drawPolyline([]curve.Point{cb.P0, cb.P1, cb.P2, cb.P3}, hullCol)
		}
	}
	if m.selSeg >= 0 && m.selSeg < len(m.sc.Segments) {
		c.drawCubic(m.sc.Segments[m.selSeg], highlightCol)
	}
	return c.render()
}

// nearestSegment returns the segment closest to the canvas center in
// data space.
func (m Model) nearestSegment() (int, bool) {
	if len(m.sc.Segments) == 0 {
		return 0, false
	}
	w, h := m.canvasSize()
	vp := m.viewportFor(w, h)
	center := vp.data(vp.cx, vp.cy)
	best, bestD := 0, 0.0
	for i, cb := range m.sc.Segments {
		d, _ := cb.Nearest(center, 1e-6)
		if i == 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, true
}

// inspectText formats the inspect popup for segment i.
func (m Model) inspectText(i int) string {
	cb := m.sc.Segments[i]
	ext := scene.SegmentExtent(cb)
	lines := []string{
		fmt.Sprintf("segment #%d", i),
		fmt.Sprintf("start %v", cb.P0),
		fmt.Sprintf("c1    %v", cb.P1),
		fmt.Sprintf("c2    %v", cb.P2),
		fmt.Sprintf("end   %v", cb.P3),
		fmt.Sprintf("chord %.4g", cb.P0.Distance(cb.P3)),
		fmt.Sprintf("extent x∈[%g, %g] y∈[%g, %g]", ext.X0, ext.X1, ext.Y0, ext.Y1),
	}
	return strings.Join(lines, "\n")
}
