package scene

import (
	"math"

	"honnef.co/go/curve"
)

// Projection maps data coordinates onto a w×h device grid using one
// uniform scale for both axes, so one data unit spans the same number
// of device units horizontally and vertically. The view rectangle is
// centered; the slack axis shows extra range. Device y grows downward.
type Projection struct {
	view   curve.Rect
	w, h   int
	scale  float64
	ox, oy float64
}

// NewProjection fits view into a w×h device. A degenerate view (zero
// width and height) maps its point to the device center at unit scale.
func NewProjection(view curve.Rect, w, h int) Projection {
	p := Projection{view: view.Abs(), w: w, h: h}
	vw, vh := p.view.Width(), p.view.Height()
	sx, sy := math.Inf(1), math.Inf(1)
	if vw > 0 {
		sx = float64(w) / vw
	}
	if vh > 0 {
		sy = float64(h) / vh
	}
	p.scale = min(sx, sy)
	if math.IsInf(p.scale, 1) {
		p.scale = 1
	}
	p.ox = (float64(w) - vw*p.scale) / 2
	p.oy = (float64(h) - vh*p.scale) / 2
	return p
}

// ToDevice maps a data point to device coordinates. Results may fall
// outside [0,w)×[0,h) for points beyond the view; callers clip.
func (p Projection) ToDevice(pt curve.Point) (float64, float64) {
	x := p.ox + (pt.X-p.view.X0)*p.scale
	y := p.oy + (p.view.Y1-pt.Y)*p.scale
	return x, y
}

// FromDevice inverts ToDevice, mapping device coordinates back to data
// space. Used for hover readouts.
func (p Projection) FromDevice(x, y float64) curve.Point {
	return curve.Pt(
		p.view.X0+(x-p.ox)/p.scale,
		p.view.Y1-(y-p.oy)/p.scale,
	)
}

// Scale returns device units per data unit.
func (p Projection) Scale() float64 { return p.scale }

// View returns the data rectangle the projection was fitted to.
func (p Projection) View() curve.Rect { return p.view }

// Visible returns the full data rectangle actually on the device,
// including the letterbox slack around the fitted view.
func (p Projection) Visible() curve.Rect {
	tl := p.FromDevice(0, 0)
	br := p.FromDevice(float64(p.w), float64(p.h))
	return curve.NewRectFromPoints(tl, br)
}
