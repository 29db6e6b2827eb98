// Package scene assembles extracted Bézier segments into a render model
// that any drawing surface can replay: stroked paths, control-point
// markers, segment index labels, and a fitted view rectangle.
package scene

import (
	"errors"
	"strconv"

	"honnef.co/go/curve"

	"strokeviz/internal/dump"
)

// ErrNoSegments is returned by Build for an empty extraction; nothing
// is ever drawn for it.
var ErrNoSegments = errors.New("scene: no segments to render")

// DefaultMargin is the absolute padding added around the data extent,
// in data units. Absolute rather than proportional so degenerate
// extents stay visible.
const DefaultMargin = 0.5

// Options tune how a scene is fitted.
type Options struct {
	// Margin is the absolute view padding in data units. Negative
	// values count as zero.
	Margin float64
}

// StrokePath is one stroke's worth of path elements under one style.
type StrokePath struct {
	Style Style
	Path  curve.BezPath
}

// Label pins a text annotation to a data-space anchor. Surfaces offset
// the text by a small device-space delta so it clears the marker drawn
// at the same spot.
type Label struct {
	At   curve.Point
	Text string
}

// Scene is the assembled, immutable render model. Build it once per
// extraction and replay it onto as many surfaces as needed.
type Scene struct {
	Strokes []StrokePath
	Markers []curve.Point
	Labels  []Label

	// Segments in draw order, for tables and inspection.
	Segments []curve.CubicBez

	// Extent is the control-point hull of all segments; View is Extent
	// padded by the margin. Surfaces must show at least View, equal
	// aspect, letterboxing the slack axis.
	Extent curve.Rect
	View   curve.Rect
}

// Build assembles strokes into a scene. Each segment becomes its own
// MoveTo+CubicTo subpath, so non-contiguous input shows up as visible
// jumps rather than being stitched together. Labels carry the global
// zero-based segment index.
func Build(strokes []dump.Stroke, o Options) (*Scene, error) {
	n := 0
	for _, st := range strokes {
		n += len(st.Segments)
	}
	if n == 0 {
		return nil, ErrNoSegments
	}
	m := o.Margin
	if m < 0 {
		m = 0
	}

	sc := &Scene{
		Markers:  make([]curve.Point, 0, 4*n),
		Labels:   make([]Label, 0, n),
		Segments: make([]curve.CubicBez, 0, n),
	}
	var ext curve.Rect
	for _, st := range strokes {
		if len(st.Segments) == 0 {
			continue
		}
		var style Style
		if st.Color != nil {
			c := *st.Color
			style.Color = &c
		}
		var path curve.BezPath
		for _, cb := range st.Segments {
			h := SegmentExtent(cb)
			if len(sc.Segments) == 0 {
				ext = h
			} else {
				ext = ext.Union(h)
			}
			path.MoveTo(cb.P0)
			path.CubicTo(cb.P1, cb.P2, cb.P3)
			sc.Markers = append(sc.Markers, cb.P0, cb.P1, cb.P2, cb.P3)
			sc.Labels = append(sc.Labels, Label{At: cb.P0, Text: strconv.Itoa(len(sc.Segments))})
			sc.Segments = append(sc.Segments, cb)
		}
		sc.Strokes = append(sc.Strokes, StrokePath{Style: style, Path: path})
	}
	sc.Extent = ext
	sc.View = ext.Inflate(m, m)
	return sc, nil
}

// Replay draws the scene onto c in layer order: view bounds, stroked
// paths, markers, labels, so annotations sit on top of the curves.
func (s *Scene) Replay(c Canvas) {
	c.SetViewBounds(s.View)
	for _, sp := range s.Strokes {
		c.BeginPath(sp.Style)
		for _, el := range sp.Path {
			switch el.Kind {
			case curve.MoveToKind:
				c.MoveTo(el.P0)
			case curve.CubicToKind:
				c.CubicTo(el.P0, el.P1, el.P2)
			}
		}
		c.StrokePath()
	}
	for _, p := range s.Markers {
		c.MarkPoint(p)
	}
	for _, l := range s.Labels {
		c.PlaceLabel(l.At, l.Text)
	}
}

// SegmentExtent returns the axis-aligned hull of the four control
// points. It can overestimate the curve itself; the view is fitted to
// control points, not to the tight curve bounds.
func SegmentExtent(cb curve.CubicBez) curve.Rect {
	r := curve.Rect{X0: cb.P0.X, Y0: cb.P0.Y, X1: cb.P0.X, Y1: cb.P0.Y}
	r = r.UnionPoint(cb.P1)
	r = r.UnionPoint(cb.P2)
	return r.UnionPoint(cb.P3)
}
