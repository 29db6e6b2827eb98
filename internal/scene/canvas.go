package scene

import (
	"image/color"

	"honnef.co/go/curve"
)

// Style carries per-path drawing attributes. A nil Color means the
// surface's default curve color.
type Style struct {
	Color *color.NRGBA
}

// Canvas is the minimal drawing surface a scene replays onto: view
// setup, path verbs, point markers and text labels. Surfaces decide
// what a marker or a label looks like on their medium and own their
// "show" step.
type Canvas interface {
	SetViewBounds(b curve.Rect)
	BeginPath(st Style)
	MoveTo(p curve.Point)
	CubicTo(c1, c2, p curve.Point)
	StrokePath()
	MarkPoint(p curve.Point)
	PlaceLabel(p curve.Point, text string)
}
