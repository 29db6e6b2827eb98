package scene

import (
	"errors"
	"image/color"
	"testing"

	"honnef.co/go/curve"

	"strokeviz/internal/dump"
)

// opCanvas records every verb replayed onto it.
type opCanvas struct {
	bounds curve.Rect
	ops    []string
	styles []Style
	moves  []curve.Point
	cubics [][3]curve.Point
	marks  []curve.Point
	labels []Label
}

func (rc *opCanvas) SetViewBounds(b curve.Rect) {
	rc.bounds = b
	rc.ops = append(rc.ops, "bounds")
}

func (rc *opCanvas) BeginPath(st Style) {
	rc.styles = append(rc.styles, st)
	rc.ops = append(rc.ops, "begin")
}

func (rc *opCanvas) MoveTo(p curve.Point) {
	rc.moves = append(rc.moves, p)
	rc.ops = append(rc.ops, "move")
}

func (rc *opCanvas) CubicTo(c1, c2, p curve.Point) {
	rc.cubics = append(rc.cubics, [3]curve.Point{c1, c2, p})
	rc.ops = append(rc.ops, "cubic")
}

func (rc *opCanvas) StrokePath() {
	rc.ops = append(rc.ops, "stroke")
}

func (rc *opCanvas) MarkPoint(p curve.Point) {
	rc.marks = append(rc.marks, p)
	rc.ops = append(rc.ops, "mark")
}

func (rc *opCanvas) PlaceLabel(p curve.Point, text string) {
	rc.labels = append(rc.labels, Label{At: p, Text: text})
	rc.ops = append(rc.ops, "label")
}

func seg(x0, y0, x1, y1, x2, y2, x3, y3 float64) curve.CubicBez {
	return curve.CubicBez{
		P0: curve.Pt(x0, y0),
		P1: curve.Pt(x1, y1),
		P2: curve.Pt(x2, y2),
		P3: curve.Pt(x3, y3),
	}
}

func one(segs ...curve.CubicBez) []dump.Stroke {
	return []dump.Stroke{{Segments: segs}}
}

func TestBuildRejectsEmpty(t *testing.T) {
	for _, strokes := range [][]dump.Stroke{nil, {}, {{Segments: nil}}} {
		if _, err := Build(strokes, Options{}); !errors.Is(err, ErrNoSegments) {
			t.Errorf("got %v, want ErrNoSegments", err)
		}
	}
}

func TestBuildSingleSegment(t *testing.T) {
	text := `Bezier 0
p0 (0, 0)
p1 (1, 2)
p2 (2, 2)
p3 (3, 0)`
	sc, err := Build(dump.ExtractStrokes(text), Options{Margin: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(sc.Strokes))
	}
	wantPath := curve.BezPath{
		curve.MoveTo(curve.Pt(0, 0)),
		curve.CubicTo(curve.Pt(1, 2), curve.Pt(2, 2), curve.Pt(3, 0)),
	}
	diff(t, wantPath, sc.Strokes[0].Path)
	if len(sc.Markers) != 4 {
		t.Errorf("got %d markers, want 4", len(sc.Markers))
	}
	wantLabels := []Label{{At: curve.Pt(0, 0), Text: "0"}}
	diff(t, wantLabels, sc.Labels)
	diff(t, curve.Rect{X0: 0, Y0: 0, X1: 3, Y1: 2}, sc.Extent)
	diff(t, curve.Rect{X0: -0.5, Y0: -0.5, X1: 3.5, Y1: 2.5}, sc.View)
}

func TestBuildExtentIsControlPointHull(t *testing.T) {
	// The curve itself stays below y=1 anyway, but the fit must come
	// from the control points, not from tight curve bounds.
	sc, err := Build(one(seg(0, 0, 1, 1, 2, 1, 3, 0)), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff(t, curve.Rect{X0: 0, Y0: 0, X1: 3, Y1: 1}, sc.Extent)
}

func TestBuildSubpathPerSegment(t *testing.T) {
	// Disjoint segments stay disjoint: every segment opens its own
	// subpath, so the gap between them renders as a jump.
	sc, err := Build(one(
		seg(0, 0, 1, 1, 2, 1, 3, 0),
		seg(10, 10, 11, 11, 12, 11, 13, 10),
	), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPath := curve.BezPath{
		curve.MoveTo(curve.Pt(0, 0)),
		curve.CubicTo(curve.Pt(1, 1), curve.Pt(2, 1), curve.Pt(3, 0)),
		curve.MoveTo(curve.Pt(10, 10)),
		curve.CubicTo(curve.Pt(11, 11), curve.Pt(12, 11), curve.Pt(13, 10)),
	}
	diff(t, wantPath, sc.Strokes[0].Path)
}

func TestBuildIndexesAcrossStrokes(t *testing.T) {
	strokes := []dump.Stroke{
		{Segments: []curve.CubicBez{
			seg(0, 0, 1, 1, 2, 1, 3, 0),
			seg(3, 0, 4, -1, 5, -1, 6, 0),
		}},
		{Segments: []curve.CubicBez{
			seg(6, 0, 7, 1, 8, 1, 9, 0),
		}},
	}
	sc, err := Build(strokes, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sc.Strokes) != 2 {
		t.Fatalf("got %d stroke paths, want 2", len(sc.Strokes))
	}
	var texts []string
	for _, l := range sc.Labels {
		texts = append(texts, l.Text)
	}
	diff(t, []string{"0", "1", "2"}, texts)
	if len(sc.Markers) != 12 {
		t.Errorf("got %d markers, want 12", len(sc.Markers))
	}
}

func TestBuildMarginClamp(t *testing.T) {
	sc, err := Build(one(seg(0, 0, 1, 1, 2, 1, 3, 0)), Options{Margin: -2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff(t, sc.Extent, sc.View)
}

func TestBuildCopiesStrokeColor(t *testing.T) {
	in := []dump.Stroke{{
		Color:    &color.NRGBA{R: 200, G: 10, B: 10, A: 255},
		Segments: []curve.CubicBez{seg(0, 0, 1, 1, 2, 1, 3, 0)},
	}}
	sc, err := Build(in, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := sc.Strokes[0].Style.Color
	if got == nil || *got != *in[0].Color {
		t.Fatalf("got color %v, want %v", got, in[0].Color)
	}
	if got == in[0].Color {
		t.Error("scene aliases the caller's color")
	}
}

func TestReplayOrder(t *testing.T) {
	sc, err := Build(one(seg(0, 0, 1, 2, 2, 2, 3, 0)), Options{Margin: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rc opCanvas
	sc.Replay(&rc)

	want := []string{"bounds", "begin", "move", "cubic", "stroke",
		"mark", "mark", "mark", "mark", "label"}
	diff(t, want, rc.ops)
	diff(t, sc.View, rc.bounds)
	diff(t, []curve.Point{curve.Pt(0, 0)}, rc.moves)
	diff(t, [][3]curve.Point{{curve.Pt(1, 2), curve.Pt(2, 2), curve.Pt(3, 0)}}, rc.cubics)
	diff(t, sc.Markers, rc.marks)
	diff(t, sc.Labels, rc.labels)
}

func TestSegmentExtent(t *testing.T) {
	f := func(cb curve.CubicBez, want curve.Rect) {
		t.Helper()
		if got := SegmentExtent(cb); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
	f(seg(0, 0, 1, 1, 2, 1, 3, 0), curve.Rect{X0: 0, Y0: 0, X1: 3, Y1: 1})
	// Control points outside the chord stretch the hull.
	f(seg(0, 0, -1, 4, 4, -2, 3, 0), curve.Rect{X0: -1, Y0: -2, X1: 4, Y1: 4})
	// Coincident points are legal and give a degenerate hull.
	f(seg(2, 2, 2, 2, 2, 2, 2, 2), curve.Rect{X0: 2, Y0: 2, X1: 2, Y1: 2})
}
