package scene

import (
	"math"
	"testing"

	"honnef.co/go/curve"
)

func TestProjectionUniformScale(t *testing.T) {
	// A 4x2 view in a 100x100 device: one scale for both axes, with
	// the vertical slack split evenly above and below.
	p := NewProjection(curve.Rect{X0: 0, Y0: 0, X1: 4, Y1: 2}, 100, 100)
	if got := p.Scale(); got != 25 {
		t.Fatalf("got scale %v, want 25", got)
	}
	check := func(pt curve.Point, wantX, wantY float64) {
		t.Helper()
		x, y := p.ToDevice(pt)
		if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 {
			t.Errorf("ToDevice(%v): got (%v, %v), want (%v, %v)", pt, x, y, wantX, wantY)
		}
	}
	// Top-left and bottom-right view corners, the center landing on
	// the device center, and one point showing y grows downward.
	check(curve.Pt(0, 2), 0, 25)
	check(curve.Pt(4, 0), 100, 75)
	check(curve.Pt(2, 1), 50, 50)
	check(curve.Pt(0, 0), 0, 75)
}

func TestProjectionFillsTightDevice(t *testing.T) {
	p := NewProjection(curve.Rect{X0: 0, Y0: 0, X1: 4, Y1: 2}, 100, 50)
	if got := p.Scale(); got != 25 {
		t.Fatalf("got scale %v, want 25", got)
	}
	x, y := p.ToDevice(curve.Pt(0, 2))
	if x != 0 || y != 0 {
		t.Errorf("got origin (%v, %v), want (0, 0)", x, y)
	}
}

func TestProjectionRoundTrip(t *testing.T) {
	p := NewProjection(curve.Rect{X0: -0.5, Y0: -0.5, X1: 3.5, Y1: 2.5}, 160, 96)
	for _, pt := range []curve.Point{
		curve.Pt(0, 0), curve.Pt(1.23, 0.77), curve.Pt(-0.5, 2.5), curve.Pt(3.5, -0.5),
	} {
		x, y := p.ToDevice(pt)
		back := p.FromDevice(x, y)
		if pt.Distance(back) > 1e-9 {
			t.Errorf("round trip of %v came back as %v", pt, back)
		}
	}
}

func TestProjectionDegenerateView(t *testing.T) {
	p := NewProjection(curve.Rect{X0: 3, Y0: 3, X1: 3, Y1: 3}, 80, 40)
	if got := p.Scale(); got != 1 {
		t.Fatalf("got scale %v, want 1", got)
	}
	x, y := p.ToDevice(curve.Pt(3, 3))
	if x != 40 || y != 20 {
		t.Errorf("got (%v, %v), want the device center (40, 20)", x, y)
	}
}

func TestProjectionVisibleCoversView(t *testing.T) {
	view := curve.Rect{X0: 0, Y0: 0, X1: 4, Y1: 2}
	p := NewProjection(view, 100, 100)
	vis := p.Visible()
	if vis.X0 > view.X0 || vis.Y0 > view.Y0 || vis.X1 < view.X1 || vis.Y1 < view.Y1 {
		t.Errorf("visible rect %v does not cover the view %v", vis, view)
	}
	// The letterbox slack goes to the short axis only.
	if math.Abs(vis.Width()-4) > 1e-9 {
		t.Errorf("got visible width %v, want 4", vis.Width())
	}
	if math.Abs(vis.Height()-4) > 1e-9 {
		t.Errorf("got visible height %v, want 4", vis.Height())
	}
}
