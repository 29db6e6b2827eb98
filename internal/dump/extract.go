// Package dump locates cubic Bézier records in free-form debug text.
//
// The producer prints one marker line per segment followed by four
// coordinate lines, optionally grouped under "Brush stroke" headers.
// Everything else in the dump is noise and is ignored.
package dump

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

// Marker is the literal prefix of a segment record line, compared
// case-sensitively against the trimmed line.
const Marker = "Bezier"

// strokeHeader starts a segment group in the producer's output.
const strokeHeader = "Brush stroke"

var (
	coordRe = regexp.MustCompile(`\(\s*(-?\d+\.?\d*)\s*,\s*(-?\d+\.?\d*)\s*\)`)
	colorRe = regexp.MustCompile(`r\s*=\s*(\d+)\s*,\s*g\s*=\s*(\d+)\s*,\s*b\s*=\s*(\d+)\s*,\s*a\s*=\s*(\d+)`)
)

// Stroke is a run of segments printed under one "Brush stroke" header.
// Color is nil when the header carried none or the segments preceded any
// header. The producer prints straight (non-premultiplied) channels.
type Stroke struct {
	Color    *color.NRGBA
	Segments []curve.CubicBez
}

// Extract scans text for segment records and returns them in order of
// appearance. A record is a marker line plus four following lines that
// each contain a coordinate pair; a candidate missing any of the four is
// dropped whole. Extract never fails: malformed input yields fewer
// segments, not an error.
func Extract(text string) []curve.CubicBez {
	var segs []curve.CubicBez
	for _, st := range ExtractStrokes(text) {
		segs = append(segs, st.Segments...)
	}
	return segs
}

// ExtractStrokes is Extract with the producer's grouping kept: each
// "Brush stroke" header starts a new group and may carry an RGBA color.
// Flattening the groups in order reproduces Extract exactly.
func ExtractStrokes(text string) []Stroke {
	lines := strings.Split(text, "\n")
	var strokes []Stroke
	var cur Stroke
	flush := func() {
		if len(cur.Segments) > 0 {
			strokes = append(strokes, cur)
		}
	}
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, strokeHeader) {
			flush()
			cur = Stroke{Color: sniffColor(t)}
			continue
		}
		if !strings.HasPrefix(t, Marker) {
			continue
		}
		// The four lines after the marker are consumed as-is, even if
		// one of them is itself a marker; that marker still gets its
		// own chance on a later iteration.
		seg, ok := record(lines, i)
		if !ok {
			continue
		}
		cur.Segments = append(cur.Segments, seg)
	}
	flush()
	return strokes
}

// record decodes the fixed window of four coordinate lines following the
// marker at index i. The first coordinate match on each line wins. A
// window cut short by the end of the text discards the candidate.
func record(lines []string, i int) (curve.CubicBez, bool) {
	if i+4 >= len(lines) {
		return curve.CubicBez{}, false
	}
	var pts [4]curve.Point
	for k := range pts {
		m := coordRe.FindStringSubmatch(lines[i+1+k])
		if m == nil {
			return curve.CubicBez{}, false
		}
		x, err1 := strconv.ParseFloat(m[1], 64)
		y, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return curve.CubicBez{}, false
		}
		pts[k] = curve.Pt(x, y)
	}
	return curve.CubicBez{P0: pts[0], P1: pts[1], P2: pts[2], P3: pts[3]}, true
}

func sniffColor(line string) *color.NRGBA {
	m := colorRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	var v [4]uint8
	for k, s := range m[1:] {
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil
		}
		v[k] = uint8(n)
	}
	return &color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}
}
