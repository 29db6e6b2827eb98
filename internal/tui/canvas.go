package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"honnef.co/go/curve"

	"strokeviz/internal/scene"
)

// viewport maps data coordinates onto the canvas microgrid: the shared
// uniform projection fits the scene view, then zoom is applied about
// the device center and the pan offset shifts the result. Both the
// canvas and the model's hover/centering math go through it so they
// always agree.
type viewport struct {
	proj   scene.Projection
	zoom   float64
	panX   int // micro pixels
	panY   int
	cx, cy float64 // device center, micro pixels
	wMic   int
	hMic   int
}

func newViewport(view curve.Rect, w, h int, zoom float64, panX, panY int) viewport {
	wMic, hMic := w*2, h*4
	return viewport{
		proj: scene.NewProjection(view, wMic, hMic),
		zoom: zoom,
		panX: panX,
		panY: panY,
		cx:   float64(wMic) / 2,
		cy:   float64(hMic) / 2,
		wMic: wMic,
		hMic: hMic,
	}
}

// dev maps a data point to micro-pixel coordinates.
func (v viewport) dev(p curve.Point) (float64, float64) {
	x, y := v.proj.ToDevice(p)
	x = (x-v.cx)*v.zoom + v.cx + float64(v.panX)
	y = (y-v.cy)*v.zoom + v.cy + float64(v.panY)
	return x, y
}

func (v viewport) devInt(p curve.Point) (int, int) {
	x, y := v.dev(p)
	return int(math.Round(x)), int(math.Round(y))
}

// data inverts dev, mapping micro-pixel coordinates back to data space.
func (v viewport) data(x, y float64) curve.Point {
	x = (x-float64(v.panX)-v.cx)/v.zoom + v.cx
	y = (y-float64(v.panY)-v.cy)/v.zoom + v.cy
	return v.proj.FromDevice(x, y)
}

// visible returns the data rectangle currently on the canvas.
func (v viewport) visible() curve.Rect {
	tl := v.data(0, 0)
	br := v.data(float64(v.wMic), float64(v.hMic))
	return curve.NewRectFromPoints(tl, br)
}

// flatTol is the curve flattening tolerance in data units, chosen so
// the deviation stays under a fraction of a micro pixel.
func (v viewport) flatTol() float64 {
	s := v.proj.Scale() * v.zoom
	if s <= 0 {
		return 0.1
	}
	return 0.3 / s
}

// overCell is a text overlay on top of the braille layer: control-point
// marks and segment index labels.
type overCell struct {
	r  rune
	st lipgloss.Style
}

// cellCanvas implements scene.Canvas on a braille cell grid. Layer
// flags let the model drop curves, markers or labels from the replay
// without touching the scene.
type cellCanvas struct {
	w, h int
	vp   viewport
	br   *brailleBuf
	base [][]rune // grid dots and axis tick labels, under the braille layer
	ov   [][]overCell

	showCurves  bool
	showMarkers bool
	showLabels  bool
	showGrid    bool

	pal    []lipgloss.Style // braille palette, indexed by brailleBuf cell color
	curPal uint8
	cur    curve.Point
	skip   bool // current path invisible (curves layer off)
	marks  int
}

func newCellCanvas(w, h int, zoom float64, panX, panY int) *cellCanvas {
	base := make([][]rune, h)
	ov := make([][]overCell, h)
	for y := range base {
		base[y] = make([]rune, w)
		ov[y] = make([]overCell, w)
		for x := range base[y] {
			base[y][x] = ' '
		}
	}
	return &cellCanvas{
		w:           w,
		h:           h,
		vp:          viewport{zoom: zoom, panX: panX, panY: panY},
		br:          newBrailleBuf(w, h),
		base:        base,
		ov:          ov,
		showCurves:  true,
		showMarkers: true,
		showLabels:  true,
	}
}

func (c *cellCanvas) SetViewBounds(b curve.Rect) {
	zoom, panX, panY := c.vp.zoom, c.vp.panX, c.vp.panY
	c.vp = newViewport(b, c.w, c.h, zoom, panX, panY)
	if c.showGrid {
		c.drawGrid()
	}
}

func (c *cellCanvas) BeginPath(st scene.Style) {
	c.skip = !c.showCurves
	col := curveCol
	if st.Color != nil {
		col = lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", st.Color.R, st.Color.G, st.Color.B))
	}
	c.curPal = c.slot(lipgloss.NewStyle().Foreground(col))
}

func (c *cellCanvas) MoveTo(p curve.Point) { c.cur = p }

func (c *cellCanvas) CubicTo(c1, c2, p curve.Point) {
	if !c.skip {
		var bp curve.BezPath
		bp.MoveTo(c.cur)
		bp.CubicTo(c1, c2, p)
		c.strokeFlat(bp, c.curPal)
	}
	c.cur = p
}

func (c *cellCanvas) StrokePath() {}

func (c *cellCanvas) MarkPoint(p curve.Point) {
	idx := c.marks
	c.marks++
	if !c.showMarkers {
		return
	}
	mx, my := c.vp.devInt(p)
	col := markerCols[idx/4%len(markerCols)]
	c.putRune(mx/2, my/4, 'x', lipgloss.NewStyle().Foreground(col))
}

func (c *cellCanvas) PlaceLabel(p curve.Point, text string) {
	if !c.showLabels {
		return
	}
	// one cell up and right of the anchor, clear of the marker there
	mx, my := c.vp.devInt(p)
	cx, cy := mx/2+1, my/4-1
	for i, r := range text {
		c.putRune(cx+i, cy, r, labelStyle)
	}
}

// strokeFlat flattens a path at the viewport tolerance and draws the
// resulting lines on the microgrid.
func (c *cellCanvas) strokeFlat(bp curve.BezPath, pal uint8) {
	var px, py int
	for el := range bp.Flatten(c.vp.flatTol()) {
		x, y := c.vp.devInt(el.P0)
		switch el.Kind {
		case curve.MoveToKind:
			px, py = x, y
		case curve.LineToKind:
			c.br.drawLineMicro(px, py, x, y, pal)
			px, py = x, y
		}
	}
}

// drawPolyline joins data points with straight microgrid lines; used
// for the control-polygon layer.
func (c *cellCanvas) drawPolyline(pts []curve.Point, col lipgloss.Color) {
	pal := c.slot(lipgloss.NewStyle().Foreground(col))
	px, py := c.vp.devInt(pts[0])
	for _, p := range pts[1:] {
		x, y := c.vp.devInt(p)
		c.br.drawLineMicro(px, py, x, y, pal)
		px, py = x, y
	}
}

// drawCubic re-strokes one segment in the given color, on top of
// whatever the replay drew; used for the selection highlight.
func (c *cellCanvas) drawCubic(cb curve.CubicBez, col lipgloss.Color) {
	var bp curve.BezPath
	bp.MoveTo(cb.P0)
	bp.CubicTo(cb.P1, cb.P2, cb.P3)
	c.strokeFlat(bp, c.slot(lipgloss.NewStyle().Foreground(col)))
}

// drawGrid writes grid dots and axis tick labels into the base layer.
// Ticks cover the whole visible range so the grid fills the canvas
// even in the letterbox slack.
func (c *cellCanvas) drawGrid() {
	vis := c.vp.visible()
	xticks := scene.Ticks(vis.X0, vis.X1, max(1, c.w/16))
	yticks := scene.Ticks(vis.Y0, vis.Y1, max(1, c.h/6))

	for _, v := range xticks {
		mx, _ := c.vp.devInt(curve.Pt(v, 0))
		gx := mx / 2
		if gx < 0 || gx >= c.w {
			continue
		}
		for y := 0; y < c.h; y++ {
			c.base[y][gx] = '·'
		}
	}
	for _, v := range yticks {
		_, my := c.vp.devInt(curve.Pt(0, v))
		gy := my / 4
		if gy < 0 || gy >= c.h {
			continue
		}
		for x := 0; x < c.w; x++ {
			c.base[gy][x] = '·'
		}
	}

	// axis value labels: x along the bottom row, y down the left edge
	for _, v := range xticks {
		mx, _ := c.vp.devInt(curve.Pt(v, 0))
		c.baseText(mx/2, c.h-1, formatTick(v))
	}
	for _, v := range yticks {
		_, my := c.vp.devInt(curve.Pt(0, v))
		c.baseText(0, my/4, formatTick(v))
	}
}

func (c *cellCanvas) baseText(x, y int, s string) {
	if y < 0 || y >= c.h {
		return
	}
	for i, r := range s {
		if x+i < 0 || x+i >= c.w {
			continue
		}
		c.base[y][x+i] = r
	}
}

func (c *cellCanvas) putRune(x, y int, r rune, st lipgloss.Style) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.ov[y][x] = overCell{r: r, st: st}
}

// slot interns a style in the braille palette.
func (c *cellCanvas) slot(st lipgloss.Style) uint8 {
	c.pal = append(c.pal, st)
	return uint8(len(c.pal) - 1)
}

// render composites base, braille and overlay layers into the final
// cell grid.
func (c *cellCanvas) render() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			if oc := c.ov[y][x]; oc.r != 0 {
				b.WriteString(oc.st.Render(string(oc.r)))
				continue
			}
			if r, pal := c.br.cell(x, y); r != ' ' {
				if int(pal) < len(c.pal) {
					b.WriteString(c.pal[pal].Render(string(r)))
				} else {
					b.WriteRune(r)
				}
				continue
			}
			if r := c.base[y][x]; r != ' ' {
				b.WriteString(dimStyle.Render(string(r)))
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
