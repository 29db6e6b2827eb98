// Package export renders a scene to an annotated PNG through the gg
// software rasterizer. It is the headless counterpart of the terminal
// viewer: same assembled path, same extent, same tick positions.
package export

import (
	"fmt"
	"image"
	"strconv"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"honnef.co/go/curve"

	"strokeviz/internal/scene"
)

// Defaults for Options left at their zero values.
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	DefaultTitle  = "Brush Stroke Visualization"
)

// Plot-area insets, leaving room for the title and the axis tick labels.
const (
	insetLeft   = 64
	insetRight  = 24
	insetTop    = 48
	insetBottom = 48
)

// markerPalette colors the x markers, one color per segment, cycling.
var markerPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b",
}

// Options tune the exported image.
type Options struct {
	Width  int
	Height int
	Grid   bool
	Title  string
}

var (
	fontOnce sync.Once
	fontReg  *text.FontSource
	fontBold *text.FontSource
	fontErr  error
)

func fontSources() (*text.FontSource, *text.FontSource, error) {
	fontOnce.Do(func() {
		fontReg, fontErr = text.NewFontSource(goregular.TTF)
		if fontErr != nil {
			return
		}
		fontBold, fontErr = text.NewFontSource(gobold.TTF)
	})
	return fontReg, fontBold, fontErr
}

// PNG renders sc to path as an annotated raster: white background, the
// axes frame with tick labels, optional grid lines, the stroked curves,
// control-point markers and segment index labels.
func PNG(sc *scene.Scene, path string, o Options) error {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	title := o.Title
	if title == "" {
		title = DefaultTitle
	}
	plot := image.Rect(insetLeft, insetTop, w-insetRight, h-insetBottom)
	if plot.Dx() < 16 || plot.Dy() < 16 {
		return fmt.Errorf("export: image %dx%d leaves no room for the plot", w, h)
	}
	reg, bold, err := fontSources()
	if err != nil {
		return fmt.Errorf("export: loading fonts: %w", err)
	}

	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.White)
	rc := &rasterCanvas{
		dc:    dc,
		plot:  plot,
		tick:  reg.Face(12),
		label: bold.Face(13),
	}
	rc.SetViewBounds(sc.View)
	rc.drawFrame(o.Grid)

	dc.SetFont(reg.Face(17))
	dc.SetHexColor("#222222")
	dc.DrawStringAnchored(title, float64(w)/2, float64(insetTop)/2, 0.5, 0.5)
	dc.SetFont(reg.Face(13))
	dc.SetHexColor("#444444")
	dc.DrawStringAnchored("X", float64(plot.Min.X+plot.Max.X)/2, float64(h)-12, 0.5, 0.5)
	dc.DrawStringAnchored("Y", 18, float64(plot.Min.Y+plot.Max.Y)/2, 0.5, 0.5)

	sc.Replay(rc)
	if rc.err != nil {
		return fmt.Errorf("export: %w", rc.err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	Logger().Debug("wrote png", "path", path, "width", w, "height", h,
		"segments", len(sc.Segments))
	return nil
}

// rasterCanvas implements scene.Canvas on a gg context, mapping data
// coordinates into the plot area through the shared uniform projection.
type rasterCanvas struct {
	dc    *gg.Context
	plot  image.Rectangle
	proj  scene.Projection
	tick  text.Face
	label text.Face
	marks int
	err   error
}

func (rc *rasterCanvas) SetViewBounds(b curve.Rect) {
	rc.proj = scene.NewProjection(b, rc.plot.Dx(), rc.plot.Dy())
}

func (rc *rasterCanvas) BeginPath(st scene.Style) {
	rc.dc.ClearPath()
	if st.Color != nil {
		rc.dc.SetColor(*st.Color)
	} else {
		rc.dc.SetRGB(1, 0, 0)
	}
	rc.dc.SetLineWidth(2)
}

func (rc *rasterCanvas) MoveTo(p curve.Point) {
	x, y := rc.dev(p)
	rc.dc.MoveTo(x, y)
}

func (rc *rasterCanvas) CubicTo(c1, c2, p curve.Point) {
	x1, y1 := rc.dev(c1)
	x2, y2 := rc.dev(c2)
	x, y := rc.dev(p)
	rc.dc.CubicTo(x1, y1, x2, y2, x, y)
}

func (rc *rasterCanvas) StrokePath() {
	rc.stroke()
}

func (rc *rasterCanvas) MarkPoint(p curve.Point) {
	x, y := rc.dev(p)
	rc.dc.SetHexColor(markerPalette[rc.marks/4%len(markerPalette)])
	rc.marks++
	rc.dc.SetLineWidth(1.5)
	const r = 4
	rc.dc.DrawLine(x-r, y-r, x+r, y+r)
	rc.dc.DrawLine(x-r, y+r, x+r, y-r)
	rc.stroke()
}

func (rc *rasterCanvas) PlaceLabel(p curve.Point, s string) {
	x, y := rc.dev(p)
	rc.dc.SetFont(rc.label)
	rc.dc.SetHexColor("#222222")
	rc.dc.DrawStringAnchored(s, x+5, y-5, 0, 0.5)
}

// dev maps a data point to image pixels inside the plot area.
func (rc *rasterCanvas) dev(p curve.Point) (float64, float64) {
	x, y := rc.proj.ToDevice(p)
	return x + float64(rc.plot.Min.X), y + float64(rc.plot.Min.Y)
}

func (rc *rasterCanvas) stroke() {
	rc.dc.Stroke()
}

// drawFrame draws the axes box and tick labels, and with grid also the
// grid lines. Ticks cover the whole visible range, letterbox included,
// so the grid fills the plot.
func (rc *rasterCanvas) drawFrame(grid bool) {
	dc := rc.dc
	vis := rc.proj.Visible()
	xticks := scene.Ticks(vis.X0, vis.X1, rc.plot.Dx()/70)
	yticks := scene.Ticks(vis.Y0, vis.Y1, rc.plot.Dy()/45)

	if grid {
		dc.SetHexColor("#dddddd")
		dc.SetLineWidth(1)
		for _, v := range xticks {
			x, _ := rc.dev(curve.Pt(v, 0))
			dc.DrawLine(x, float64(rc.plot.Min.Y), x, float64(rc.plot.Max.Y))
		}
		for _, v := range yticks {
			_, y := rc.dev(curve.Pt(0, v))
			dc.DrawLine(float64(rc.plot.Min.X), y, float64(rc.plot.Max.X), y)
		}
		rc.stroke()
	}

	dc.SetFont(rc.tick)
	dc.SetHexColor("#444444")
	for _, v := range xticks {
		x, _ := rc.dev(curve.Pt(v, 0))
		dc.DrawStringAnchored(formatTick(v), x, float64(rc.plot.Max.Y)+5, 0.5, 1)
	}
	for _, v := range yticks {
		_, y := rc.dev(curve.Pt(0, v))
		dc.DrawStringAnchored(formatTick(v), float64(rc.plot.Min.X)-6, y, 1, 0.5)
	}

	dc.SetHexColor("#888888")
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(rc.plot.Min.X), float64(rc.plot.Min.Y),
		float64(rc.plot.Dx()), float64(rc.plot.Dy()))
	rc.stroke()
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
