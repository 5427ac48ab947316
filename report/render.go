package report

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gangmuk/bufferbloater/common"
	"github.com/gangmuk/bufferbloater/density"
)

var (
	Width  = 8 * vg.Inch
	Height = 8 * vg.Inch

	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 128, A: 255}
	black = color.RGBA{A: 255}
	cyan  = color.RGBA{G: 255, B: 255, A: 255}

	// legendAlpha is the opacity of a timeout class's legend swatch.
	legendAlpha = 0.7
)

// Formats lists the output formats Render accepts.
var Formats = []string{"pdf", "png", "svg", "eps", "jpg", "tif"}

// Render draws the two report panels, stacked over a shared time axis, and
// writes them to w in the given format.
func Render(w io.Writer, l *Layout, format string) error {
	c, err := draw.NewFormattedCanvas(Width, Height, format)
	if err != nil {
		return fmt.Errorf("report format %q: %w", format, err)
	}
	top, err := l.latencyPlot()
	if err != nil {
		return err
	}
	bottom, err := l.loadPlot()
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
		PadY:      vg.Millimeter * 6,
	}
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, draw.New(c))
	top.Draw(canvases[0][0])
	bottom.Draw(canvases[1][0])

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (l *Layout) latencyPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Request Latency (s)"
	p.Legend.Top = true

	if !l.Latency.Empty() {
		sc, err := plotter.NewScatter(xys(l.Latency))
		if err != nil {
			return nil, fmt.Errorf("latency scatter: %w", err)
		}
		sc.GlyphStyle.Color = blue
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(1)
		p.Add(sc)
		p.Legend.Add("observed latency", sc)
	}

	l.LatencyBounds.apply(p)
	return p, nil
}

func (l *Layout) loadPlot() (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Offered Load"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := l.addMarkers(p); err != nil {
		return nil, err
	}

	if !l.Load.Empty() {
		line, err := plotter.NewLine(xys(l.Load))
		if err != nil {
			return nil, fmt.Errorf("load line: %w", err)
		}
		line.Color = blue
		p.Add(line)
		p.Legend.Add("load", line)
	}
	if err := addLinePoints(p, "goodput", l.Goodput, green, draw.TriangleGlyph{}, nil); err != nil {
		return nil, err
	}
	if err := addLinePoints(p, "failure", l.Failure, black, draw.RingGlyph{},
		[]vg.Length{vg.Points(6), vg.Points(3)}); err != nil {
		return nil, err
	}
	if err := addLinePoints(p, "retries", l.Retry, cyan, draw.CrossGlyph{},
		[]vg.Length{vg.Points(1), vg.Points(2)}); err != nil {
		return nil, err
	}

	b := l.LoadBounds
	zero, err := plotter.NewLine(plotter.XYs{{X: b.XMin, Y: 0}, {X: b.XMax, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.Color = blue
	p.Add(zero)

	b.apply(p)
	p.Y.Tick.Marker = stepTicks(loadTick)
	return p, nil
}

// addMarkers draws one vertical segment per density bucket inside its
// class band, plus one legend entry per class that has markers.
func (l *Layout) addMarkers(p *plot.Plot) error {
	for _, markers := range [][]density.Marker{l.Timeouts, l.TimeoutOrigins} {
		for _, m := range markers {
			y0, y1 := l.LoadBounds.bandY(m.Class.Band)
			seg, err := plotter.NewLine(plotter.XYs{{X: m.Time, Y: y0}, {X: m.Time, Y: y1}})
			if err != nil {
				return fmt.Errorf("%s marker: %w", m.Class.Name, err)
			}
			seg.Color = m.Alpha()
			seg.Width = vg.Points(1)
			p.Add(seg)
		}
	}
	for _, class := range l.Classes() {
		swatch := density.Marker{Class: class, Intensity: legendAlpha}
		p.Legend.Add(class.Name, lineThumb(swatch.Alpha()))
	}
	return nil
}

func addLinePoints(p *plot.Plot, name string, s common.Series, c color.Color, shape draw.GlyphDrawer, dashes []vg.Length) error {
	if s.Empty() {
		return nil
	}
	line, points, err := plotter.NewLinePoints(xys(s))
	if err != nil {
		return fmt.Errorf("%s line: %w", name, err)
	}
	line.Color = c
	line.Dashes = dashes
	points.Color = c
	points.Shape = shape
	p.Add(line, points)
	p.Legend.Add(name, line, points)
	return nil
}

func (b Bounds) apply(p *plot.Plot) {
	p.X.Min, p.X.Max = b.XMin, b.XMax
	p.Y.Min, p.Y.Max = b.YMin, b.YMax
}

func xys(s common.Series) plotter.XYs {
	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}
	return pts
}

// lineThumb is a legend swatch drawn as a short solid line.
type lineThumb color.NRGBA

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(draw.LineStyle{Color: color.NRGBA(t), Width: vg.Points(2)}, c.Min.X, y, c.Max.X, y)
}

// stepTicks places major ticks at every multiple of its value, falling back
// to the default ticker when that would crowd the axis.
type stepTicks float64

const maxStepTicks = 40

func (s stepTicks) Ticks(min, max float64) []plot.Tick {
	step := float64(s)
	if step <= 0 || (max-min)/step > maxStepTicks {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	for v := math.Ceil(min/step) * step; v <= max; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}
	return ticks
}
