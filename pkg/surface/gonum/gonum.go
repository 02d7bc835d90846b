// Package gonum draws surfaces with gonum.org/v1/plot and writes them as
// static images.
package gonum

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/admpub/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/admpub/speedy-charts/pkg/legend"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

const Name = `gonum`

const (
	FormatPNG = `png`
	FormatSVG = `svg`
	FormatPDF = `pdf`
)

// DefaultBarWidth is the bar width in data units when a series sets none.
const DefaultBarWidth = 0.8

func init() {
	surface.Register(Name, func(o surface.Options) (surface.Surface, error) {
		s, err := New(o)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

type theme struct {
	background color.Color
	grid       color.Color
}

var themes = map[string]theme{
	`fivethirtyeight`: {background: palette.MustParseHex(`#f0f0f0`), grid: palette.MustParseHex(`#cbcbcb`)},
	`ggplot`:          {background: palette.MustParseHex(`#e5e5e5`), grid: color.White},
	`classic`:         {background: color.White},
	`default`:         {background: color.White},
}

// Themes lists the theme names the backend accepts.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type entry struct {
	label string
	thumb plot.Thumbnailer
}

type Surface struct {
	options surface.Options
	plot    *plot.Plot
	series  []entry
	legend  surface.Legend
}

func New(o surface.Options) (*Surface, error) {
	th, ok := themes[strings.ToLower(o.Theme)]
	if !ok {
		return nil, fmt.Errorf(`%w: %s (gonum supports %s)`, surface.ErrUnknownTheme, o.Theme, strings.Join(Themes(), `, `))
	}
	switch o.Format {
	case ``:
		o.Format = FormatPNG
	case FormatPNG, FormatSVG, FormatPDF:
	default:
		return nil, fmt.Errorf(`%w: %s`, surface.ErrUnknownFormat, o.Format)
	}
	p := plot.New()
	p.BackgroundColor = th.background
	if th.grid != nil {
		grid := plotter.NewGrid()
		grid.Vertical.Color = th.grid
		grid.Horizontal.Color = th.grid
		p.Add(grid)
	}
	return &Surface{options: o, plot: p}, nil
}

func (s *Surface) addSeries(label string, thumb plot.Thumbnailer) {
	if len(label) > 0 {
		s.series = append(s.series, entry{label: label, thumb: thumb})
	}
}

func (s *Surface) Bar(b surface.BarSeries) error {
	if err := b.Check(); err != nil {
		return err
	}
	r := &rects{series: b}
	s.plot.Add(r)
	s.addSeries(b.Label, swatch(b.Colour))
	return nil
}

func (s *Surface) Line(l surface.LineSeries) error {
	if err := l.Check(); err != nil {
		return err
	}
	style := draw.LineStyle{Color: l.Colour, Width: vg.Points(2)}
	// Missing values break the line, as a gap.
	for _, seg := range segments(l.X, l.Y) {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return fmt.Errorf(`line %s: %w`, l.Label, err)
		}
		line.LineStyle = style
		s.plot.Add(line)
	}
	s.addSeries(l.Label, &plotter.Line{LineStyle: style})
	return nil
}

func (s *Surface) Scatter(p surface.ScatterSeries) error {
	if err := p.Check(); err != nil {
		return err
	}
	glyph := draw.GlyphStyle{Shape: draw.CircleGlyph{}, Radius: vg.Points(3), Color: p.Colour}
	var (
		pts     plotter.XYs
		colours []color.Color
	)
	for i := range p.X {
		if math.IsNaN(p.X[i]) || math.IsNaN(p.Y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: p.X[i], Y: p.Y[i]})
		colours = append(colours, p.ColourAt(i))
	}
	if len(pts) > 0 {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf(`scatter %s: %w`, p.Label, err)
		}
		sc.GlyphStyle = glyph
		if p.Colours != nil {
			sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				sty := glyph
				sty.Color = colours[i]
				return sty
			}
		}
		s.plot.Add(sc)
	}
	s.addSeries(p.Label, &plotter.Scatter{GlyphStyle: glyph})
	return nil
}

// segments splits x/y into runs of points without missing values.
func segments(x, y []float64) []plotter.XYs {
	var (
		r   []plotter.XYs
		cur plotter.XYs
	)
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			if len(cur) > 0 {
				r = append(r, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(cur) > 0 {
		r = append(r, cur)
	}
	return r
}

func (s *Surface) SetTitle(title string) {
	s.plot.Title.Text = title
}

func (s *Surface) axis(a surface.Axis) *plot.Axis {
	if a == surface.AxisY {
		return &s.plot.Y
	}
	return &s.plot.X
}

func (s *Surface) SetAxisLabel(a surface.Axis, label string) {
	s.axis(a).Label.Text = label
}

func (s *Surface) SetTicks(a surface.Axis, t surface.Ticks) {
	ax := s.axis(a)
	ticks := make(plot.ConstantTicks, len(t.Positions))
	for i, pos := range t.Positions {
		ticks[i].Value = pos
		if i < len(t.Labels) {
			ticks[i].Label = t.Labels[i]
		}
	}
	ax.Tick.Marker = ticks
	if t.Rotation != 0 {
		ax.Tick.Label.Rotation = t.Rotation * math.Pi / 180
		ax.Tick.Label.XAlign = draw.XRight
		ax.Tick.Label.YAlign = draw.YCenter
	}
}

func (s *Surface) SetLegend(l surface.Legend) {
	s.legend = l
}

func (s *Surface) Legend() surface.Legend {
	return s.legend
}

// legendEntries builds the legend from explicit entries or, when there are
// none, from the labelled series.
func (s *Surface) legendEntries() []entry {
	if s.legend.Entries == nil {
		return s.series
	}
	entries := make([]entry, len(s.legend.Entries))
	for i, e := range s.legend.Entries {
		entries[i] = entry{label: e.Label, thumb: swatch(e.Colour)}
	}
	return entries
}

// pixels converts screen pixels to vg lengths at 96 dpi.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}

func (s *Surface) Render(w io.Writer) error {
	width, height := pixels(s.options.Width), pixels(s.options.Height)
	c, err := draw.NewFormattedCanvas(width, height, s.options.Format)
	if err != nil {
		return fmt.Errorf(`%w: %v`, surface.ErrUnknownFormat, err)
	}
	s.draw(draw.New(c))
	_, err = c.WriteTo(w)
	return err
}

// legendPad separates an outside legend from the plot.
const legendPad = vg.Length(8)

func (s *Surface) draw(dc draw.Canvas) {
	entries := s.legendEntries()
	pl := s.legend.Placement
	if pl.Mode == legend.ModeNone || len(entries) == 0 {
		s.plot.Draw(dc)
		return
	}
	if pl.Mode == legend.ModeInside {
		s.plot.Legend = plot.NewLegend()
		for _, e := range entries {
			s.plot.Legend.Add(e.label, e.thumb)
		}
		s.plot.Legend.Top = legend.Vertical(pl.Loc) != `bottom`
		s.plot.Legend.Left = legend.Horizontal(pl.Loc) == `left`
		s.plot.Draw(dc)
		return
	}

	// gonum only draws legends inside the data area, so outside legends get a
	// strip of the canvas of their own.
	leg := plot.NewLegend()
	leg.Top, leg.Left = true, true
	for _, e := range entries {
		leg.Add(e.label, e.thumb)
	}
	size := dc.Rectangle.Size()
	box := leg.Rectangle(dc).Size()
	switch pl.Mode {
	case legend.ModeRight:
		strip := box.X + 2*legendPad
		s.plot.Draw(draw.Crop(dc, 0, -strip, 0, 0))
		leg.Draw(draw.Crop(dc, size.X-strip+legendPad, 0, 0, -legendPad))
	default:
		strip := box.Y + 2*legendPad
		s.plot.Draw(draw.Crop(dc, 0, 0, strip, 0))
		leg.XOffs = (size.X - box.X) / 2
		leg.Draw(draw.Crop(dc, 0, 0, legendPad, -(size.Y - strip + legendPad)))
	}
	log.Debugf(`[gonum] legend %s with %d entries`, pl.Mode, len(entries))
}

// swatch is a legend thumbnail filled with one colour.
func swatch(c color.Color) plot.Thumbnailer {
	return fill{colour: c}
}

type fill struct {
	colour color.Color
}

func (f fill) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(f.colour, c.ClipPolygonXY(pts))
}

// rects draws one bar series as filled rectangles in data coordinates.
type rects struct {
	series surface.BarSeries
}

func (r *rects) width() float64 {
	if r.series.Width > 0 {
		return r.series.Width
	}
	return DefaultBarWidth
}

// bounds returns the corners of bar i in data coordinates.
func (r *rects) bounds(i int) (x0, x1, y0, y1 float64) {
	half := r.width() / 2
	pos := r.series.Positions[i]
	base := r.series.BaseAt(i)
	top := base + r.series.Values[i]
	if r.series.Horizontal {
		return base, top, pos - half, pos + half
	}
	return pos - half, pos + half, base, top
}

func (r *rects) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, v := range r.series.Values {
		if math.IsNaN(v) {
			continue
		}
		x0, x1, y0, y1 := r.bounds(i)
		pts := []vg.Point{
			{X: trX(x0), Y: trY(y0)},
			{X: trX(x1), Y: trY(y0)},
			{X: trX(x1), Y: trY(y1)},
			{X: trX(x0), Y: trY(y1)},
		}
		c.FillPolygon(r.series.ColourAt(i), c.ClipPolygonXY(pts))
	}
}

func (r *rects) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i, v := range r.series.Values {
		if math.IsNaN(v) {
			continue
		}
		x0, x1, y0, y1 := r.bounds(i)
		xmin = math.Min(xmin, math.Min(x0, x1))
		xmax = math.Max(xmax, math.Max(x0, x1))
		ymin = math.Min(ymin, math.Min(y0, y1))
		ymax = math.Max(ymax, math.Max(y0, y1))
	}
	return
}
