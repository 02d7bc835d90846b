// Package charts turns a table and column names, or raw sequences, into a
// finished chart on a drawing surface: colours per category or numeric bin,
// stacked and grouped bar geometry and legend placement.
package charts

import (
	"errors"
	"fmt"

	"github.com/admpub/log"

	"github.com/admpub/speedy-charts/pkg/colourmap"
	"github.com/admpub/speedy-charts/pkg/dataset"
	"github.com/admpub/speedy-charts/pkg/legend"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
	_ "github.com/admpub/speedy-charts/pkg/surface/echarts"
)

var (
	ErrShape         = errors.New(`malformed series`)
	ErrNoTable       = errors.New(`a source table is required`)
	ErrEmptyPalette  = errors.New(`colour palette is empty`)
	ErrBinsNeedOrder = errors.New(`bins need a category order to name the ranges`)
	ErrNeedColumn    = errors.New(`bins and a category order need a category column`)
)

const (
	DefaultBackend   = `echarts`
	DefaultLegendLoc = `upper center`
	// DefaultBarWidth is the width of an ungrouped bar as a share of its slot.
	DefaultBarWidth = 0.8
	stackName       = `total`
)

// Chart holds the data of a chart: either Table with the X and Y column
// names or the RawX and RawY sequences. CategoryColumn colours rows by
// category; with Bins (ascending boundaries) it colours them by numeric
// range, and CategoryOrder names the ranges.
type Chart struct {
	X              string
	Y              []string
	Table          *dataset.Table
	RawX           []any
	RawY           []float64
	CategoryColumn string
	CategoryOrder  []string
	Bins           []float64
}

// Style configures one plot call. Empty fields take the chart's defaults,
// except Legend which is used as given: start from DefaultStyle.
type Style struct {
	XLabel       string
	YLabel       string
	Title        string
	Palette      palette.Palette
	Legend       bool
	LegendLoc    string
	LegendArea   string // "inside" or "outside"
	Theme        string
	Backend      string
	Layout       string
	Width        int
	Height       int
	Format       string
	TickRotation float64 // degrees
}

// Plotter is implemented by every chart type.
type Plotter interface {
	DefaultStyle() Style
	Plot(Style) (surface.Surface, error)
}

// DefaultStyle is the style shared by all charts before per-chart changes.
func DefaultStyle() Style {
	return Style{
		Palette:    palette.Default,
		LegendLoc:  DefaultLegendLoc,
		LegendArea: string(legend.Outside),
		Theme:      surface.DefaultTheme,
		Backend:    DefaultBackend,
		Layout:     surface.LayoutConstrained,
		Width:      surface.DefaultWidth,
		Height:     surface.DefaultHeight,
	}
}

func (st Style) withDefaults(def Style) Style {
	if st.Palette == nil {
		st.Palette = def.Palette
	}
	if len(st.LegendLoc) == 0 {
		st.LegendLoc = def.LegendLoc
	}
	if len(st.LegendArea) == 0 {
		st.LegendArea = def.LegendArea
	}
	if len(st.Theme) == 0 {
		st.Theme = def.Theme
	}
	if len(st.Backend) == 0 {
		st.Backend = def.Backend
	}
	if len(st.Layout) == 0 {
		st.Layout = def.Layout
	}
	if st.Width <= 0 {
		st.Width = def.Width
	}
	if st.Height <= 0 {
		st.Height = def.Height
	}
	return st
}

func (st Style) policy() (legend.Policy, error) {
	area, err := legend.ParseArea(st.LegendArea)
	if err != nil {
		return legend.Policy{}, err
	}
	return legend.Policy{Show: st.Legend, Loc: st.LegendLoc, Area: area}, nil
}

func (st Style) newSurface() (surface.Surface, error) {
	log.Debugf(`colour palette: %v`, []string(st.Palette))
	return surface.New(st.Backend, surface.Options{
		Layout: st.Layout,
		Theme:  st.Theme,
		Width:  st.Width,
		Height: st.Height,
		Format: st.Format,
	})
}

// decorate sets the title and axis captions.
func (st Style) decorate(s surface.Surface) {
	s.SetTitle(st.Title)
	s.SetAxisLabel(surface.AxisX, st.XLabel)
	s.SetAxisLabel(surface.AxisY, st.YLabel)
}

// seriesLegend attaches a legend built from the series labels. A single
// series gets none.
func seriesLegend(s surface.Surface, p legend.Policy, series int) {
	if !p.Show || series < 2 {
		return
	}
	s.SetLegend(surface.Legend{Placement: legend.Place(p, series)})
}

// categoryLegend attaches one legend entry per category of the colour table.
func categoryLegend(s surface.Surface, p legend.Policy, table *colourmap.Table) {
	if !p.Show {
		return
	}
	entries := make([]surface.LegendEntry, 0, table.Len())
	for _, e := range table.Entries() {
		entries = append(entries, surface.LegendEntry{Label: e.Label, Colour: e.Colour})
	}
	s.SetLegend(surface.Legend{Placement: legend.Place(p, len(entries)), Entries: entries})
}

func firstColour(pal palette.Palette) (palette.Colour, error) {
	if len(pal) == 0 {
		return palette.Colour{}, ErrEmptyPalette
	}
	return palette.ParseHex(pal[0])
}

// seriesColours returns one colour per series, rejecting palettes that are
// too short.
func seriesColours(pal palette.Palette, series int) ([]palette.Colour, error) {
	if len(pal) == 0 {
		return nil, ErrEmptyPalette
	}
	if series > len(pal) {
		return nil, fmt.Errorf(`%w: %d y columns, %d colours in the palette, provide a larger palette`, colourmap.ErrPaletteTooSmall, series, len(pal))
	}
	return pal[:series].Colours()
}

// assign resolves the row colours of a categorised chart. It returns nil
// when the chart has no category column.
func (c Chart) assign(pal palette.Palette) (*colourmap.Assignment, error) {
	if len(c.Bins) > 0 && len(c.CategoryOrder) == 0 {
		return nil, ErrBinsNeedOrder
	}
	if len(c.CategoryColumn) == 0 {
		if len(c.Bins) > 0 {
			return nil, fmt.Errorf(`%w: %d bins given`, ErrNeedColumn, len(c.Bins))
		}
		return nil, nil
	}
	if len(pal) == 0 {
		return nil, ErrEmptyPalette
	}
	if len(c.Bins) > 0 {
		return colourmap.Binned(c.Table, c.CategoryColumn, pal, colourmap.Bins{
			Boundaries: c.Bins,
			Labels:     c.CategoryOrder,
		})
	}
	return colourmap.Categorical(c.Table, c.CategoryColumn, pal, c.CategoryOrder)
}

func (c Chart) numeric(name string) ([]float64, error) {
	col, err := c.Table.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind() != dataset.Numeric {
		return nil, fmt.Errorf(`%w: y column %s`, colourmap.ErrNotNumeric, name)
	}
	return col.Floats(), nil
}

// slots places n categories at 0..n-1.
func slots(n int) []float64 {
	r := make([]float64, n)
	for i := range r {
		r[i] = float64(i)
	}
	return r
}

// slotAxis returns the slot positions of the x column and its tick labels.
func (c Chart) slotAxis() ([]float64, []string, error) {
	col, err := c.Table.Column(c.X)
	if err != nil {
		return nil, nil, err
	}
	return slots(col.Len()), col.Strings(), nil
}

// valueAxis returns the x column as coordinates. Numeric columns are used as
// they are; anything else is put on slots and comes with tick labels.
func (c Chart) valueAxis() ([]float64, []string, error) {
	col, err := c.Table.Column(c.X)
	if err != nil {
		return nil, nil, err
	}
	if col.Kind() == dataset.Numeric {
		return col.Floats(), nil, nil
	}
	return slots(col.Len()), col.Strings(), nil
}

// checkRaw rejects raw input that is empty or asks for table features.
func (c Chart) checkRaw() error {
	if len(c.RawX) == 0 && len(c.RawY) == 0 {
		return fmt.Errorf(`%w: no table and no raw x/y values given`, ErrNoTable)
	}
	if len(c.CategoryColumn) > 0 || len(c.Bins) > 0 {
		return fmt.Errorf(`%w: colouring by category needs a table`, ErrNoTable)
	}
	return nil
}

// rawAxis is valueAxis for raw sequences.
func (c Chart) rawAxis() ([]float64, []string, error) {
	if err := c.checkRaw(); err != nil {
		return nil, nil, err
	}
	if len(c.RawX) != len(c.RawY) {
		return nil, nil, fmt.Errorf(`%w: %d x values, %d y values`, ErrShape, len(c.RawX), len(c.RawY))
	}
	numeric := true
	for _, v := range c.RawX {
		if !dataset.IsNumber(v) {
			numeric = false
			break
		}
	}
	labels := make([]string, len(c.RawX))
	xs := make([]float64, len(c.RawX))
	for i, v := range c.RawX {
		labels[i] = dataset.String(v)
		xs[i] = dataset.Float64(v)
	}
	if numeric {
		return xs, nil, nil
	}
	return slots(len(c.RawX)), labels, nil
}

func (st Style) ticks(positions []float64, labels []string) surface.Ticks {
	return surface.Ticks{Positions: positions, Labels: labels, Rotation: st.TickRotation}
}
