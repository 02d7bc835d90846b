// Package surface is the contract between the chart wrappers and the
// plotting libraries that do the actual drawing.
package surface

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/admpub/speedy-charts/pkg/legend"
	"github.com/admpub/speedy-charts/pkg/palette"
)

var (
	ErrUnsupported   = errors.New(`unsupported surface`)
	ErrUnknownTheme  = errors.New(`unknown theme`)
	ErrUnknownLayout = errors.New(`unknown layout`)
	ErrUnknownFormat = errors.New(`unknown output format`)
	ErrMixedMarks    = errors.New(`mixed mark kinds on one surface`)
	ErrSeriesLength  = errors.New(`series lengths differ`)
)

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return `y`
	}
	return `x`
}

// BarSeries is one series of bars. Positions are slot centres in data
// coordinates; Base is the bottom (or left, when Horizontal) of each bar.
type BarSeries struct {
	Label      string
	Positions  []float64
	Values     []float64
	Base       []float64
	Width      float64
	Colour     palette.Colour
	Colours    []palette.Colour // per bar; overrides Colour when set
	Horizontal bool
	Stack      string
}

type LineSeries struct {
	Label  string
	X, Y   []float64
	Colour palette.Colour
}

type ScatterSeries struct {
	Label   string
	X, Y    []float64
	Colour  palette.Colour
	Colours []palette.Colour // per point; overrides Colour when set
}

// Ticks places labelled ticks on an axis. Rotation is in degrees.
type Ticks struct {
	Positions []float64
	Labels    []string
	Rotation  float64
}

type LegendEntry struct {
	Label  string
	Colour palette.Colour
}

// Legend attaches a legend. With nil Entries the series labels are used.
type Legend struct {
	legend.Placement
	Entries []LegendEntry
}

// Surface is a drawing surface owned by a single plot call.
type Surface interface {
	Bar(BarSeries) error
	Line(LineSeries) error
	Scatter(ScatterSeries) error
	SetTitle(string)
	SetAxisLabel(Axis, string)
	SetTicks(Axis, Ticks)
	SetLegend(Legend)
	Legend() Legend
	Render(io.Writer) error
}

const (
	LayoutConstrained = `constrained`
	LayoutTight       = `tight`
	LayoutNone        = `none`
)

// Options configure a new surface.
type Options struct {
	Layout string
	Theme  string
	Width  int // pixels
	Height int // pixels
	Format string
}

const (
	DefaultWidth  = 900
	DefaultHeight = 500
	DefaultTheme  = `fivethirtyeight`
)

func (o *Options) SetDefaults() {
	if len(o.Layout) == 0 {
		o.Layout = LayoutConstrained
	}
	if len(o.Theme) == 0 {
		o.Theme = DefaultTheme
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
}

func (o Options) Validate() error {
	switch o.Layout {
	case LayoutConstrained, LayoutTight, LayoutNone:
		return nil
	}
	return fmt.Errorf(`%w: %s`, ErrUnknownLayout, o.Layout)
}

type Constructor func(Options) (Surface, error)

var surfaces = map[string]Constructor{}

func Register(name string, function Constructor) {
	surfaces[name] = function
}

// Names lists the registered backends.
func Names() []string {
	names := make([]string, 0, len(surfaces))
	for name := range surfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func New(name string, options Options) (Surface, error) {
	fn, ok := surfaces[name]
	if !ok {
		return nil, fmt.Errorf(`%w: %s`, ErrUnsupported, name)
	}
	options.SetDefaults()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	return fn(options)
}

// Check verifies that every per-mark slice of the series matches its values.
func (s BarSeries) Check() error {
	n := len(s.Values)
	if len(s.Positions) != n {
		return fmt.Errorf(`%w: %s has %d positions for %d values`, ErrSeriesLength, s.Label, len(s.Positions), n)
	}
	if s.Base != nil && len(s.Base) != n {
		return fmt.Errorf(`%w: %s has %d bases for %d values`, ErrSeriesLength, s.Label, len(s.Base), n)
	}
	if s.Colours != nil && len(s.Colours) != n {
		return fmt.Errorf(`%w: %s has %d colours for %d values`, ErrSeriesLength, s.Label, len(s.Colours), n)
	}
	return nil
}

func (s LineSeries) Check() error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf(`%w: %s has %d x and %d y values`, ErrSeriesLength, s.Label, len(s.X), len(s.Y))
	}
	return nil
}

func (s ScatterSeries) Check() error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf(`%w: %s has %d x and %d y values`, ErrSeriesLength, s.Label, len(s.X), len(s.Y))
	}
	if s.Colours != nil && len(s.Colours) != len(s.X) {
		return fmt.Errorf(`%w: %s has %d colours for %d points`, ErrSeriesLength, s.Label, len(s.Colours), len(s.X))
	}
	return nil
}

// BaseAt returns the base of bar i, zero when the series has no bases.
func (s BarSeries) BaseAt(i int) float64 {
	if s.Base == nil {
		return 0
	}
	return s.Base[i]
}

// ColourAt returns the colour of bar i.
func (s BarSeries) ColourAt(i int) palette.Colour {
	if s.Colours != nil {
		return s.Colours[i]
	}
	return s.Colour
}

func (s ScatterSeries) ColourAt(i int) palette.Colour {
	if s.Colours != nil {
		return s.Colours[i]
	}
	return s.Colour
}

// EntryFor finds the legend entry drawn in colour c.
func (l Legend) EntryFor(c palette.Colour) (LegendEntry, bool) {
	for _, e := range l.Entries {
		if e.Colour == c {
			return e, true
		}
	}
	return LegendEntry{}, false
}
