// Package echarts draws surfaces with go-echarts. Marks are buffered and the
// chart is built when it is rendered, since echarts needs every series and
// the category axis up front.
package echarts

import (
	"fmt"
	"html/template"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/admpub/log"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/admpub/speedy-charts/pkg/chartutil"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

const Name = `echarts`

const (
	FormatHTML = `html`
	FormatJSON = `json`
)

func init() {
	surface.Register(Name, func(o surface.Options) (surface.Surface, error) {
		s, err := New(o)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// Chart is a built echarts chart, ready to be rendered on its own or added
// to a components.Page.
type Chart interface {
	components.Charter
	render.Renderer
	JSONNotEscaped() template.HTML
}

// Theme resolves a theme name to a go-echarts theme.
func Theme(name string) (string, error) {
	switch name {
	case ``, surface.DefaultTheme:
		return types.ThemeWesteros, nil
	case `white`, `dark`:
		return name, nil
	}
	if types.PresetTheme(name) {
		return name, nil
	}
	return ``, fmt.Errorf(`%w: %s`, surface.ErrUnknownTheme, name)
}

type markKind int

const (
	noMarks markKind = iota
	barMarks
	lineMarks
	scatterMarks
)

func (k markKind) String() string {
	switch k {
	case barMarks:
		return `bar`
	case lineMarks:
		return `line`
	case scatterMarks:
		return `scatter`
	}
	return `none`
}

type Surface struct {
	options    surface.Options
	theme      string
	kind       markKind
	bars       []surface.BarSeries
	lines      []surface.LineSeries
	scatters   []surface.ScatterSeries
	title      string
	axisLabels map[surface.Axis]string
	ticks      map[surface.Axis]surface.Ticks
	legend     surface.Legend
}

func New(o surface.Options) (*Surface, error) {
	theme, err := Theme(o.Theme)
	if err != nil {
		return nil, err
	}
	switch o.Format {
	case ``:
		o.Format = FormatHTML
	case FormatHTML, FormatJSON:
	default:
		return nil, fmt.Errorf(`%w: %s`, surface.ErrUnknownFormat, o.Format)
	}
	return &Surface{
		options:    o,
		theme:      theme,
		axisLabels: map[surface.Axis]string{},
		ticks:      map[surface.Axis]surface.Ticks{},
	}, nil
}

func (s *Surface) mark(kind markKind) error {
	if s.kind != noMarks && s.kind != kind {
		return fmt.Errorf(`%w: %s after %s`, surface.ErrMixedMarks, kind, s.kind)
	}
	s.kind = kind
	return nil
}

func (s *Surface) Bar(b surface.BarSeries) error {
	if err := b.Check(); err != nil {
		return err
	}
	if err := s.mark(barMarks); err != nil {
		return err
	}
	s.bars = append(s.bars, b)
	return nil
}

func (s *Surface) Line(l surface.LineSeries) error {
	if err := l.Check(); err != nil {
		return err
	}
	if err := s.mark(lineMarks); err != nil {
		return err
	}
	s.lines = append(s.lines, l)
	return nil
}

func (s *Surface) Scatter(p surface.ScatterSeries) error {
	if err := p.Check(); err != nil {
		return err
	}
	if err := s.mark(scatterMarks); err != nil {
		return err
	}
	s.scatters = append(s.scatters, p)
	return nil
}

func (s *Surface) SetTitle(title string) {
	s.title = title
}

func (s *Surface) SetAxisLabel(axis surface.Axis, label string) {
	s.axisLabels[axis] = label
}

func (s *Surface) SetTicks(axis surface.Axis, ticks surface.Ticks) {
	s.ticks[axis] = ticks
}

func (s *Surface) SetLegend(l surface.Legend) {
	s.legend = l
}

func (s *Surface) Legend() surface.Legend {
	return s.legend
}

// Build materialises the buffered marks into a go-echarts chart.
func (s *Surface) Build() (Chart, error) {
	switch s.kind {
	case lineMarks:
		return s.buildLine()
	case scatterMarks:
		return s.buildScatter()
	default:
		return s.buildBar()
	}
}

func (s *Surface) Render(w io.Writer) error {
	chart, err := s.Build()
	if err != nil {
		return err
	}
	if s.options.Format == FormatJSON {
		chart.Validate()
		_, err = io.WriteString(w, string(chart.JSONNotEscaped()))
		return err
	}
	return chart.Render(w)
}

func (s *Surface) globalOptions(trigger string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		chartutil.Initialization(s.theme, s.options.Width, s.options.Height, func(o *opts.Initialization) {
			if len(s.title) > 0 {
				o.PageTitle = s.title
			}
		}),
		chartutil.Title(s.title, ``),
		chartutil.Tooltip(trigger),
		chartutil.Legend(s.legend.Placement, s.legendNames()),
		chartutil.Grid(s.legend.Placement, s.options.Layout != surface.LayoutNone),
	}
}

func (s *Surface) legendNames() []string {
	if s.legend.Entries == nil {
		return nil
	}
	names := make([]string, len(s.legend.Entries))
	for i, e := range s.legend.Entries {
		names[i] = e.Label
	}
	return names
}

// seriesName names a single-colour series, falling back to the legend entry
// drawn in the same colour and then to its position.
func (s *Surface) seriesName(label string, c palette.Colour, index int) string {
	if len(label) > 0 {
		return label
	}
	if e, ok := s.legend.EntryFor(c); ok {
		return e.Label
	}
	return `series ` + strconv.Itoa(index+1)
}

// colourName names the split of a multi-coloured series drawn in colour c.
func (s *Surface) colourName(label string, c palette.Colour) string {
	if e, ok := s.legend.EntryFor(c); ok {
		return e.Label
	}
	if len(label) > 0 {
		return label + ` ` + c.Hex()
	}
	return c.Hex()
}

// categories returns the labels of a category axis and a function mapping a
// data position onto its slot. Ticks define the slots when set; otherwise
// every distinct position gets one.
func (s *Surface) categories(axis surface.Axis, positions [][]float64) ([]string, func(float64) int) {
	if t, ok := s.ticks[axis]; ok && len(t.Positions) > 0 {
		labels := make([]string, len(t.Positions))
		for i := range labels {
			if i < len(t.Labels) {
				labels[i] = t.Labels[i]
			} else {
				labels[i] = formatFloat(t.Positions[i])
			}
		}
		return labels, func(p float64) int {
			return nearest(t.Positions, p)
		}
	}
	seen := map[float64]struct{}{}
	var distinct []float64
	for _, ps := range positions {
		for _, p := range ps {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			distinct = append(distinct, p)
		}
	}
	sort.Float64s(distinct)
	labels := make([]string, len(distinct))
	for i, p := range distinct {
		labels[i] = formatFloat(p)
	}
	return labels, func(p float64) int {
		return sort.SearchFloat64s(distinct, p)
	}
}

func nearest(positions []float64, p float64) int {
	best, dist := 0, math.Inf(1)
	for i, q := range positions {
		if d := math.Abs(q - p); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func itemStyle(c palette.Colour) *opts.ItemStyle {
	return &opts.ItemStyle{Color: c.Hex()}
}

func (s *Surface) buildBar() (Chart, error) {
	horizontal := false
	positions := make([][]float64, len(s.bars))
	for i, b := range s.bars {
		horizontal = horizontal || b.Horizontal
		positions[i] = b.Positions
	}
	catAxis, valAxis := surface.AxisX, surface.AxisY
	if horizontal {
		catAxis, valAxis = surface.AxisY, surface.AxisX
	}
	labels, slot := s.categories(catAxis, positions)

	datas := chartutil.NewBarDatas()
	owners := map[string]int{}
	styled := map[string]bool{}
	for index, b := range s.bars {
		if b.Colours == nil {
			key := uniqueName(owners, s.seriesName(b.Label, b.Colour, index), index)
			for i, v := range b.Values {
				var value interface{} = v
				if math.IsNaN(v) {
					value = chartutil.Missing
				}
				datas.SetDatasMap(slot(b.Positions[i]), key, value, len(labels))
			}
			seriesOpts := []charts.SeriesOpts{charts.WithItemStyleOpts(*itemStyle(b.Colour))}
			if len(b.Stack) > 0 {
				seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: b.Stack}))
			}
			datas.SetSeriesOptions(key, seriesOpts...)
			continue
		}
		// One series per colour so the legend carries the category colours;
		// the splits share a stack so they keep to the slot centre.
		stack := b.Stack
		if len(stack) == 0 {
			stack = `split ` + strconv.Itoa(index)
		}
		for i, v := range b.Values {
			if math.IsNaN(v) {
				continue
			}
			c := b.Colours[i]
			name := s.colourName(b.Label, c)
			key := uniqueName(owners, name, index)
			if !styled[key] {
				styled[key] = true
				datas.SetSeriesOptions(key,
					charts.WithItemStyleOpts(*itemStyle(c)),
					charts.WithBarChartOpts(opts.BarChart{Stack: stack}),
				)
			}
			datas.SetDatasMap(slot(b.Positions[i]), key, v, len(labels), func(d *opts.BarData) {
				d.ItemStyle = itemStyle(c)
			})
		}
	}
	log.Debugf(`[echarts] bar chart %q: %d series over %d categories`, s.title, len(datas.Keys()), len(labels))

	ticks := s.ticks[catAxis]
	options := s.globalOptions(`axis`)
	if horizontal {
		options = append(options,
			chartutil.XAxis(chartutil.Axis{Name: s.axisLabels[valAxis], Type: `value`, Rotation: s.ticks[valAxis].Rotation}),
			chartutil.YAxis(chartutil.Axis{Name: s.axisLabels[catAxis], Type: `category`, Rotation: ticks.Rotation}),
		)
	} else {
		options = append(options,
			chartutil.XAxis(chartutil.Axis{Name: s.axisLabels[catAxis], Type: `category`, Rotation: ticks.Rotation}),
			chartutil.YAxis(chartutil.Axis{Name: s.axisLabels[valAxis], Type: `value`, Rotation: s.ticks[valAxis].Rotation}),
		)
	}
	bar, err := chartutil.NewBar(nil, options, labels, datas.AddSeries)
	if err != nil {
		return nil, err
	}
	if horizontal {
		bar.XYReversal()
	}
	return bar, nil
}

// uniqueName keeps series names apart across marks; repeats from the same
// mark (one colour split) share the name.
func uniqueName(owners map[string]int, name string, index int) string {
	key := name
	for n := 2; ; n++ {
		owner, ok := owners[key]
		if !ok {
			owners[key] = index
			return key
		}
		if owner == index {
			return key
		}
		key = name + ` (` + strconv.Itoa(n) + `)`
	}
}

func (s *Surface) buildLine() (Chart, error) {
	datas := chartutil.NewLineDatas()
	owners := map[string]int{}
	var labels []string
	ticks, categorical := s.ticks[surface.AxisX]
	categorical = categorical && len(ticks.Positions) > 0
	var slot func(float64) int
	if categorical {
		positions := make([][]float64, len(s.lines))
		for i, l := range s.lines {
			positions[i] = l.X
		}
		labels, slot = s.categories(surface.AxisX, positions)
	}
	for index, l := range s.lines {
		key := uniqueName(owners, s.seriesName(l.Label, l.Colour, index), index)
		for i, y := range l.Y {
			if math.IsNaN(y) {
				continue
			}
			if categorical {
				datas.SetDatasMap(slot(l.X[i]), key, y, len(labels))
				continue
			}
			datas.SetDatasMap(i, key, []float64{l.X[i], y}, len(l.Y))
		}
		hex := l.Colour.Hex()
		datas.SetSeriesOptions(key,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: hex}),
		)
	}
	log.Debugf(`[echarts] line chart %q: %d series`, s.title, len(datas.Keys()))

	xType := `value`
	if categorical {
		xType = `category`
	}
	options := append(s.globalOptions(`axis`),
		chartutil.XAxis(chartutil.Axis{Name: s.axisLabels[surface.AxisX], Type: xType, Rotation: ticks.Rotation}),
		chartutil.YAxis(chartutil.Axis{Name: s.axisLabels[surface.AxisY], Type: `value`, Rotation: s.ticks[surface.AxisY].Rotation}),
	)
	return chartutil.NewLine(nil, options, labels, datas.AddSeries)
}

func (s *Surface) buildScatter() (Chart, error) {
	datas := chartutil.NewScatterDatas()
	owners := map[string]int{}
	styled := map[string]bool{}
	ticks, categorical := s.ticks[surface.AxisX]
	categorical = categorical && len(ticks.Positions) > 0
	var labels []string
	slot := func(x float64) float64 { return x }
	if categorical {
		positions := make([][]float64, len(s.scatters))
		for i, p := range s.scatters {
			positions[i] = p.X
		}
		var index func(float64) int
		labels, index = s.categories(surface.AxisX, positions)
		slot = func(x float64) float64 { return float64(index(x)) }
	}
	for index, p := range s.scatters {
		for i, y := range p.Y {
			if math.IsNaN(y) || math.IsNaN(p.X[i]) {
				continue
			}
			c := p.ColourAt(i)
			name := s.seriesName(p.Label, c, index)
			if p.Colours != nil {
				name = s.colourName(p.Label, c)
			}
			key := uniqueName(owners, name, index)
			if !styled[key] {
				styled[key] = true
				datas.SetSeriesOptions(key, charts.WithItemStyleOpts(*itemStyle(c)))
			}
			datas.Append(key, slot(p.X[i]), y)
		}
	}
	log.Debugf(`[echarts] scatter chart %q: %d series`, s.title, len(datas.Keys()))

	xType := `value`
	if categorical {
		xType = `category`
	}
	options := append(s.globalOptions(`item`),
		chartutil.XAxis(chartutil.Axis{Name: s.axisLabels[surface.AxisX], Type: xType, Rotation: ticks.Rotation}),
		chartutil.YAxis(chartutil.Axis{Name: s.axisLabels[surface.AxisY], Type: `value`, Rotation: s.ticks[surface.AxisY].Rotation}),
	)
	scatter, err := chartutil.NewScatter(nil, options, datas.AddSeries)
	if err != nil {
		return nil, err
	}
	if categorical {
		scatter.SetXAxis(labels)
	}
	return scatter, nil
}
