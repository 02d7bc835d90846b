package charts

import (
	"fmt"
	"math"

	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

// multi holds what every multi-series bar chart validates before drawing.
type multi struct {
	positions []float64
	labels    []string
	values    [][]float64
	colours   []palette.Colour
}

func (c Chart) multi(kind string, st Style) (*multi, error) {
	if c.Table == nil {
		return nil, fmt.Errorf(`%w: supply a table to create a %s chart`, ErrNoTable, kind)
	}
	if len(c.Y) == 0 {
		return nil, fmt.Errorf(`%w: supply a list of y columns to create a %s chart`, ErrShape, kind)
	}
	colours, err := seriesColours(st.Palette, len(c.Y))
	if err != nil {
		return nil, err
	}
	positions, labels, err := c.slotAxis()
	if err != nil {
		return nil, err
	}
	m := &multi{positions: positions, labels: labels, colours: colours}
	for _, name := range c.Y {
		values, err := c.numeric(name)
		if err != nil {
			return nil, err
		}
		m.values = append(m.values, values)
	}
	return m, nil
}

// GroupOffsets returns the bar width of n grouped series and the offset of
// series j from its slot.
func GroupOffsets(n int) (width float64, offsets []float64) {
	width = 1 / float64(n+1)
	offsets = make([]float64, n)
	for j := range offsets {
		offsets[j] = width * float64(j)
	}
	return
}

// Baselines returns, for every series, the running total of the series
// before it. NaN values add nothing.
func Baselines(values [][]float64) [][]float64 {
	if len(values) == 0 {
		return nil
	}
	bases := make([][]float64, len(values))
	running := make([]float64, len(values[0]))
	for j, series := range values {
		bases[j] = append([]float64(nil), running...)
		for i, v := range series {
			if !math.IsNaN(v) {
				running[i] += v
			}
		}
	}
	return bases
}

// GroupedBar draws the y columns side by side in each slot.
type GroupedBar struct {
	Chart
}

func (g *GroupedBar) DefaultStyle() Style {
	st := DefaultStyle()
	st.Legend = true
	return st
}

func (g *GroupedBar) Plot(st Style) (surface.Surface, error) {
	st = st.withDefaults(g.DefaultStyle())
	policy, err := st.policy()
	if err != nil {
		return nil, err
	}
	m, err := g.multi(`grouped bar`, st)
	if err != nil {
		return nil, err
	}
	n := len(g.Y)
	width, offsets := GroupOffsets(n)

	s, err := st.newSurface()
	if err != nil {
		return nil, err
	}
	for j, name := range g.Y {
		positions := make([]float64, len(m.positions))
		for i, p := range m.positions {
			positions[i] = p + offsets[j]
		}
		if err := s.Bar(surface.BarSeries{
			Label:     name,
			Positions: positions,
			Values:    m.values[j],
			Width:     width,
			Colour:    m.colours[j],
		}); err != nil {
			return nil, err
		}
	}
	ticks := make([]float64, len(m.positions))
	for i, p := range m.positions {
		ticks[i] = (p - 0.5*width) + width*float64(n)/2
	}
	s.SetTicks(surface.AxisX, st.ticks(ticks, m.labels))
	st.decorate(s)
	seriesLegend(s, policy, n)
	return s, nil
}

// StackedBar stacks the y columns on top of each other in each slot.
type StackedBar struct {
	Chart
}

func (b *StackedBar) DefaultStyle() Style {
	st := DefaultStyle()
	st.Legend = true
	return st
}

func (b *StackedBar) Plot(st Style) (surface.Surface, error) {
	return plotStacked(b.Chart, st.withDefaults(b.DefaultStyle()), false)
}

// HorizontalStackedBar is StackedBar with the categories on the y axis.
type HorizontalStackedBar struct {
	Chart
}

func (b *HorizontalStackedBar) DefaultStyle() Style {
	st := DefaultStyle()
	st.Legend = true
	st.LegendLoc = `lower center`
	return st
}

func (b *HorizontalStackedBar) Plot(st Style) (surface.Surface, error) {
	return plotStacked(b.Chart, st.withDefaults(b.DefaultStyle()), true)
}

func plotStacked(c Chart, st Style, horizontal bool) (surface.Surface, error) {
	policy, err := st.policy()
	if err != nil {
		return nil, err
	}
	kind := `stacked bar`
	if horizontal {
		kind = `horizontal stacked bar`
	}
	m, err := c.multi(kind, st)
	if err != nil {
		return nil, err
	}
	bases := Baselines(m.values)

	s, err := st.newSurface()
	if err != nil {
		return nil, err
	}
	for j, name := range c.Y {
		if err := s.Bar(surface.BarSeries{
			Label:      name,
			Positions:  m.positions,
			Values:     m.values[j],
			Base:       bases[j],
			Width:      DefaultBarWidth,
			Colour:     m.colours[j],
			Horizontal: horizontal,
			Stack:      stackName,
		}); err != nil {
			return nil, err
		}
	}
	axis := surface.AxisX
	if horizontal {
		axis = surface.AxisY
	}
	s.SetTicks(axis, st.ticks(m.positions, m.labels))
	st.decorate(s)
	seriesLegend(s, policy, len(c.Y))
	return s, nil
}
