package charts

import (
	"fmt"

	"github.com/admpub/speedy-charts/pkg/surface"
)

// Scatter draws one point per row, coloured by category or numeric bin when a
// category column is set.
type Scatter struct {
	Chart
}

func (p *Scatter) DefaultStyle() Style {
	st := DefaultStyle()
	st.Legend = true
	return st
}

func (p *Scatter) Plot(st Style) (surface.Surface, error) {
	st = st.withDefaults(p.DefaultStyle())
	policy, err := st.policy()
	if err != nil {
		return nil, err
	}
	if p.Table == nil {
		xs, labels, err := p.rawAxis()
		if err != nil {
			return nil, err
		}
		colour, err := firstColour(st.Palette)
		if err != nil {
			return nil, err
		}
		s, err := st.newSurface()
		if err != nil {
			return nil, err
		}
		if err := s.Scatter(surface.ScatterSeries{X: xs, Y: p.RawY, Colour: colour}); err != nil {
			return nil, err
		}
		if labels != nil {
			s.SetTicks(surface.AxisX, st.ticks(xs, labels))
		}
		st.decorate(s)
		return s, nil
	}

	if len(p.Y) != 1 {
		return nil, fmt.Errorf(`%w: a scatter chart takes exactly one y column, got %d`, ErrShape, len(p.Y))
	}
	ys, err := p.numeric(p.Y[0])
	if err != nil {
		return nil, err
	}
	xs, labels, err := p.valueAxis()
	if err != nil {
		return nil, err
	}
	assignment, err := p.assign(st.Palette)
	if err != nil {
		return nil, err
	}
	series := surface.ScatterSeries{Label: p.Y[0], X: xs, Y: ys}
	if assignment != nil {
		series.Colours = assignment.Colours()
	} else if series.Colour, err = firstColour(st.Palette); err != nil {
		return nil, err
	}

	s, err := st.newSurface()
	if err != nil {
		return nil, err
	}
	if err := s.Scatter(series); err != nil {
		return nil, err
	}
	if labels != nil {
		s.SetTicks(surface.AxisX, st.ticks(xs, labels))
	}
	st.decorate(s)
	if assignment != nil {
		categoryLegend(s, policy, assignment.Table)
	} else {
		seriesLegend(s, policy, 1)
	}
	return s, nil
}
