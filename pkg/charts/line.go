package charts

import (
	"fmt"

	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

// Line draws one line per y column, or one line through raw sequences.
type Line struct {
	Chart
}

func (l *Line) DefaultStyle() Style {
	return DefaultStyle()
}

func (l *Line) Plot(st Style) (surface.Surface, error) {
	st = st.withDefaults(l.DefaultStyle())
	policy, err := st.policy()
	if err != nil {
		return nil, err
	}
	var (
		xs     []float64
		labels []string
		lines  []surface.LineSeries
	)
	if l.Table == nil {
		if xs, labels, err = l.rawAxis(); err != nil {
			return nil, err
		}
		colour, err := firstColour(st.Palette)
		if err != nil {
			return nil, err
		}
		lines = append(lines, surface.LineSeries{X: xs, Y: l.RawY, Colour: colour})
	} else {
		if len(l.Y) == 0 {
			return nil, fmt.Errorf(`%w: supply at least one y column to create a line chart`, ErrShape)
		}
		var colours []palette.Colour
		if len(l.Y) == 1 {
			c, err := firstColour(st.Palette)
			if err != nil {
				return nil, err
			}
			colours = []palette.Colour{c}
		} else if colours, err = seriesColours(st.Palette, len(l.Y)); err != nil {
			return nil, err
		}
		if xs, labels, err = l.valueAxis(); err != nil {
			return nil, err
		}
		for j, name := range l.Y {
			ys, err := l.numeric(name)
			if err != nil {
				return nil, err
			}
			lines = append(lines, surface.LineSeries{Label: name, X: xs, Y: ys, Colour: colours[j]})
		}
	}

	s, err := st.newSurface()
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err := s.Line(line); err != nil {
			return nil, err
		}
	}
	if labels != nil {
		s.SetTicks(surface.AxisX, st.ticks(xs, labels))
	}
	st.decorate(s)
	seriesLegend(s, policy, len(lines))
	return s, nil
}
