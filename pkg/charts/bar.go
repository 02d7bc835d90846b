package charts

import (
	"fmt"

	"github.com/admpub/speedy-charts/pkg/dataset"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

// Bar draws one bar per row. With a category column the bars take the colour
// of their category; raw sequences cycle through the palette.
type Bar struct {
	Chart
}

func (b *Bar) DefaultStyle() Style {
	return DefaultStyle()
}

func (b *Bar) Plot(st Style) (surface.Surface, error) {
	st = st.withDefaults(b.DefaultStyle())
	policy, err := st.policy()
	if err != nil {
		return nil, err
	}
	if b.Table == nil {
		return b.plotRaw(st)
	}
	if len(b.Y) != 1 {
		return nil, fmt.Errorf(`%w: a bar chart takes exactly one y column, got %d`, ErrShape, len(b.Y))
	}
	values, err := b.numeric(b.Y[0])
	if err != nil {
		return nil, err
	}
	positions, labels, err := b.slotAxis()
	if err != nil {
		return nil, err
	}
	assignment, err := b.assign(st.Palette)
	if err != nil {
		return nil, err
	}
	series := surface.BarSeries{
		Label:     b.Y[0],
		Positions: positions,
		Values:    values,
		Width:     DefaultBarWidth,
	}
	if assignment != nil {
		series.Colours = assignment.Colours()
	} else if series.Colour, err = firstColour(st.Palette); err != nil {
		return nil, err
	}

	s, err := st.newSurface()
	if err != nil {
		return nil, err
	}
	if err := s.Bar(series); err != nil {
		return nil, err
	}
	s.SetTicks(surface.AxisX, st.ticks(positions, labels))
	st.decorate(s)
	if assignment != nil {
		categoryLegend(s, policy, assignment.Table)
	} else {
		seriesLegend(s, policy, 1)
	}
	return s, nil
}

func (b *Bar) plotRaw(st Style) (surface.Surface, error) {
	if err := b.checkRaw(); err != nil {
		return nil, err
	}
	if len(b.RawX) != len(b.RawY) {
		return nil, fmt.Errorf(`%w: %d x values, %d y values`, ErrShape, len(b.RawX), len(b.RawY))
	}
	if len(st.Palette) == 0 {
		return nil, ErrEmptyPalette
	}
	labels := make([]string, len(b.RawX))
	colours := make([]palette.Colour, len(b.RawX))
	for i, v := range b.RawX {
		labels[i] = dataset.String(v)
		c, err := st.Palette.At(i)
		if err != nil {
			return nil, err
		}
		colours[i] = c
	}
	positions := slots(len(b.RawX))

	s, err := st.newSurface()
	if err != nil {
		return nil, err
	}
	if err := s.Bar(surface.BarSeries{
		Positions: positions,
		Values:    b.RawY,
		Width:     DefaultBarWidth,
		Colours:   colours,
	}); err != nil {
		return nil, err
	}
	s.SetTicks(surface.AxisX, st.ticks(positions, labels))
	st.decorate(s)
	return s, nil
}
