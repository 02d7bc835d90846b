package charts

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admpub/speedy-charts/pkg/colourmap"
	"github.com/admpub/speedy-charts/pkg/dataset"
	"github.com/admpub/speedy-charts/pkg/legend"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
	"github.com/admpub/speedy-charts/pkg/surface/gonum"
	"github.com/admpub/speedy-charts/pkg/surface/surfacetest"
)

var quad = palette.Palette{`#12436D`, `#28A197`, `#801650`, `#F46A25`}

func players(t *testing.T) *dataset.Table {
	tb, err := dataset.FromRows([]string{`player`, `position`, `goals`, `assists`, `minutes`}, [][]any{
		{`Salah`, `MID`, 3, 2, 50},
		{`Raya`, `GK`, 1, 4, 49.9},
		{`Haaland`, `FWD`, 8, 1, 1000},
		{`Saliba`, `DEF`, 2, 0, 75},
	})
	require.NoError(t, err)
	return tb
}

func recorded(t *testing.T, p Plotter, change func(*Style)) *surfacetest.Recorder {
	st := p.DefaultStyle()
	st.Backend = surfacetest.Name
	if change != nil {
		change(&st)
	}
	s, err := p.Plot(st)
	require.NoError(t, err)
	return s.(*surfacetest.Recorder)
}

func plotErr(p Plotter, change func(*Style)) error {
	st := p.DefaultStyle()
	st.Backend = surfacetest.Name
	if change != nil {
		change(&st)
	}
	s, err := p.Plot(st)
	if err != nil && s != nil {
		return errSurfaceLeaked
	}
	return err
}

var errSurfaceLeaked = errors.New(`surface returned alongside an error`)

func TestBarCategoryColours(t *testing.T) {
	order := []string{`GK`, `DEF`, `MID`, `FWD`}
	bar := &Bar{Chart{X: `player`, Y: []string{`goals`}, Table: players(t), CategoryColumn: `position`, CategoryOrder: order}}
	rec := recorded(t, bar, func(st *Style) {
		st.Palette = quad
		st.Legend = true
		st.Title = `Goals`
	})
	colours, err := quad.Colours()
	require.NoError(t, err)

	require.Len(t, rec.Bars, 1)
	assert.Equal(t, []palette.Colour{colours[2], colours[0], colours[3], colours[1]}, rec.Bars[0].Colours)
	assert.Equal(t, []string{`Salah`, `Raya`, `Haaland`, `Saliba`}, rec.Ticks[surface.AxisX].Labels)
	assert.Equal(t, `Goals`, rec.Title)

	require.True(t, rec.HasLegend)
	l := rec.Legend()
	assert.Equal(t, legend.ModeBelow, l.Mode)
	assert.Equal(t, 4, l.Columns)
	for i, e := range l.Entries {
		assert.Equal(t, order[i], e.Label)
		assert.Equal(t, colours[i], e.Colour)
	}
}

func TestBarLegendDisabledByDefault(t *testing.T) {
	bar := &Bar{Chart{X: `player`, Y: []string{`goals`}, Table: players(t), CategoryColumn: `position`}}
	rec := recorded(t, bar, nil)
	assert.False(t, rec.HasLegend)
	first, err := palette.Default.At(0)
	require.NoError(t, err)
	assert.Equal(t, first, rec.Bars[0].Colours[0])
}

func TestBarErrors(t *testing.T) {
	tb := players(t)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`, `assists`}, Table: tb}}, nil), ErrShape)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`}, Table: tb, CategoryColumn: `minutes`, Bins: []float64{0, 50}}}, nil), ErrBinsNeedOrder)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`}, Table: tb, CategoryColumn: `minutes`}}, nil), colourmap.ErrNotCategorical)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goal`}, Table: tb}}, nil), dataset.ErrUnknownColumn)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`}, Table: tb, CategoryColumn: `position`}}, func(st *Style) {
		st.Palette = quad[:3]
	}), colourmap.ErrPaletteTooSmall)
	assert.ErrorIs(t, plotErr(&Bar{Chart{RawX: []any{`a`}, RawY: []float64{1, 2}}}, nil), ErrShape)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`}, Table: tb, CategoryOrder: []string{`low`}, Bins: []float64{0, 50}}}, nil), ErrNeedColumn)
	assert.ErrorIs(t, plotErr(&Bar{}, nil), ErrNoTable)
	assert.ErrorIs(t, plotErr(&Bar{Chart{RawX: []any{`a`}, RawY: []float64{1}, CategoryColumn: `position`}}, nil), ErrNoTable)
	assert.ErrorIs(t, plotErr(&Line{}, nil), ErrNoTable)
	assert.ErrorIs(t, plotErr(&Scatter{}, nil), ErrNoTable)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`}, Table: tb}}, func(st *Style) {
		st.LegendArea = `beside`
	}), legend.ErrUnknownArea)
	assert.ErrorIs(t, plotErr(&Bar{Chart{X: `player`, Y: []string{`goals`}, Table: tb}}, func(st *Style) {
		st.Backend = `matplotlib`
	}), surface.ErrUnsupported)
}

func TestRawBarCyclesPalette(t *testing.T) {
	bar := &Bar{Chart{RawX: []any{`a`, `b`, `c`}, RawY: []float64{1, 2, 3}}}
	rec := recorded(t, bar, func(st *Style) {
		st.Palette = quad[:2]
	})
	colours, err := quad[:2].Colours()
	require.NoError(t, err)
	assert.Equal(t, []palette.Colour{colours[0], colours[1], colours[0]}, rec.Bars[0].Colours)
	assert.Equal(t, []float64{0, 1, 2}, rec.Bars[0].Positions)
}

func TestStackedBaseline(t *testing.T) {
	tb, err := dataset.FromRows([]string{`team`, `goals`, `assists`}, [][]any{
		{`ARS`, 3, 2},
		{`MCI`, 1, 4},
	})
	require.NoError(t, err)
	rec := recorded(t, &StackedBar{Chart{X: `team`, Y: []string{`goals`, `assists`}, Table: tb}}, nil)
	require.Len(t, rec.Bars, 2)
	assert.Equal(t, []float64{0, 0}, rec.Bars[0].Base)
	assert.Equal(t, []float64{3, 1}, rec.Bars[1].Base)
	for i, total := range []float64{5, 5} {
		assert.Equal(t, total, rec.Bars[1].Base[i]+rec.Bars[1].Values[i])
	}
	assert.Equal(t, `goals`, rec.Bars[0].Label)
	assert.True(t, rec.HasLegend)
	assert.Equal(t, legend.ModeBelow, rec.Legend().Mode)
}

func TestBaselines(t *testing.T) {
	bases := Baselines([][]float64{{3, 1}, {2, math.NaN()}, {1, 1}})
	assert.Equal(t, [][]float64{{0, 0}, {3, 1}, {5, 1}}, bases)
	assert.Nil(t, Baselines(nil))
}

func TestHorizontalStacked(t *testing.T) {
	rec := recorded(t, &HorizontalStackedBar{Chart{X: `player`, Y: []string{`goals`, `assists`}, Table: players(t)}}, nil)
	for _, b := range rec.Bars {
		assert.True(t, b.Horizontal)
	}
	assert.Equal(t, []string{`Salah`, `Raya`, `Haaland`, `Saliba`}, rec.Ticks[surface.AxisY].Labels)
	_, ok := rec.Ticks[surface.AxisX]
	assert.False(t, ok)
	assert.Equal(t, `lower center`, rec.Legend().Loc)
}

func TestGroupedGeometry(t *testing.T) {
	rec := recorded(t, &GroupedBar{Chart{X: `player`, Y: []string{`goals`, `assists`}, Table: players(t)}}, nil)
	require.Len(t, rec.Bars, 2)
	w := 1.0 / 3
	assert.InDelta(t, w, rec.Bars[0].Width, 1e-9)
	assert.InDeltaSlice(t, []float64{0, 1, 2, 3}, rec.Bars[0].Positions, 1e-9)
	assert.InDeltaSlice(t, []float64{w, 1 + w, 2 + w, 3 + w}, rec.Bars[1].Positions, 1e-9)
	assert.InDeltaSlice(t, []float64{w / 2, 1 + w/2, 2 + w/2, 3 + w/2}, rec.Ticks[surface.AxisX].Positions, 1e-9)
}

func TestMultiSeriesGuards(t *testing.T) {
	tb := players(t)
	three := []string{`goals`, `assists`, `minutes`}
	for _, p := range []Plotter{
		&GroupedBar{Chart{X: `player`, Y: three, Table: tb}},
		&StackedBar{Chart{X: `player`, Y: three, Table: tb}},
		&HorizontalStackedBar{Chart{X: `player`, Y: three, Table: tb}},
	} {
		assert.ErrorIs(t, plotErr(p, func(st *Style) { st.Palette = quad[:2] }), colourmap.ErrPaletteTooSmall)
		assert.ErrorIs(t, plotErr(p, func(st *Style) { st.Palette = palette.Palette{} }), ErrEmptyPalette)
	}
	assert.ErrorIs(t, plotErr(&StackedBar{Chart{X: `player`, Y: three}}, nil), ErrNoTable)
	assert.ErrorIs(t, plotErr(&GroupedBar{Chart{X: `player`, Table: tb}}, nil), ErrShape)
}

func TestLine(t *testing.T) {
	tb := players(t)
	rec := recorded(t, &Line{Chart{X: `minutes`, Y: []string{`goals`, `assists`}, Table: tb}}, func(st *Style) {
		st.Legend = true
		st.LegendLoc = `center left`
		st.Palette = quad
	})
	require.Len(t, rec.Lines, 2)
	assert.Equal(t, []float64{50, 49.9, 1000, 75}, rec.Lines[0].X)
	assert.Equal(t, legend.ModeRight, rec.Legend().Mode)
	assert.Equal(t, legend.Point{X: 1.05, Y: 1}, rec.Legend().Anchor)
	_, ok := rec.Ticks[surface.AxisX]
	assert.False(t, ok)

	single := recorded(t, &Line{Chart{X: `player`, Y: []string{`goals`}, Table: tb}}, func(st *Style) {
		st.Legend = true
		st.Palette = quad[:1]
	})
	assert.False(t, single.HasLegend)
	assert.Equal(t, []float64{0, 1, 2, 3}, single.Lines[0].X)
	assert.Equal(t, []string{`Salah`, `Raya`, `Haaland`, `Saliba`}, single.Ticks[surface.AxisX].Labels)

	raw := recorded(t, &Line{Chart{RawX: []any{1, 2, 3}, RawY: []float64{2, 4, 8}}}, nil)
	assert.Equal(t, []float64{1, 2, 3}, raw.Lines[0].X)

	assert.ErrorIs(t, plotErr(&Line{Chart{X: `player`, Y: []string{`goals`, `assists`}, Table: tb}}, func(st *Style) {
		st.Palette = quad[:1]
	}), colourmap.ErrPaletteTooSmall)
}

func TestScatterBins(t *testing.T) {
	sc := &Scatter{Chart{
		X:              `goals`,
		Y:              []string{`assists`},
		Table:          players(t),
		CategoryColumn: `minutes`,
		CategoryOrder:  []string{`low`, `medium`, `high`},
		Bins:           []float64{0, 50, 75, math.Inf(1)},
	}}
	rec := recorded(t, sc, func(st *Style) {
		st.Palette = quad
		st.LegendArea = `inside`
		st.LegendLoc = `upper right`
	})
	colours, err := quad.Colours()
	require.NoError(t, err)
	require.Len(t, rec.Scatters, 1)
	assert.Equal(t, []palette.Colour{colours[1], colours[0], colours[2], colours[2]}, rec.Scatters[0].Colours)
	assert.Equal(t, legend.ModeInside, rec.Legend().Mode)
	assert.Len(t, rec.Legend().Entries, 3)

	assert.ErrorIs(t, plotErr(sc, func(st *Style) { st.Palette = quad[:2] }), colourmap.ErrPaletteTooSmall)
	sc.CategoryOrder = nil
	assert.ErrorIs(t, plotErr(sc, nil), ErrBinsNeedOrder)
	sc.CategoryOrder = []string{`low`, `high`}
	assert.ErrorIs(t, plotErr(sc, nil), colourmap.ErrBinSize)
	sc.Y = []string{`assists`, `goals`}
	assert.ErrorIs(t, plotErr(sc, nil), ErrShape)
}

func TestScatterPlain(t *testing.T) {
	rec := recorded(t, &Scatter{Chart{X: `goals`, Y: []string{`assists`}, Table: players(t)}}, nil)
	assert.Nil(t, rec.Scatters[0].Colours)
	assert.False(t, rec.HasLegend)

	raw := recorded(t, &Scatter{Chart{RawX: []any{`a`, `b`}, RawY: []float64{1, 2}}}, nil)
	assert.Equal(t, []float64{0, 1}, raw.Scatters[0].X)
	assert.Equal(t, []string{`a`, `b`}, raw.Ticks[surface.AxisX].Labels)
}

func TestPlotWithEcharts(t *testing.T) {
	bar := &Bar{Chart{X: `player`, Y: []string{`goals`}, Table: players(t), CategoryColumn: `position`}}
	st := bar.DefaultStyle()
	st.Legend = true
	st.Title = `Goals by player`
	s, err := bar.Plot(st)
	require.NoError(t, err)
	buf := new(bytes.Buffer)
	require.NoError(t, s.Render(buf))
	assert.Contains(t, buf.String(), `Goals by player`)
	assert.Contains(t, buf.String(), `Haaland`)
}

func TestNullCellsOnGonum(t *testing.T) {
	tb, err := dataset.FromRows([]string{`week`, `goals`}, [][]any{{1, 2}, {2, nil}, {3, 4}})
	require.NoError(t, err)
	chart := Chart{X: `week`, Y: []string{`goals`}, Table: tb}
	for _, p := range []Plotter{&Bar{chart}, &Line{chart}, &Scatter{chart}} {
		st := p.DefaultStyle()
		st.Backend = gonum.Name
		st.Format = gonum.FormatSVG
		s, err := p.Plot(st)
		require.NoError(t, err, `%T`, p)
		buf := new(bytes.Buffer)
		require.NoError(t, s.Render(buf), `%T`, p)
		assert.Contains(t, buf.String(), `<svg`)
	}
}
