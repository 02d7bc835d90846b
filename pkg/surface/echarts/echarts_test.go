package echarts

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admpub/speedy-charts/pkg/legend"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

var (
	red  = palette.MustParseHex(`#ff0000`)
	blue = palette.MustParseHex(`#0000ff`)
)

func newJSON(t *testing.T) *Surface {
	o := surface.Options{Format: FormatJSON}
	o.SetDefaults()
	s, err := New(o)
	require.NoError(t, err)
	return s
}

func renderJSON(t *testing.T, s *Surface) map[string]interface{} {
	buf := new(bytes.Buffer)
	require.NoError(t, s.Render(buf))
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func seriesByName(out map[string]interface{}) map[string]map[string]interface{} {
	r := map[string]map[string]interface{}{}
	for _, v := range out[`series`].([]interface{}) {
		m := v.(map[string]interface{})
		r[m[`name`].(string)] = m
	}
	return r
}

func TestTheme(t *testing.T) {
	theme, err := Theme(`fivethirtyeight`)
	assert.NoError(t, err)
	assert.Equal(t, types.ThemeWesteros, theme)

	theme, err = Theme(`macarons`)
	assert.NoError(t, err)
	assert.Equal(t, `macarons`, theme)

	_, err = Theme(`solarized`)
	assert.ErrorIs(t, err, surface.ErrUnknownTheme)

	_, err = New(surface.Options{Format: `png`})
	assert.ErrorIs(t, err, surface.ErrUnknownFormat)
}

func TestCategoryBarsSplitByColour(t *testing.T) {
	s := newJSON(t)
	require.NoError(t, s.Bar(surface.BarSeries{
		Positions: []float64{0, 1, 2},
		Values:    []float64{3, 4, 5},
		Colours:   []palette.Colour{red, blue, red},
	}))
	s.SetTicks(surface.AxisX, surface.Ticks{Positions: []float64{0, 1, 2}, Labels: []string{`Salah`, `Saka`, `Haaland`}})
	s.SetLegend(surface.Legend{
		Placement: legend.Place(legend.Policy{Show: true, Loc: `upper center`, Area: legend.Outside}, 2),
		Entries:   []surface.LegendEntry{{Label: `MID`, Colour: red}, {Label: `FWD`, Colour: blue}},
	})
	out := renderJSON(t, s)
	series := seriesByName(out)
	require.Len(t, series, 2)

	mid := series[`MID`]
	assert.Equal(t, `bar`, mid[`type`])
	assert.Equal(t, `split 0`, mid[`stack`])
	data := mid[`data`].([]interface{})
	require.Len(t, data, 3)
	assert.Equal(t, 3.0, data[0].(map[string]interface{})[`value`])
	assert.Equal(t, `-`, data[1].(map[string]interface{})[`value`])
	assert.Equal(t, 5.0, data[2].(map[string]interface{})[`value`])

	xAxis := out[`xAxis`].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{`Salah`, `Saka`, `Haaland`}, xAxis[`data`])
}

func TestGroupedBarsShareSlots(t *testing.T) {
	s := newJSON(t)
	w := 1.0 / 3
	require.NoError(t, s.Bar(surface.BarSeries{Label: `goals`, Positions: []float64{0, 1}, Values: []float64{1, 2}, Colour: red}))
	require.NoError(t, s.Bar(surface.BarSeries{Label: `assists`, Positions: []float64{w, 1 + w}, Values: []float64{3, 4}, Colour: blue}))
	s.SetTicks(surface.AxisX, surface.Ticks{Positions: []float64{w / 2, 1 + w/2}, Labels: []string{`a`, `b`}})
	series := seriesByName(renderJSON(t, s))
	require.Len(t, series, 2)
	data := series[`assists`][`data`].([]interface{})
	assert.Equal(t, 3.0, data[0].(map[string]interface{})[`value`])
	assert.Equal(t, 4.0, data[1].(map[string]interface{})[`value`])
	_, stacked := series[`goals`][`stack`]
	assert.False(t, stacked)
}

func TestHorizontalStack(t *testing.T) {
	s := newJSON(t)
	for i, label := range []string{`home`, `away`} {
		require.NoError(t, s.Bar(surface.BarSeries{
			Label:      label,
			Positions:  []float64{0, 1},
			Values:     []float64{float64(i + 1), 2},
			Horizontal: true,
			Stack:      `total`,
		}))
	}
	s.SetTicks(surface.AxisY, surface.Ticks{Positions: []float64{0, 1}, Labels: []string{`ARS`, `MCI`}})
	s.SetAxisLabel(surface.AxisX, `points`)
	out := renderJSON(t, s)
	yAxis := out[`yAxis`].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{`ARS`, `MCI`}, yAxis[`data`])
	xAxis := out[`xAxis`].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, `value`, xAxis[`type`])
	assert.Equal(t, `points`, xAxis[`name`])
	assert.Equal(t, `total`, seriesByName(out)[`away`][`stack`])
}

func TestScatterSplitAndLine(t *testing.T) {
	s := newJSON(t)
	require.NoError(t, s.Scatter(surface.ScatterSeries{
		X:       []float64{1, 2, 3},
		Y:       []float64{4, 5, 6},
		Colours: []palette.Colour{red, red, blue},
	}))
	s.SetLegend(surface.Legend{Entries: []surface.LegendEntry{{Label: `low`, Colour: red}, {Label: `high`, Colour: blue}}})
	series := seriesByName(renderJSON(t, s))
	require.Len(t, series, 2)
	assert.Len(t, series[`low`][`data`], 2)
	assert.Equal(t, `scatter`, series[`high`][`type`])

	err := s.Line(surface.LineSeries{X: []float64{1}, Y: []float64{1}})
	assert.ErrorIs(t, err, surface.ErrMixedMarks)

	l := newJSON(t)
	require.NoError(t, l.Line(surface.LineSeries{X: []float64{1, 2}, Y: []float64{3, 4}, Colour: red}))
	series = seriesByName(renderJSON(t, l))
	require.Contains(t, series, `series 1`)
	first := series[`series 1`][`data`].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, []interface{}{1.0, 3.0}, first[`value`])
}

func TestRenderHTML(t *testing.T) {
	s, err := New(surface.Options{Width: 640, Height: 480})
	require.NoError(t, err)
	s.SetTitle(`Goals by position`)
	require.NoError(t, s.Bar(surface.BarSeries{Positions: []float64{0}, Values: []float64{1}, Colour: red}))
	buf := new(bytes.Buffer)
	require.NoError(t, s.Render(buf))
	assert.Contains(t, buf.String(), `Goals by position`)
	assert.Contains(t, buf.String(), `640px`)
}

func TestMissingValues(t *testing.T) {
	s := newJSON(t)
	require.NoError(t, s.Bar(surface.BarSeries{Label: `goals`, Positions: []float64{0, 1}, Values: []float64{math.NaN(), 2}, Colour: red}))
	series := seriesByName(renderJSON(t, s))
	data := series[`goals`][`data`].([]interface{})
	assert.Equal(t, `-`, data[0].(map[string]interface{})[`value`])
	assert.Equal(t, 2.0, data[1].(map[string]interface{})[`value`])
}
