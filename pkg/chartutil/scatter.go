package chartutil

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func NewScatter(w io.Writer, options []charts.GlobalOpts, addSeries func(*charts.Scatter)) (*charts.Scatter, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(options...)
	if addSeries != nil {
		addSeries(scatter)
	}
	if w != nil {
		if err := scatter.Render(w); err != nil {
			return scatter, err
		}
	}
	return scatter, nil
}

func NewScatterDatas() *ScatterDatasMap {
	return &ScatterDatasMap{
		m: map[string][]opts.ScatterData{},
		o: map[string][]charts.SeriesOpts{},
	}
}

// ScatterDatasMap collects points per series in insertion order. Points carry
// their own coordinates so series need not share an axis.
type ScatterDatasMap struct {
	m map[string][]opts.ScatterData
	o map[string][]charts.SeriesOpts
	r []string
}

func (b *ScatterDatasMap) Append(key string, x, y float64, options ...func(*opts.ScatterData)) {
	if _, ok := b.m[key]; !ok {
		b.r = append(b.r, key)
	}
	data := opts.ScatterData{
		Name:  key,
		Value: []float64{x, y},
	}
	for _, o := range options {
		o(&data)
	}
	b.m[key] = append(b.m[key], data)
}

func (b *ScatterDatasMap) SetSeriesOptions(key string, options ...charts.SeriesOpts) {
	if _, ok := b.m[key]; !ok {
		b.m[key] = nil
		b.r = append(b.r, key)
	}
	b.o[key] = append(b.o[key], options...)
}

func (b *ScatterDatasMap) Keys() []string {
	return b.r
}

func (b ScatterDatasMap) AddSeries(scatter *charts.Scatter) {
	for _, key := range b.r {
		scatter.AddSeries(key, b.m[key], b.o[key]...)
	}
}
