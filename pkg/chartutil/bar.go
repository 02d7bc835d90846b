package chartutil

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Missing is the value echarts skips when drawing a data slot.
const Missing = `-`

// NewBar builds a bar chart. With nil headTitles the category axis is left
// to the options (horizontal bars put it on y).
func NewBar(w io.Writer, options []charts.GlobalOpts, headTitles []string, addSeries func(*charts.Bar)) (*charts.Bar, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(options...)
	if headTitles != nil {
		bar.SetXAxis(headTitles)
	}
	if addSeries != nil {
		addSeries(bar)
	}
	if w != nil {
		if err := bar.Render(w); err != nil {
			return bar, err
		}
	}
	return bar, nil
}

func NewBarDatas() *BarDatasMap {
	return &BarDatasMap{
		m: map[string][]opts.BarData{},
		o: map[string][]charts.SeriesOpts{},
	}
}

// BarDatasMap collects bar series in insertion order.
type BarDatasMap struct {
	m map[string][]opts.BarData
	o map[string][]charts.SeriesOpts
	r []string
}

func (b *BarDatasMap) SetDatasMap(index int, key string, value interface{}, size int, options ...func(*opts.BarData)) {
	datas, ok := b.m[key]
	if !ok {
		datas = make([]opts.BarData, size)
		for i := range datas {
			datas[i].Value = Missing
		}
		b.m[key] = datas
		b.r = append(b.r, key)
	}
	datas[index] = opts.BarData{
		Name:  key,
		Value: value,
	}
	for _, o := range options {
		o(&datas[index])
	}
}

func (b *BarDatasMap) SetSeriesOptions(key string, options ...charts.SeriesOpts) {
	b.o[key] = append(b.o[key], options...)
}

func (b *BarDatasMap) Keys() []string {
	return b.r
}

func (b BarDatasMap) AddSeries(bar *charts.Bar) {
	for _, key := range b.r {
		bar.AddSeries(key, b.m[key], b.o[key]...)
	}
}
