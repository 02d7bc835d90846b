package chartutil

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// NewLine builds a line chart. headTitles fills a category x axis; leave it
// nil for a value axis with [x, y] data.
func NewLine(w io.Writer, options []charts.GlobalOpts, headTitles []string, addSeries func(*charts.Line)) (*charts.Line, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(options...)
	if headTitles != nil {
		line.SetXAxis(headTitles)
	}
	if addSeries != nil {
		addSeries(line)
	}
	if w != nil {
		if err := line.Render(w); err != nil {
			return line, err
		}
	}
	return line, nil
}

func NewLineDatas() *LineDatasMap {
	return &LineDatasMap{
		m: map[string][]opts.LineData{},
		o: map[string][]charts.SeriesOpts{},
	}
}

// LineDatasMap collects line series in insertion order.
type LineDatasMap struct {
	m map[string][]opts.LineData
	o map[string][]charts.SeriesOpts
	r []string
}

func (b *LineDatasMap) SetDatasMap(index int, key string, value interface{}, size int, options ...func(*opts.LineData)) {
	datas, ok := b.m[key]
	if !ok {
		datas = make([]opts.LineData, size)
		for i := range datas {
			datas[i].Value = Missing
		}
		b.m[key] = datas
		b.r = append(b.r, key)
	}
	datas[index] = opts.LineData{
		Name:  key,
		Value: value,
	}
	for _, o := range options {
		o(&datas[index])
	}
}

func (b *LineDatasMap) SetSeriesOptions(key string, options ...charts.SeriesOpts) {
	b.o[key] = append(b.o[key], options...)
}

func (b *LineDatasMap) Keys() []string {
	return b.r
}

func (b LineDatasMap) AddSeries(line *charts.Line) {
	for _, key := range b.r {
		line.AddSeries(key, b.m[key], b.o[key]...)
	}
}
