// Package config loads chart jobs: inline datasets plus the charts to draw
// from them, written as JSON5.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/admpub/json5"
	"github.com/admpub/log"

	"github.com/admpub/speedy-charts/pkg/charts"
	"github.com/admpub/speedy-charts/pkg/dataset"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
)

var (
	ErrUnknownKind    = errors.New(`unknown chart kind`)
	ErrUnknownDataset = errors.New(`unknown dataset`)
)

type Config struct {
	Backend  string             `json:"backend,omitempty"`
	Theme    string             `json:"theme,omitempty"`
	Palette  string             `json:"palette,omitempty"`
	Colours  []string           `json:"colours,omitempty"`
	Width    int                `json:"width,omitempty"`
	Height   int                `json:"height,omitempty"`
	Format   string             `json:"format,omitempty"`
	Datasets map[string]Dataset `json:"datasets"`
	Charts   []Chart            `json:"charts"`
}

// Dataset is a table written inline, as positional rows, keyed records or
// one list of values per column. Columns fixes the column order. String
// cells are typed by dataset.MakeValue, so "2767" is a number unless the
// column is named str_*.
type Dataset struct {
	Columns []string         `json:"columns"`
	Rows    [][]any          `json:"rows,omitempty"`
	Records []map[string]any `json:"records,omitempty"`
	Series  map[string][]any `json:"series,omitempty"`
}

type Chart struct {
	Name           string    `json:"name,omitempty"`
	Kind           string    `json:"kind"`
	Dataset        string    `json:"dataset,omitempty"`
	X              string    `json:"x,omitempty"`
	Y              Columns   `json:"y,omitempty"`
	RawX           []any     `json:"raw_x,omitempty"`
	RawY           []float64 `json:"raw_y,omitempty"`
	CategoryColumn string    `json:"category_column,omitempty"`
	CategoryOrder  []string  `json:"category_order,omitempty"`
	Bins           []Bound   `json:"bins,omitempty"`
	Style          Style     `json:"style,omitempty"`
}

type Style struct {
	XLabel       string   `json:"x_label,omitempty"`
	YLabel       string   `json:"y_label,omitempty"`
	Title        string   `json:"title,omitempty"`
	Palette      string   `json:"palette,omitempty"`
	Colours      []string `json:"colours,omitempty"`
	Legend       *bool    `json:"legend,omitempty"`
	LegendLoc    string   `json:"legend_loc,omitempty"`
	LegendArea   string   `json:"legend_plot_area,omitempty"`
	Theme        string   `json:"theme,omitempty"`
	Backend      string   `json:"backend,omitempty"`
	Layout       string   `json:"layout,omitempty"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	Format       string   `json:"format,omitempty"`
	TickRotation float64  `json:"tick_rotation,omitempty"`
}

// Columns accepts a single column name or a list of them.
type Columns []string

func (c *Columns) UnmarshalJSON(data []byte) error {
	var one string
	if err := json5.Unmarshal(data, &one); err == nil {
		*c = Columns{one}
		return nil
	}
	var many []string
	if err := json5.Unmarshal(data, &many); err != nil {
		return fmt.Errorf(`y: want a column name or a list of column names: %w`, err)
	}
	*c = many
	return nil
}

// Bound is a bin boundary. Besides numbers it accepts "inf", "Infinity" and
// their negatives, quoted or not.
type Bound float64

func (b *Bound) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"'`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf(`bin boundary %s: %w`, data, err)
	}
	*b = Bound(v)
	return nil
}

var kinds = map[string]func(charts.Chart) charts.Plotter{
	`bar`:                    func(c charts.Chart) charts.Plotter { return &charts.Bar{Chart: c} },
	`grouped_bar`:            func(c charts.Chart) charts.Plotter { return &charts.GroupedBar{Chart: c} },
	`stacked_bar`:            func(c charts.Chart) charts.Plotter { return &charts.StackedBar{Chart: c} },
	`horizontal_stacked_bar`: func(c charts.Chart) charts.Plotter { return &charts.HorizontalStackedBar{Chart: c} },
	`line`:                   func(c charts.Chart) charts.Plotter { return &charts.Line{Chart: c} },
	`scatter`:                func(c charts.Chart) charts.Plotter { return &charts.Scatter{Chart: c} },
}

// Kinds lists the chart kinds a job may use.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) SetDefaults() {
	if len(c.Backend) == 0 {
		c.Backend = charts.DefaultBackend
	}
	if len(c.Theme) == 0 {
		c.Theme = surface.DefaultTheme
	}
	if c.Width <= 0 {
		c.Width = surface.DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = surface.DefaultHeight
	}
	for i := range c.Charts {
		ch := &c.Charts[i]
		ch.Kind = strings.ToLower(strings.TrimSpace(ch.Kind))
		if len(ch.Name) == 0 {
			ch.Name = `chart-` + strconv.Itoa(i+1)
		}
	}
}

func Parse(data []byte) (Config, error) {
	var config Config
	if err := json5.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	config.SetDefaults()
	return config, nil
}

func LoadConfig(path string) (Config, error) {
	jsonFile, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer jsonFile.Close()

	byteValue, err := io.ReadAll(jsonFile)
	if err != nil {
		return Config{}, err
	}
	config, err := Parse(byteValue)
	if err != nil {
		log.Errorf(`failed to parse %s: %v`, path, err)
		return Config{}, err
	}
	return config, nil
}

// Table builds the named dataset.
func (c *Config) Table(name string) (*dataset.Table, error) {
	ds, ok := c.Datasets[name]
	if !ok {
		return nil, fmt.Errorf(`%w: %s`, ErrUnknownDataset, name)
	}
	t, err := ds.table()
	if err != nil {
		return nil, fmt.Errorf(`dataset %s: %w`, name, err)
	}
	return t, nil
}

func (ds Dataset) table() (*dataset.Table, error) {
	switch {
	case len(ds.Records) > 0:
		records := make([]map[string]any, len(ds.Records))
		for i, rec := range ds.Records {
			records[i] = make(map[string]any, len(rec))
			for column, cell := range rec {
				records[i][column] = cellValue(column, cell)
			}
		}
		return dataset.FromRecords(ds.Columns, records)
	case len(ds.Series) > 0:
		t, err := dataset.New()
		if err != nil {
			return nil, err
		}
		for _, column := range ds.Columns {
			cells, ok := ds.Series[column]
			if !ok {
				return nil, fmt.Errorf(`%w: no series for column %s`, dataset.ErrRowLength, column)
			}
			values := make([]any, len(cells))
			for i, cell := range cells {
				values[i] = cellValue(column, cell)
			}
			if err := t.AddColumn(column, values); err != nil {
				return nil, err
			}
		}
		return t, nil
	}
	rows := make([][]any, len(ds.Rows))
	for i, row := range ds.Rows {
		rows[i] = make([]any, len(row))
		for j, cell := range row {
			var column string
			if j < len(ds.Columns) {
				column = ds.Columns[j]
			}
			rows[i][j] = cellValue(column, cell)
		}
	}
	return dataset.FromRows(ds.Columns, rows)
}

func cellValue(column string, cell any) any {
	text, ok := cell.(string)
	if !ok {
		return cell
	}
	return dataset.MakeValue(column, text)
}

func resolvePalette(name string, colours []string) (palette.Palette, bool, error) {
	if len(colours) > 0 {
		return palette.Palette(colours), true, nil
	}
	if len(name) > 0 {
		p, err := palette.Lookup(name)
		return p, err == nil, err
	}
	return nil, false, nil
}

// Plotter returns the chart at index i with its style: the chart kind's
// defaults, then the job-wide settings, then the chart's own.
func (c *Config) Plotter(i int) (charts.Plotter, charts.Style, error) {
	if i < 0 || i >= len(c.Charts) {
		return nil, charts.Style{}, fmt.Errorf(`chart index %d out of range [0,%d)`, i, len(c.Charts))
	}
	ch := c.Charts[i]
	newPlotter, ok := kinds[ch.Kind]
	if !ok {
		return nil, charts.Style{}, fmt.Errorf(`%w: %q (chart %s, want one of %s)`, ErrUnknownKind, ch.Kind, ch.Name, strings.Join(Kinds(), `, `))
	}
	chart := charts.Chart{
		X:              ch.X,
		Y:              []string(ch.Y),
		RawX:           ch.RawX,
		RawY:           ch.RawY,
		CategoryColumn: ch.CategoryColumn,
		CategoryOrder:  ch.CategoryOrder,
	}
	for _, b := range ch.Bins {
		chart.Bins = append(chart.Bins, float64(b))
	}
	if len(ch.Dataset) > 0 {
		t, err := c.Table(ch.Dataset)
		if err != nil {
			return nil, charts.Style{}, err
		}
		chart.Table = t
	}
	p := newPlotter(chart)
	st, err := c.style(p.DefaultStyle(), ch.Style)
	if err != nil {
		return nil, charts.Style{}, fmt.Errorf(`chart %s: %w`, ch.Name, err)
	}
	return p, st, nil
}

func (c *Config) style(st charts.Style, s Style) (charts.Style, error) {
	pal, ok, err := resolvePalette(c.Palette, c.Colours)
	if err != nil {
		return st, err
	}
	if ok {
		st.Palette = pal
	}
	if pal, ok, err = resolvePalette(s.Palette, s.Colours); err != nil {
		return st, err
	} else if ok {
		st.Palette = pal
	}
	st.Backend = firstNonEmpty(s.Backend, c.Backend, st.Backend)
	st.Theme = firstNonEmpty(s.Theme, c.Theme, st.Theme)
	st.Format = firstNonEmpty(s.Format, c.Format, st.Format)
	st.Layout = firstNonEmpty(s.Layout, st.Layout)
	st.LegendLoc = firstNonEmpty(s.LegendLoc, st.LegendLoc)
	st.LegendArea = firstNonEmpty(s.LegendArea, st.LegendArea)
	st.XLabel, st.YLabel, st.Title = s.XLabel, s.YLabel, s.Title
	st.TickRotation = s.TickRotation
	if s.Legend != nil {
		st.Legend = *s.Legend
	}
	st.Width = firstPositive(s.Width, c.Width, st.Width)
	st.Height = firstPositive(s.Height, c.Height, st.Height)
	return st, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return ``
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Plot draws the chart at index i.
func (c *Config) Plot(i int) (surface.Surface, error) {
	p, st, err := c.Plotter(i)
	if err != nil {
		return nil, err
	}
	s, err := p.Plot(st)
	if err != nil {
		return nil, fmt.Errorf(`chart %s: %w`, c.Charts[i].Name, err)
	}
	return s, nil
}
