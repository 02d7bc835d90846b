package chartutil

import (
	"strconv"

	"github.com/admpub/speedy-charts/pkg/legend"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// https://github.com/go-echarts/examples

func Title(title, subtitle string, options ...func(*opts.Title)) charts.GlobalOpts {
	option := opts.Title{
		Title:    title,
		Subtitle: subtitle,
	}
	for _, o := range options {
		o(&option)
	}
	return charts.WithTitleOpts(option)
}

func Initialization(theme string, width, height int, options ...func(*opts.Initialization)) charts.GlobalOpts {
	if len(theme) == 0 {
		theme = types.ThemeWesteros
	}
	option := opts.Initialization{Theme: theme}
	if width > 0 {
		option.Width = strconv.Itoa(width) + `px`
	}
	if height > 0 {
		option.Height = strconv.Itoa(height) + `px`
	}
	for _, o := range options {
		o(&option)
	}
	return charts.WithInitializationOpts(option)
}

// Legend maps a legend placement onto the echarts legend box. names fixes the
// entry order; nil lets echarts list every series.
func Legend(pl legend.Placement, names []string) charts.GlobalOpts {
	option := opts.Legend{Show: opts.Bool(pl.Mode != legend.ModeNone)}
	if len(names) > 0 {
		option.Data = names
	}
	switch pl.Mode {
	case legend.ModeInside:
		option.Orient = `vertical`
		switch legend.Vertical(pl.Loc) {
		case `top`:
			option.Top = `12%`
		case `bottom`:
			option.Bottom = `12%`
		default:
			option.Top = `middle`
		}
		switch legend.Horizontal(pl.Loc) {
		case `left`:
			option.Left = `8%`
		case `right`:
			option.Right = `5%`
		default:
			option.Left = `center`
		}
	case legend.ModeRight:
		option.Orient = `vertical`
		option.Right = `0`
		option.Top = `12%`
	case legend.ModeBelow:
		option.Orient = `horizontal`
		option.Left = `center`
		option.Bottom = `0`
	}
	return charts.WithLegendOpts(option)
}

// Grid leaves room for a legend placed outside the plot area.
func Grid(pl legend.Placement, containLabel bool) charts.GlobalOpts {
	option := opts.Grid{}
	if containLabel {
		option.ContainLabel = opts.Bool(true)
	}
	switch pl.Mode {
	case legend.ModeRight:
		option.Right = `20%`
	case legend.ModeBelow:
		option.Bottom = `20%`
	}
	return charts.WithGridOpts(option)
}

func Tooltip(trigger string) charts.GlobalOpts {
	return charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger})
}

// Axis describes one axis of a rectangular chart. Category labels are set
// with SetXAxis since the charts overwrite axis data when validating.
type Axis struct {
	Name     string
	Type     string // "category" or "value"
	Rotation float64
}

func (a Axis) label() *opts.AxisLabel {
	if a.Rotation == 0 {
		return nil
	}
	return &opts.AxisLabel{Rotate: a.Rotation}
}

func XAxis(a Axis) charts.GlobalOpts {
	return charts.WithXAxisOpts(opts.XAxis{Name: a.Name, Type: a.Type, AxisLabel: a.label()})
}

func YAxis(a Axis) charts.GlobalOpts {
	return charts.WithYAxisOpts(opts.YAxis{Name: a.Name, Type: a.Type, AxisLabel: a.label()})
}
