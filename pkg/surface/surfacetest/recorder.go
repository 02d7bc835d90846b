// Package surfacetest provides a surface that records drawing calls, for
// tests of code that plots.
package surfacetest

import (
	"fmt"
	"io"

	"github.com/admpub/speedy-charts/pkg/surface"
)

// Name is the backend name the recorder registers under.
const Name = `record`

func init() {
	surface.Register(Name, func(o surface.Options) (surface.Surface, error) {
		return New(o), nil
	})
}

// Recorder keeps every call it receives.
type Recorder struct {
	Options    surface.Options
	Bars       []surface.BarSeries
	Lines      []surface.LineSeries
	Scatters   []surface.ScatterSeries
	Title      string
	AxisLabels map[surface.Axis]string
	Ticks      map[surface.Axis]surface.Ticks
	legend     surface.Legend
	HasLegend  bool
}

func New(o surface.Options) *Recorder {
	return &Recorder{
		Options:    o,
		AxisLabels: map[surface.Axis]string{},
		Ticks:      map[surface.Axis]surface.Ticks{},
	}
}

func (r *Recorder) Bar(s surface.BarSeries) error {
	if err := s.Check(); err != nil {
		return err
	}
	r.Bars = append(r.Bars, s)
	return nil
}

func (r *Recorder) Line(s surface.LineSeries) error {
	if err := s.Check(); err != nil {
		return err
	}
	r.Lines = append(r.Lines, s)
	return nil
}

func (r *Recorder) Scatter(s surface.ScatterSeries) error {
	if err := s.Check(); err != nil {
		return err
	}
	r.Scatters = append(r.Scatters, s)
	return nil
}

func (r *Recorder) SetTitle(title string) {
	r.Title = title
}

func (r *Recorder) SetAxisLabel(axis surface.Axis, label string) {
	r.AxisLabels[axis] = label
}

func (r *Recorder) SetTicks(axis surface.Axis, ticks surface.Ticks) {
	r.Ticks[axis] = ticks
}

func (r *Recorder) SetLegend(l surface.Legend) {
	r.legend = l
	r.HasLegend = true
}

func (r *Recorder) Legend() surface.Legend {
	return r.legend
}

// Render writes a plain-text summary of the recorded calls.
func (r *Recorder) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, "title=%q bars=%d lines=%d scatters=%d legend=%s\n",
		r.Title, len(r.Bars), len(r.Lines), len(r.Scatters), r.legend.Mode)
	return err
}
