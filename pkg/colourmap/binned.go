package colourmap

import (
	"fmt"
	"math"

	"github.com/admpub/log"
	"github.com/admpub/speedy-charts/pkg/dataset"
	"github.com/admpub/speedy-charts/pkg/palette"
)

// Bins buckets numeric values into left-closed, right-open ranges
// [Boundaries[i], Boundaries[i+1]) named by Labels[i]. The last boundary may
// be math.Inf(1) to capture everything above the previous one.
type Bins struct {
	Boundaries []float64
	Labels     []string
}

func (b Bins) Validate() error {
	if len(b.Labels) != len(b.Boundaries)-1 {
		return fmt.Errorf(`%w: %d labels, %d boundaries (end the boundaries with +Inf to include every value above the last range)`, ErrBinSize, len(b.Labels), len(b.Boundaries))
	}
	for i := 1; i < len(b.Boundaries); i++ {
		if !(b.Boundaries[i] > b.Boundaries[i-1]) {
			return fmt.Errorf(`%w: %v`, ErrBinOrder, b.Boundaries)
		}
	}
	return nil
}

// Label returns the label of the bin holding v. ok is false for NaN and for
// values outside every bin.
func (b Bins) Label(v float64) (label string, ok bool) {
	if math.IsNaN(v) || len(b.Boundaries) < 2 {
		return ``, false
	}
	if v < b.Boundaries[0] || v >= b.Boundaries[len(b.Boundaries)-1] {
		return ``, false
	}
	for i := 0; i < len(b.Labels); i++ {
		if v < b.Boundaries[i+1] {
			return b.Labels[i], true
		}
	}
	return ``, false
}

// Binned colours the rows of t by the bin their numeric column value falls
// in. Colours are assigned to bin labels position-wise.
func Binned(t *dataset.Table, column string, pal palette.Palette, bins Bins) (*Assignment, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if col.Kind() != dataset.Numeric {
		return nil, fmt.Errorf(`%w: column %s is categorical, bins are only needed to colour a numeric column by ranges`, ErrNotNumeric, column)
	}
	if err := bins.Validate(); err != nil {
		return nil, err
	}
	if len(pal) < len(bins.Labels) {
		return nil, fmt.Errorf(`%w: %d bins, %d colours in the palette`, ErrPaletteTooSmall, len(bins.Labels), len(pal))
	}
	colours, err := pal[:len(bins.Labels)].Colours()
	if err != nil {
		return nil, err
	}
	table, err := NewTable(bins.Labels, colours)
	if err != nil {
		return nil, err
	}
	values := col.Floats()
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i], _ = bins.Label(v)
	}
	a := newAssignment(table, labels)
	if n := a.Unresolved(); n > 0 {
		log.Debugf(`colourmap: %d rows of %s fall outside every bin`, n, column)
	}
	return a, nil
}
