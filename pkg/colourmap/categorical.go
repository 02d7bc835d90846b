package colourmap

import (
	"fmt"

	"github.com/admpub/log"
	"github.com/admpub/speedy-charts/pkg/dataset"
	"github.com/admpub/speedy-charts/pkg/palette"
)

// Categorical colours the rows of t by the non-numeric column. Categories are
// taken from order, or in first-seen order when order is empty, and paired
// position-wise with the palette.
func Categorical(t *dataset.Table, column string, pal palette.Palette, order []string) (*Assignment, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if col.Kind() == dataset.Numeric {
		return nil, fmt.Errorf(`%w: column %s is numeric, use bins to colour a numeric column by ranges`, ErrNotCategorical, column)
	}
	categories := order
	if len(categories) == 0 {
		categories = col.Distinct()
	}
	if len(pal) < len(categories) {
		return nil, fmt.Errorf(`%w: %d categories in %s, %d colours in the palette`, ErrPaletteTooSmall, len(categories), column, len(pal))
	}
	colours, err := pal[:len(categories)].Colours()
	if err != nil {
		return nil, err
	}
	table, err := NewTable(categories, colours)
	if err != nil {
		return nil, err
	}
	labels := make([]string, col.Len())
	for i, v := range col.Values {
		if v != nil {
			labels[i] = dataset.String(v)
		}
	}
	a := newAssignment(table, labels)
	if n := a.Unresolved(); n > 0 {
		log.Debugf(`colourmap: %d rows of %s have no category colour`, n, column)
	}
	return a, nil
}
