// Package colourmap assigns one colour per category, or per numeric bin, and
// resolves the colour of every row of a table.
package colourmap

import (
	"errors"
	"fmt"

	"github.com/admpub/speedy-charts/pkg/palette"
)

var (
	ErrNotCategorical    = errors.New(`expected categorical column`)
	ErrNotNumeric        = errors.New(`expected numeric column`)
	ErrBinSize           = errors.New(`bin labels must be one fewer than bin boundaries`)
	ErrBinOrder          = errors.New(`bin boundaries must be strictly ascending`)
	ErrPaletteTooSmall   = errors.New(`palette has fewer colours than required`)
	ErrDuplicateCategory = errors.New(`duplicate category`)
)

// Entry pairs a category label with its colour.
type Entry struct {
	Label  string
	Colour palette.Colour
}

// Table is an ordered category to colour mapping with unique labels.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable pairs labels with colours position-wise.
func NewTable(labels []string, colours []palette.Colour) (*Table, error) {
	if len(colours) < len(labels) {
		return nil, fmt.Errorf(`%w: %d categories, %d colours`, ErrPaletteTooSmall, len(labels), len(colours))
	}
	t := &Table{
		entries: make([]Entry, 0, len(labels)),
		index:   make(map[string]int, len(labels)),
	}
	for i, label := range labels {
		if _, ok := t.index[label]; ok {
			return nil, fmt.Errorf(`%w: %q`, ErrDuplicateCategory, label)
		}
		t.index[label] = i
		t.entries = append(t.entries, Entry{Label: label, Colour: colours[i]})
	}
	return t, nil
}

func (t *Table) Lookup(label string) (palette.Colour, bool) {
	i, ok := t.index[label]
	if !ok {
		return palette.Colour{}, false
	}
	return t.entries[i].Colour, true
}

func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t *Table) Labels() []string {
	labels := make([]string, len(t.entries))
	for i, e := range t.entries {
		labels[i] = e.Label
	}
	return labels
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Assignment is the result of a colour assignment. The source table is left
// untouched; per-row labels and colours live here.
type Assignment struct {
	Table    *Table
	Labels   []string
	colours  []palette.Colour
	resolved []bool
}

func newAssignment(table *Table, labels []string) *Assignment {
	a := &Assignment{
		Table:    table,
		Labels:   labels,
		colours:  make([]palette.Colour, len(labels)),
		resolved: make([]bool, len(labels)),
	}
	for i, label := range labels {
		a.colours[i], a.resolved[i] = table.Lookup(label)
	}
	return a
}

func (a *Assignment) Len() int {
	return len(a.Labels)
}

// Colour returns the colour of row i. ok is false when the row's label is not
// in the colour table.
func (a *Assignment) Colour(i int) (c palette.Colour, ok bool) {
	return a.colours[i], a.resolved[i]
}

// Colours returns every row's colour; unresolved rows hold the zero Colour.
func (a *Assignment) Colours() []palette.Colour {
	return append([]palette.Colour(nil), a.colours...)
}

// Unresolved counts rows without a colour.
func (a *Assignment) Unresolved() int {
	var n int
	for _, ok := range a.resolved {
		if !ok {
			n++
		}
	}
	return n
}
