// Package dataset holds the in-memory tables the chart wrappers draw from.
package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var (
	ErrUnknownColumn   = errors.New(`unknown column`)
	ErrDuplicateColumn = errors.New(`duplicate column`)
	ErrRowLength       = errors.New(`row length does not match column count`)
)

// Kind is the inferred kind of a column.
type Kind int

const (
	Categorical Kind = iota
	Numeric
)

func (k Kind) String() string {
	if k == Numeric {
		return `numeric`
	}
	return `categorical`
}

// Column is a named sequence of cells.
type Column struct {
	Name   string
	Values []any
}

// Kind is Numeric when every non-null cell is a number and there is at least one.
func (c *Column) Kind() Kind {
	var seen bool
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		if !IsNumber(v) {
			return Categorical
		}
		seen = true
	}
	if !seen {
		return Categorical
	}
	return Numeric
}

func (c *Column) Len() int {
	return len(c.Values)
}

func (c *Column) Floats() []float64 {
	r := make([]float64, len(c.Values))
	for i, v := range c.Values {
		r[i] = Float64(v)
	}
	return r
}

func (c *Column) Strings() []string {
	r := make([]string, len(c.Values))
	for i, v := range c.Values {
		r[i] = String(v)
	}
	return r
}

// Distinct returns the distinct labels in first-seen order. Null cells are skipped.
func (c *Column) Distinct() []string {
	seen := map[string]struct{}{}
	var r []string
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		s := String(v)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		r = append(r, s)
	}
	return r
}

// Table is an ordered set of equally long columns.
type Table struct {
	names   []string
	columns map[string]*Column
	rows    int
}

func New(columns ...string) (*Table, error) {
	t := &Table{
		names:   make([]string, 0, len(columns)),
		columns: make(map[string]*Column, len(columns)),
	}
	for _, name := range columns {
		if _, ok := t.columns[name]; ok {
			return nil, fmt.Errorf(`%w: %s`, ErrDuplicateColumn, name)
		}
		t.names = append(t.names, name)
		t.columns[name] = &Column{Name: name}
	}
	return t, nil
}

// FromRows builds a table from positional rows.
func FromRows(columns []string, rows [][]any) (*Table, error) {
	t, err := New(columns...)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := t.AddRow(row...); err != nil {
			return nil, fmt.Errorf(`row %d: %w`, i, err)
		}
	}
	return t, nil
}

// FromRecords builds a table from keyed records; columns fixes the column order.
func FromRecords(columns []string, records []map[string]any) (*Table, error) {
	t, err := New(columns...)
	if err != nil {
		return nil, err
	}
	row := make([]any, len(columns))
	for _, rec := range records {
		for i, name := range columns {
			row[i] = rec[name]
		}
		if err := t.AddRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) AddRow(values ...any) error {
	if len(values) != len(t.names) {
		return fmt.Errorf(`%w: got %d values for %d columns`, ErrRowLength, len(values), len(t.names))
	}
	for i, name := range t.names {
		col := t.columns[name]
		col.Values = append(col.Values, values[i])
	}
	t.rows++
	return nil
}

// AddColumn appends a column. Its length must match the table's row count
// unless the table has no columns yet.
func (t *Table) AddColumn(name string, values []any) error {
	if _, ok := t.columns[name]; ok {
		return fmt.Errorf(`%w: %s`, ErrDuplicateColumn, name)
	}
	if len(t.names) > 0 && len(values) != t.rows {
		return fmt.Errorf(`%w: column %s has %d values for %d rows`, ErrRowLength, name, len(values), t.rows)
	}
	t.names = append(t.names, name)
	t.columns[name] = &Column{Name: name, Values: append([]any(nil), values...)}
	t.rows = len(values)
	return nil
}

func (t *Table) Len() int {
	return t.rows
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Column looks a column up by name. The error names the closest match.
func (t *Table) Column(name string) (*Column, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf(`%w: %s%s`, ErrUnknownColumn, name, t.suggest(name))
	}
	return col, nil
}

func (t *Table) suggest(name string) string {
	var best string
	var bestScore float64
	metric := metrics.NewLevenshtein()
	metric.CaseSensitive = false
	for _, c := range t.names {
		score := strutil.Similarity(name, c, metric)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < 0.5 {
		return ``
	}
	return ` (did you mean ` + best + `?)`
}

func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.names, "\t"))
	for i := 0; i < t.rows; i++ {
		b.WriteString("\n")
		for j, name := range t.names {
			if j > 0 {
				b.WriteString("\t")
			}
			b.WriteString(String(t.columns[name].Values[i]))
		}
	}
	return b.String()
}
