// Package legend decides where a chart legend goes. Every chart wrapper uses
// the same policy.
package legend

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownArea = errors.New(`unknown legend plot area`)

// Area is where the legend sits relative to the plot area.
type Area string

const (
	Inside  Area = `inside`
	Outside Area = `outside`
)

func ParseArea(s string) (Area, error) {
	switch a := Area(strings.ToLower(strings.TrimSpace(s))); a {
	case ``:
		return Outside, nil
	case Inside, Outside:
		return a, nil
	}
	return ``, fmt.Errorf(`%w: %q (want %q or %q)`, ErrUnknownArea, s, Inside, Outside)
}

type Mode int

const (
	ModeNone Mode = iota
	// ModeInside anchors the legend at Loc within the plot area.
	ModeInside
	// ModeRight anchors the legend at a fixed offset right of the plot.
	ModeRight
	// ModeBelow spreads the legend below the plot, one column per entry.
	ModeBelow
)

func (m Mode) String() string {
	switch m {
	case ModeInside:
		return `inside`
	case ModeRight:
		return `right`
	case ModeBelow:
		return `below`
	}
	return `none`
}

// Policy is the legend part of a chart style.
type Policy struct {
	Show bool
	Loc  string
	Area Area
}

// Point is an anchor in axes-fraction coordinates.
type Point struct {
	X, Y float64
}

// Placement is the resolved legend position.
type Placement struct {
	Mode      Mode
	Loc       string
	Anchor    Point
	HasAnchor bool
	Columns   int
	BorderPad float64
}

var (
	rightAnchor = Point{X: 1.05, Y: 1}
	belowAnchor = Point{X: 0.5, Y: -0.2}
)

// Place resolves a policy for a legend of the given entry count.
func Place(p Policy, entries int) Placement {
	if !p.Show {
		return Placement{Mode: ModeNone}
	}
	loc := p.Loc
	if p.Area == Inside {
		return Placement{Mode: ModeInside, Loc: loc, Columns: 1}
	}
	if !IsCornerLoc(loc) {
		return Placement{
			Mode:      ModeRight,
			Loc:       loc,
			Anchor:    rightAnchor,
			HasAnchor: true,
			Columns:   1,
			BorderPad: 0,
		}
	}
	columns := entries
	if columns < 1 {
		columns = 1
	}
	return Placement{
		Mode:      ModeBelow,
		Loc:       loc,
		Anchor:    belowAnchor,
		HasAnchor: true,
		Columns:   columns,
	}
}

// IsCornerLoc reports whether loc names an upper or lower position.
func IsCornerLoc(loc string) bool {
	return strings.Contains(loc, `upper`) || strings.Contains(loc, `lower`)
}

// Vertical and Horizontal split a location keyword such as "upper right"
// into "top"/"middle"/"bottom" and "left"/"center"/"right".
func Vertical(loc string) string {
	switch {
	case strings.Contains(loc, `upper`):
		return `top`
	case strings.Contains(loc, `lower`):
		return `bottom`
	}
	return `middle`
}

func Horizontal(loc string) string {
	switch {
	case strings.Contains(loc, `left`):
		return `left`
	case strings.Contains(loc, `right`):
		return `right`
	case loc == `best`:
		return `right`
	}
	return `center`
}
