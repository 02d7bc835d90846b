package palette

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidColour  = errors.New(`invalid colour`)
	ErrUnknownPalette = errors.New(`unknown palette`)
)

// Colour is a straight (non-premultiplied) RGBA colour.
type Colour struct {
	R, G, B, A uint8
}

// RGBA implements color.Color.
func (c Colour) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	return
}

// Hex prints the colour as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Colour) Hex() string {
	hex := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
	if c.A != 0xff {
		hex += fmt.Sprintf(`%02x`, c.A)
	}
	return hex
}

func (c Colour) String() string {
	return c.Hex()
}

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa. The leading # is required,
// so words like "bad" or "decade" are not taken for colours.
func ParseHex(s string) (Colour, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, `#`) {
		return Colour{}, fmt.Errorf(`%w: %q (want #rgb, #rrggbb or #rrggbbaa)`, ErrInvalidColour, s)
	}
	alpha := uint8(0xff)
	if len(hex) == 9 {
		v, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return Colour{}, fmt.Errorf(`%w: %q`, ErrInvalidColour, s)
		}
		alpha = uint8(v)
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Colour{}, fmt.Errorf(`%w: %q`, ErrInvalidColour, s)
	}
	r, g, b := c.RGB255()
	return Colour{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseHex is ParseHex for package-level literals.
func MustParseHex(s string) Colour {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette is an ordered list of hex colours.
type Palette []string

// Colours converts every entry, failing on the first one that does not parse.
func (p Palette) Colours() ([]Colour, error) {
	colours := make([]Colour, len(p))
	for i, hex := range p {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf(`palette entry %d: %w`, i, err)
		}
		colours[i] = c
	}
	return colours, nil
}

// At returns the colour at index, cycling through the palette.
func (p Palette) At(index int) (Colour, error) {
	if len(p) == 0 {
		return Colour{}, fmt.Errorf(`%w: empty palette`, ErrInvalidColour)
	}
	return ParseHex(p[index%len(p)])
}

// Analysis Function categorical palette.
var AFCategorical = Palette{
	"#12436D", // dark blue
	"#28A197", // turquoise
	"#801650", // dark pink
	"#F46A25", // orange
	"#3D3D3D", // dark grey
	"#A285D1", // light purple
}

var Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")

var Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")

// Tol is Paul Tol's qualitative colour-blind safe palette.
var Tol = Palette{
	"#4477AA", "#EE6677", "#228833", "#CCBB44", "#66CCEE",
	"#AA3377", "#BBBBBB", "#EE8866", "#44BB99", "#FFAABB",
}

// Default is used whenever a chart is plotted without a palette.
var Default = AFCategorical

var named = map[string]Palette{
	`af_categorical`: AFCategorical,
	`category10`:     Category10,
	`tableau10`:      Tableau10,
	`tol`:            Tol,
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// Names lists the named palettes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the named palette.
func Lookup(name string) (Palette, error) {
	p, ok := named[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf(`%w: %s%s`, ErrUnknownPalette, name, suggest(name, Names()))
	}
	return append(Palette(nil), p...), nil
}

func suggest(name string, candidates []string) string {
	var best string
	var bestScore float64
	metric := metrics.NewLevenshtein()
	for _, c := range candidates {
		score := strutil.Similarity(strings.ToLower(name), c, metric)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < 0.5 {
		return ``
	}
	return ` (did you mean ` + best + `?)`
}
