package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/webx-top/com"
)

// MakeValue infers the type of a textual cell. A typed prefix on the column
// name (int_, float_, time_, bool_, str_) forces the type when it parses.
func MakeValue(column, text string) any {
	match := strings.TrimSpace(text)
	if len(match) == 0 {
		return nil
	}
	switch strings.SplitN(column, `_`, 2)[0] {
	case `int`:
		if value, err := strconv.Atoi(match); err == nil {
			return value
		}
	case `float`:
		if value, err := strconv.ParseFloat(match, 64); err == nil {
			return value
		}
	case `time`:
		if value, err := dateparse.ParseAny(match); err == nil {
			return value
		}
	case `bool`:
		if value, err := strconv.ParseBool(match); err == nil {
			return value
		}
	case `str`:
		return match
	}
	if value, err := strconv.Atoi(match); err == nil {
		return value
	} else if value, err := strconv.ParseFloat(match, 64); err == nil && !math.IsInf(value, 0) {
		return value
	} else if value, err := dateparse.ParseAny(match); err == nil {
		return value
	}
	return match
}

// IsNumber reports whether v holds a Go numeric type.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Float64 converts a numeric cell; nil and non-numeric cells become NaN.
func Float64(v any) float64 {
	if v == nil || !IsNumber(v) {
		return math.NaN()
	}
	return com.Float64(v)
}

// String formats a cell for use as a category label or tick label.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ``
	case string:
		return t
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.DateTime)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return com.String(v)
}
