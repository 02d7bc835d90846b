package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/admpub/pp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	tb, err := FromRows([]string{`player`, `position`, `minutes`}, [][]any{
		{`Haaland`, `FWD`, 2767},
		{`Saka`, `MID`, 2955.5},
		{`Raya`, `GK`, nil},
		{`Salah`, `MID`, 2875},
	})
	require.NoError(t, err)
	return tb
}

func TestColumnKind(t *testing.T) {
	tb := sampleTable(t)
	col, err := tb.Column(`minutes`)
	require.NoError(t, err)
	assert.Equal(t, Numeric, col.Kind())

	col, err = tb.Column(`position`)
	require.NoError(t, err)
	assert.Equal(t, Categorical, col.Kind())

	empty := &Column{Values: []any{nil, nil}}
	assert.Equal(t, Categorical, empty.Kind())
	assert.Equal(t, `numeric`, Numeric.String())
}

func TestDistinctFirstSeen(t *testing.T) {
	tb := sampleTable(t)
	col, _ := tb.Column(`position`)
	assert.Equal(t, []string{`FWD`, `MID`, `GK`}, col.Distinct())
}

func TestFloats(t *testing.T) {
	tb := sampleTable(t)
	col, _ := tb.Column(`minutes`)
	values := col.Floats()
	assert.Equal(t, 2767.0, values[0])
	assert.Equal(t, 2955.5, values[1])
	assert.True(t, math.IsNaN(values[2]))
}

func TestUnknownColumn(t *testing.T) {
	tb := sampleTable(t)
	_, err := tb.Column(`Minute`)
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Contains(t, err.Error(), `did you mean minutes?`)

	_, err = tb.Column(`xyz`)
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.NotContains(t, err.Error(), `did you mean`)
}

func TestRowLength(t *testing.T) {
	tb, err := New(`a`, `b`)
	require.NoError(t, err)
	assert.ErrorIs(t, tb.AddRow(1), ErrRowLength)
	assert.NoError(t, tb.AddRow(1, 2))
	assert.Equal(t, 1, tb.Len())

	assert.ErrorIs(t, tb.AddColumn(`c`, []any{1, 2}), ErrRowLength)
	assert.NoError(t, tb.AddColumn(`c`, []any{3}))
	assert.ErrorIs(t, tb.AddColumn(`c`, []any{3}), ErrDuplicateColumn)
	assert.Equal(t, []string{`a`, `b`, `c`}, tb.Columns())

	_, err = New(`a`, `a`)
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestFromRecords(t *testing.T) {
	tb, err := FromRecords([]string{`team`, `goals`}, []map[string]any{
		{`team`: `ARS`, `goals`: 91},
		{`team`: `MCI`},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())
	col, _ := tb.Column(`goals`)
	assert.Equal(t, []any{91, nil}, col.Values)
	pp.Println(tb.String())
}

func TestMakeValue(t *testing.T) {
	assert.Equal(t, 42, MakeValue(`goals`, `42`))
	assert.Equal(t, 4.5, MakeValue(`xg`, ` 4.5 `))
	assert.Equal(t, `FWD`, MakeValue(`position`, `FWD`))
	assert.Equal(t, `42`, MakeValue(`str_code`, `42`))
	assert.Equal(t, true, MakeValue(`bool_home`, `true`))
	assert.Nil(t, MakeValue(`goals`, ``))
	assert.Equal(t, `inf`, MakeValue(`label`, `inf`))

	v := MakeValue(`kickoff`, `2024-08-16`)
	tm, ok := v.(time.Time)
	assert.True(t, ok)
	assert.Equal(t, `2024-08-16`, String(tm))
}

func TestString(t *testing.T) {
	assert.Equal(t, `12`, String(12))
	assert.Equal(t, `1.5`, String(1.5))
	assert.Equal(t, ``, String(nil))
	assert.Equal(t, `2024-08-16 19:30:00`, String(time.Date(2024, 8, 16, 19, 30, 0, 0, time.UTC)))
}
