package legend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace(t *testing.T) {
	cases := []struct {
		name    string
		policy  Policy
		entries int
		want    Placement
	}{
		{
			name:   `disabled`,
			policy: Policy{Show: false, Loc: `upper right`, Area: Outside},
			want:   Placement{Mode: ModeNone},
		},
		{
			name:   `inside`,
			policy: Policy{Show: true, Loc: `upper right`, Area: Inside},
			want:   Placement{Mode: ModeInside, Loc: `upper right`, Columns: 1},
		},
		{
			name:    `outside side keyword`,
			policy:  Policy{Show: true, Loc: `center left`, Area: Outside},
			entries: 4,
			want:    Placement{Mode: ModeRight, Loc: `center left`, Anchor: Point{1.05, 1}, HasAnchor: true, Columns: 1},
		},
		{
			name:    `outside upper`,
			policy:  Policy{Show: true, Loc: `upper center`, Area: Outside},
			entries: 4,
			want:    Placement{Mode: ModeBelow, Loc: `upper center`, Anchor: Point{0.5, -0.2}, HasAnchor: true, Columns: 4},
		},
		{
			name:    `outside lower with no entries`,
			policy:  Policy{Show: true, Loc: `lower center`, Area: Outside},
			entries: 0,
			want:    Placement{Mode: ModeBelow, Loc: `lower center`, Anchor: Point{0.5, -0.2}, HasAnchor: true, Columns: 1},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Place(c.policy, c.entries))
		})
	}
}

func TestParseArea(t *testing.T) {
	a, err := ParseArea(``)
	assert.NoError(t, err)
	assert.Equal(t, Outside, a)

	a, err = ParseArea(` Inside `)
	assert.NoError(t, err)
	assert.Equal(t, Inside, a)

	_, err = ParseArea(`beside`)
	assert.ErrorIs(t, err, ErrUnknownArea)
}

func TestLocSplit(t *testing.T) {
	assert.True(t, IsCornerLoc(`lower right`))
	assert.False(t, IsCornerLoc(`right`))
	assert.Equal(t, `top`, Vertical(`upper left`))
	assert.Equal(t, `bottom`, Vertical(`lower center`))
	assert.Equal(t, `middle`, Vertical(`center right`))
	assert.Equal(t, `left`, Horizontal(`upper left`))
	assert.Equal(t, `center`, Horizontal(`upper center`))
	assert.Equal(t, `right`, Horizontal(`best`))
	assert.Equal(t, `none`, ModeNone.String())
	assert.Equal(t, `below`, ModeBelow.String())
}
