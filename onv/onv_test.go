package onv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	o := New(5, 2)

	assert.Equal(t, 5, o.OrbitalCount())
	assert.Equal(t, 2, o.ElectronCount())
	assert.Equal(t, uint64(0b00011), o.Representation())
	assert.True(t, o.IsOccupied(0))
	assert.True(t, o.IsOccupied(1))
	assert.False(t, o.IsOccupied(2))
}

func TestFromRepresentation(t *testing.T) {
	o := FromRepresentation(6, 0b101010)

	assert.Equal(t, 3, o.ElectronCount())
	assert.Equal(t, 1, o.OccupationIndexOf(0))
	assert.Equal(t, 3, o.OccupationIndexOf(1))
	assert.Equal(t, 5, o.OccupationIndexOf(2))

	assert.True(t, o.IsVirtual(0))
	assert.False(t, o.IsVirtual(1))
}

func TestReplaceRepresentationWith(t *testing.T) {
	o := New(5, 2)

	o.ReplaceRepresentationWith(0b10100)
	assert.Equal(t, uint64(0b10100), o.Representation())
	assert.Equal(t, 2, o.ElectronCount())
	assert.Equal(t, 2, o.OccupationIndexOf(0))
	assert.Equal(t, 4, o.OccupationIndexOf(1))

	// The occupation cache follows every replacement, including one that
	// changes the electron count.
	o.ReplaceRepresentationWith(0b00111)
	assert.Equal(t, 3, o.ElectronCount())
	assert.Equal(t, 0, o.OccupationIndexOf(0))
	assert.Equal(t, 2, o.OccupationIndexOf(2))
}

func TestCopy(t *testing.T) {
	o := FromRepresentation(5, 0b00011)
	c := o.Copy()

	o.ReplaceRepresentationWith(0b11000)

	assert.Equal(t, uint64(0b00011), c.Representation())
	assert.Equal(t, 0, c.OccupationIndexOf(0))
	assert.Equal(t, uint64(0b11000), o.Representation())
}

func TestCountOccupiedBetween(t *testing.T) {
	o := FromRepresentation(8, 0b01011010)

	tests := []struct {
		name string
		p, q int
		want int
	}{
		{"adjacent orbitals", 1, 2, 0},
		{"one occupied between", 1, 4, 1},
		{"span with two occupied", 0, 6, 3},
		{"reversed order gives the same count", 6, 0, 3},
		{"empty gap", 4, 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.CountOccupiedBetween(tt.p, tt.q))
		})
	}
}

func TestString(t *testing.T) {
	o := FromRepresentation(5, 0b00011)
	assert.Equal(t, "00011", o.String())
}
