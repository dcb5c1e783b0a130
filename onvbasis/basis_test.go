package onvbasis

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/lelemmen/gqcp"
	"github.com/lelemmen/gqcp/onv"
)

func TestNew(t *testing.T) {
	b, err := New(5, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, b.NumberOfOrbitals())
	assert.Equal(t, 2, b.NumberOfElectrons())
	assert.Equal(t, uint64(10), b.Dimension())
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		orbitals  int
		electrons int
	}{
		{"zero orbitals", 0, 0},
		{"negative orbitals", -1, 0},
		{"more than one word", 65, 2},
		{"negative electrons", 5, -1},
		{"more electrons than orbitals", 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.orbitals, tt.electrons)

			var invalid *gqcp.ErrInvalidBasis
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.orbitals, invalid.Orbitals)
			assert.Equal(t, tt.electrons, invalid.Electrons)
		})
	}
}

func TestNew_EdgeCases(t *testing.T) {
	// N = 0: a single empty configuration.
	b, err := New(5, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.Dimension())
	assert.Equal(t, uint64(0), b.RepresentationOf(0))

	// N = M: a single full configuration.
	b, err = New(5, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), b.Dimension())
	assert.Equal(t, uint64(0b11111), b.RepresentationOf(0))

	// The largest single-word basis.
	b, err = New(64, 32)
	require.NoError(t, err)
	assert.Equal(t, uint64(1832624140942590534), b.Dimension())
}

func TestCalculateDimension(t *testing.T) {
	for m := 1; m <= 20; m++ {
		for n := 0; n <= m; n++ {
			dim, err := CalculateDimension(m, n)
			require.NoError(t, err)
			assert.Equal(t, uint64(combin.Binomial(m, n)), dim, "C(%d, %d)", m, n)
		}
	}
}

func TestCalculateDimension_Overflow(t *testing.T) {
	_, err := CalculateDimension(70, 35)
	assert.ErrorIs(t, err, gqcp.ErrOverflow)

	// C(64, 32) is the largest dimension a 64-orbital basis can reach and
	// still fits.
	dim, err := CalculateDimension(64, 32)
	require.NoError(t, err)
	assert.Equal(t, uint64(1832624140942590534), dim)
}

func TestCalculateDimension_Invalid(t *testing.T) {
	var invalid *gqcp.ErrInvalidBasis

	_, err := CalculateDimension(5, 6)
	assert.ErrorAs(t, err, &invalid)

	_, err = CalculateDimension(-1, 0)
	assert.ErrorAs(t, err, &invalid)
}

func TestVertexWeights(t *testing.T) {
	b, err := New(5, 2)
	require.NoError(t, err)

	// The table for M=5, N=2, rows p = 0..5.
	want := [][]uint64{
		{1, 0, 0},
		{1, 1, 0},
		{1, 2, 1},
		{1, 3, 3},
		{0, 4, 6},
		{0, 0, 10},
	}
	for p, row := range want {
		for m, w := range row {
			assert.Equal(t, w, b.VertexWeight(p, m), "W(%d, %d)", p, m)
		}
	}

	// The final vertex accumulates every path: the basis dimension.
	assert.Equal(t, b.Dimension(), b.VertexWeight(5, 2))
}

func TestArcWeight(t *testing.T) {
	b, err := New(6, 3)
	require.NoError(t, err)

	for p := 0; p < 6; p++ {
		for n := 0; n < 3; n++ {
			assert.Equal(t, b.VertexWeight(p, n+1), b.ArcWeight(p, n))
		}
	}
}

func TestForEach_VisitsEveryAddressInOrder(t *testing.T) {
	for _, tc := range []struct{ m, n int }{{4, 2}, {5, 2}, {6, 3}, {8, 4}, {10, 5}, {12, 3}} {
		b, err := New(tc.m, tc.n)
		require.NoError(t, err)

		var visited uint64
		next := uint64(0)
		b.ForEach(func(o *onv.ONV, address uint64) {
			assert.Equal(t, next, address)
			assert.Equal(t, tc.n, bits.OnesCount64(o.Representation()))
			assert.Equal(t, address, b.AddressOf(o.Representation()))
			next++
			visited++
		})
		assert.Equal(t, b.Dimension(), visited, "M=%d N=%d", tc.m, tc.n)
	}
}

func TestForEach_CursorMustBeCopied(t *testing.T) {
	b, err := New(5, 2)
	require.NoError(t, err)

	// The callback receives a working cursor; only explicit copies survive
	// the advance to the next address.
	var copies []*onv.ONV
	b.ForEach(func(o *onv.ONV, address uint64) {
		copies = append(copies, o.Copy())
	})

	require.Len(t, copies, 10)
	for address, c := range copies {
		assert.Equal(t, uint64(address), b.AddressOf(c.Representation()))
	}
}

func TestForEach_SingleConfiguration(t *testing.T) {
	// N = M leaves nothing to permute; the enumeration must not advance
	// past the only configuration.
	b, err := New(4, 4)
	require.NoError(t, err)

	calls := 0
	b.ForEach(func(o *onv.ONV, address uint64) {
		calls++
		assert.Equal(t, uint64(0b1111), o.Representation())
	})
	assert.Equal(t, 1, calls)
}

func TestNoErrorOnAllDimensions(t *testing.T) {
	// Every (M, N) pair within the word bound must construct; C(64, 32) is
	// the global maximum and fits uint64.
	for m := 1; m <= 64; m++ {
		for n := 0; n <= m; n++ {
			_, err := New(m, n)
			require.NoError(t, err, "M=%d N=%d", m, n)
		}
	}
}
