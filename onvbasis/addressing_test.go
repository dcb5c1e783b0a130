package onvbasis

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressOf_ConcreteScenario(t *testing.T) {
	b, err := New(5, 2)
	require.NoError(t, err)

	// Orbitals {0, 1} form the reverse-lexically smallest configuration,
	// {3, 4} the largest.
	assert.Equal(t, uint64(0), b.AddressOf(0b00011))
	assert.Equal(t, uint64(9), b.AddressOf(0b11000))

	assert.Equal(t, uint64(0b00011), b.RepresentationOf(0))
	assert.Equal(t, uint64(0b11000), b.RepresentationOf(9))
}

func TestAddressOf_FullOrdering(t *testing.T) {
	b, err := New(5, 2)
	require.NoError(t, err)

	// All C(5, 2) configurations in address order.
	want := []uint64{
		0b00011, 0b00101, 0b00110, 0b01001, 0b01010,
		0b01100, 0b10001, 0b10010, 0b10100, 0b11000,
	}
	for address, representation := range want {
		assert.Equal(t, uint64(address), b.AddressOf(representation))
		assert.Equal(t, representation, b.RepresentationOf(uint64(address)))
	}
}

func TestAddressing_RoundTrip(t *testing.T) {
	for m := 1; m <= 12; m++ {
		for n := 0; n <= m; n++ {
			b, err := New(m, n)
			require.NoError(t, err)

			for a := uint64(0); a < b.Dimension(); a++ {
				r := b.RepresentationOf(a)
				assert.Equal(t, n, bits.OnesCount64(r), "M=%d N=%d a=%d", m, n, a)
				assert.Equal(t, a, b.AddressOf(r), "M=%d N=%d a=%d", m, n, a)
			}
		}
	}
}

func TestNextPermutationOf(t *testing.T) {
	b, err := New(3, 2)
	require.NoError(t, err)

	assert.Equal(t, uint64(0b101), b.NextPermutationOf(0b011))
	assert.Equal(t, uint64(0b110), b.NextPermutationOf(0b101))
}

func TestNextPermutationOf_EnumeratesAscendingAddresses(t *testing.T) {
	for _, tc := range []struct{ m, n int }{{5, 2}, {6, 3}, {8, 4}, {10, 2}, {11, 7}} {
		b, err := New(tc.m, tc.n)
		require.NoError(t, err)

		r := b.RepresentationOf(0)
		for a := uint64(0); a+1 < b.Dimension(); a++ {
			next := b.NextPermutationOf(r)
			assert.Equal(t, tc.n, bits.OnesCount64(next))
			assert.Equal(t, a+1, b.AddressOf(next), "M=%d N=%d", tc.m, tc.n)
			r = next
		}
	}
}

func TestONVFromAddress(t *testing.T) {
	b, err := New(6, 3)
	require.NoError(t, err)

	o := b.ONVFromAddress(0)
	assert.Equal(t, uint64(0b000111), o.Representation())
	assert.Equal(t, 3, o.ElectronCount())

	last := b.ONVFromAddress(b.Dimension() - 1)
	assert.Equal(t, uint64(0b111000), last.Representation())
}

func TestTransformToAddress(t *testing.T) {
	b, err := New(6, 3)
	require.NoError(t, err)

	o := b.ONVFromAddress(0)
	for a := uint64(0); a < b.Dimension(); a++ {
		b.TransformToAddress(o, a)
		assert.Equal(t, a, b.AddressOf(o.Representation()))
	}
}

func TestTransformToNextPermutation(t *testing.T) {
	b, err := New(5, 2)
	require.NoError(t, err)

	o := b.ONVFromAddress(0)
	b.TransformToNextPermutation(o)

	assert.Equal(t, uint64(0b00101), o.Representation())
	assert.Equal(t, 0, o.OccupationIndexOf(0))
	assert.Equal(t, 2, o.OccupationIndexOf(1))
}
