package onvbasis

import (
	"math/bits"

	"github.com/lelemmen/gqcp/onv"
)

// VertexWeight returns W(p, m), the number of addressing-graph paths arriving
// at orbital level p with m electrons placed.
func (b *ONVBasis) VertexWeight(p, m int) uint64 {
	return b.vertexWeights[p][m]
}

// ArcWeight returns the weight of the diagonal arc leaving vertex (p, n),
// i.e. the address contribution of the n-th electron (0-indexed) occupying
// orbital p. Arc and vertex weights are related by a unit electron shift.
func (b *ONVBasis) ArcWeight(p, n int) uint64 {
	return b.vertexWeights[p][n+1]
}

// AddressOf computes the dense address of a representation by walking its set
// bits in ascending order and accumulating the vertex weight of each occupied
// orbital at its running electron count. O(N).
func (b *ONVBasis) AddressOf(representation uint64) uint64 {
	var address uint64
	electronCount := 0
	for r := representation; r != 0; r &= r - 1 {
		p := bits.TrailingZeros64(r)
		electronCount++
		address += b.vertexWeights[p][electronCount]
	}
	return address
}

// RepresentationOf computes the bit pattern at the given address: the exact
// inverse of AddressOf. It walks orbitals from M-1 down to 0 and greedily
// marks an orbital occupied whenever its vertex weight still fits in the
// remaining address. O(M).
func (b *ONVBasis) RepresentationOf(address uint64) uint64 {
	if b.electrons == 0 {
		return 0
	}

	var representation uint64
	m := b.electrons
	for p := b.orbitals; p > 0; p-- {
		if weight := b.vertexWeights[p-1][m]; weight <= address {
			address -= weight
			representation |= uint64(1) << (p - 1)

			m--
			if m == 0 {
				break
			}
		}
	}
	return representation
}

// NextPermutationOf returns the lexicographically next bit pattern with the
// same number of set bits, e.g. 011 -> 101 -> 110.
//
// The result is undefined for the lexically-last representation of the basis;
// enumeration must never call it there.
func (b *ONVBasis) NextPermutationOf(representation uint64) uint64 {
	// t has the least significant zero bits of the representation set.
	t := representation | (representation - 1)

	// Set the most significant bit to change, clear the trailing block and
	// refill the low end with the required ones.
	return (t + 1) | (((^t & (t + 1)) - 1) >> (bits.TrailingZeros64(representation) + 1))
}

// ONVFromAddress creates the ONV at the given address in this basis.
func (b *ONVBasis) ONVFromAddress(address uint64) *onv.ONV {
	return onv.FromRepresentation(b.orbitals, b.RepresentationOf(address))
}

// TransformToNextPermutation advances the ONV to the next one in this basis.
func (b *ONVBasis) TransformToNextPermutation(o *onv.ONV) {
	o.ReplaceRepresentationWith(b.NextPermutationOf(o.Representation()))
}

// TransformToAddress rewrites the ONV to the configuration at the given
// address in this basis.
func (b *ONVBasis) TransformToAddress(o *onv.ONV, address uint64) {
	o.ReplaceRepresentationWith(b.RepresentationOf(address))
}
