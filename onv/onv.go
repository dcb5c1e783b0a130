package onv

import (
	"math/bits"
	"strings"
)

// ONV is an occupation number vector: a bit-pattern configuration over a
// fixed number of orbitals, with a cached decoding of its occupied orbital
// indices in ascending order.
//
// The representation fits a single machine word, so the orbital count must
// not exceed 64. Basis constructors enforce this.
type ONV struct {
	orbitals       int
	representation uint64
	occupations    []int
}

// New creates the lexically smallest ONV for the given orbital and electron
// counts: the lowest electrons bits set.
func New(orbitals, electrons int) *ONV {
	var representation uint64
	if electrons > 0 {
		representation = (uint64(1) << electrons) - 1
	}
	return FromRepresentation(orbitals, representation)
}

// FromRepresentation creates an ONV from a raw bit pattern and decodes its
// occupation cache.
func FromRepresentation(orbitals int, representation uint64) *ONV {
	o := &ONV{orbitals: orbitals}
	o.ReplaceRepresentationWith(representation)
	return o
}

// OrbitalCount returns the number of orbital slots M.
func (o *ONV) OrbitalCount() int { return o.orbitals }

// ElectronCount returns the number of occupied orbitals N.
func (o *ONV) ElectronCount() int { return len(o.occupations) }

// Representation returns the raw bit pattern.
func (o *ONV) Representation() uint64 { return o.representation }

// IsOccupied returns true if orbital p is occupied.
func (o *ONV) IsOccupied(p int) bool {
	return o.representation&(uint64(1)<<p) != 0
}

// IsVirtual returns true if orbital p is unoccupied.
func (o *ONV) IsVirtual(p int) bool {
	return !o.IsOccupied(p)
}

// OccupationIndexOf returns the orbital index of the e-th occupied orbital,
// counting from 0 in ascending orbital order.
func (o *ONV) OccupationIndexOf(e int) int {
	return o.occupations[e]
}

// ReplaceRepresentationWith swaps in a new bit pattern and recomputes the
// occupation cache.
func (o *ONV) ReplaceRepresentationWith(representation uint64) {
	o.representation = representation

	// Decode by repeatedly extracting and clearing the lowest set bit.
	o.occupations = o.occupations[:0]
	for r := representation; r != 0; r &= r - 1 {
		o.occupations = append(o.occupations, bits.TrailingZeros64(r))
	}
}

// Copy returns a stable snapshot of this ONV. Enumeration mutates the
// original in place, so historical state must be copied before the next
// permutation step.
func (o *ONV) Copy() *ONV {
	c := &ONV{
		orbitals:       o.orbitals,
		representation: o.representation,
		occupations:    make([]int, len(o.occupations)),
	}
	copy(c.occupations, o.occupations)
	return c
}

// CountOccupiedBetween returns the number of occupied orbitals strictly
// between orbitals p and q, in either order. This parity drives the
// fermionic sign of a single excitation.
func (o *ONV) CountOccupiedBetween(p, q int) int {
	lo, hi := p, q
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo < 2 {
		return 0
	}
	mask := (uint64(1)<<hi - 1) &^ (uint64(1)<<(lo+1) - 1)
	return bits.OnesCount64(o.representation & mask)
}

// String renders the occupation pattern with the highest orbital on the
// left, e.g. "00011" for orbitals {0, 1} occupied out of 5.
func (o *ONV) String() string {
	var sb strings.Builder
	for p := o.orbitals - 1; p >= 0; p-- {
		if o.IsOccupied(p) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
