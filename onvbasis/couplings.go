package onvbasis

import (
	"github.com/lelemmen/gqcp/onv"
)

// CountOneElectronCouplings returns the number of ONVs with a larger address
// that the given ONV couples with through a one-electron excitation.
//
// Only larger addresses are counted: evaluation stores a coupling once and
// fills the mirror entry through Hermitian symmetry.
func (b *ONVBasis) CountOneElectronCouplings(o *onv.ONV) uint64 {
	v := b.orbitals - b.electrons // number of virtual orbitals

	var count uint64
	for e1 := 0; e1 < b.electrons; e1++ {
		p := o.OccupationIndexOf(e1)
		count += uint64(v + e1 - p) // virtual orbitals with an index above p
	}
	return count
}

// CountTwoElectronCouplings returns the number of ONVs with a larger address
// that the given ONV couples with through a two-electron excitation,
// including the single excitations a two-electron operator also generates.
func (b *ONVBasis) CountTwoElectronCouplings(o *onv.ONV) uint64 {
	v := b.orbitals - b.electrons // number of virtual orbitals

	var count uint64
	for e1 := 0; e1 < b.electrons; e1++ {
		p := o.OccupationIndexOf(e1)
		count += uint64(v + e1 - p) // one-electron part

		for e2 := e1 + 1; e2 < b.electrons; e2++ {
			q := o.OccupationIndexOf(e2)
			above := uint64(v + e2 - q) // virtual orbitals above the second electron

			// Double substitutions whose larger target lies above q: one
			// target above with one below, or both above.
			count += (uint64(v) - above) * above
			if above > 1 {
				count += above * (above - 1) / 2
			}
		}
	}
	return count
}

// CountTotalOneElectronCouplings returns the total number of nonzero,
// non-diagonal couplings of a one-electron operator over the whole basis, in
// closed form.
func (b *ONVBasis) CountTotalOneElectronCouplings() uint64 {
	m := uint64(b.orbitals)
	n := uint64(b.electrons)
	return (m - n) * n * b.dim
}

// CountTotalTwoElectronCouplings returns the total number of nonzero,
// non-diagonal couplings of a two-electron operator over the whole basis, in
// closed form.
func (b *ONVBasis) CountTotalTwoElectronCouplings() uint64 {
	m := uint64(b.orbitals)
	n := uint64(b.electrons)

	var doubles uint64
	if v := m - n; v >= 2 {
		doubles = (v * (v - 1) / 2) * n * (n - 1) * b.dim / 2
	}
	return doubles + b.CountTotalOneElectronCouplings()
}
