package onvbasis

import (
	"math/bits"

	"github.com/lelemmen/gqcp"
	"github.com/lelemmen/gqcp/onv"
	"github.com/lelemmen/gqcp/operator"
)

// MatrixElement computes the single Hamiltonian matrix element between the
// ONVs at the bra and ket addresses, without evaluating the full matrix.
//
// Configurations differing in more than two orbital pairs never couple, so
// the element is resolved by the occupation difference: diagonal, single or
// double excitation, zero otherwise.
func (b *ONVBasis) MatrixElement(h *operator.Hamiltonian, bra, ket uint64) (float64, error) {
	g, err := b.prepareTwoElectron(h.TwoElectron())
	if err != nil {
		return 0, err
	}
	if err := b.checkOrbitals(h.Core().NumberOfOrbitals()); err != nil {
		return 0, err
	}
	if bra >= b.dim {
		return 0, &gqcp.ErrIndexOutOfRange{Index: bra, Dim: b.dim}
	}
	if ket >= b.dim {
		return 0, &gqcp.ErrIndexOutOfRange{Index: ket, Dim: b.dim}
	}

	k := b.orbitals
	gp := g.RawParameters()
	gAt := func(p, q, r, s int) float64 {
		return gp[((p*k+q)*k+r)*k+s]
	}
	core := h.Core().Parameters()

	rI := b.RepresentationOf(bra)
	rJ := b.RepresentationOf(ket)
	diff := rI ^ rJ

	switch bits.OnesCount64(diff) {
	case 0:
		o := onv.FromRepresentation(b.orbitals, rI)
		return hamiltonianDiagonal(core, gAt, o), nil

	case 2:
		p := bits.TrailingZeros64(rI & diff)
		q := bits.TrailingZeros64(rJ & diff)

		v := core.At(p, q)
		for occ := rI &^ (uint64(1) << p); occ != 0; occ &= occ - 1 {
			t := bits.TrailingZeros64(occ)
			v += gAt(p, q, t, t) - gAt(p, t, t, q)
		}
		return float64(substitutionSign(rI, p, q)) * v, nil

	case 4:
		annihilated := rI & diff
		p1 := bits.TrailingZeros64(annihilated)
		p2 := bits.TrailingZeros64(annihilated & (annihilated - 1))

		created := rJ & diff
		q1 := bits.TrailingZeros64(created)
		q2 := bits.TrailingZeros64(created & (created - 1))

		sign := substitutionSign(rI, p1, q1)
		r1 := rI&^(uint64(1)<<p1) | uint64(1)<<q1
		sign *= substitutionSign(r1, p2, q2)

		return float64(sign) * (gAt(p1, q1, p2, q2) - gAt(p1, q2, p2, q1)), nil

	default:
		return 0, nil
	}
}
