package onvbasis

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/lelemmen/gqcp"
	"github.com/lelemmen/gqcp/onv"
	"github.com/lelemmen/gqcp/operator"
)

// prepareTwoElectron validates a two-electron operator for evaluation and
// returns it expressed in chemist's notation. Antisymmetrized parameters are
// rejected: the Slater-Condon expressions below antisymmetrize the raw
// integrals themselves, and applying them to pre-antisymmetrized parameters
// would double-count the exchange part.
func (b *ONVBasis) prepareTwoElectron(g *operator.TwoElectron) (*operator.TwoElectron, error) {
	if err := b.checkOrbitals(g.NumberOfOrbitals()); err != nil {
		return nil, err
	}
	if g.IsAntisymmetrized() {
		return nil, gqcp.ErrAntisymmetrizedOperator
	}
	return g.InChemistsNotation(), nil
}

// hamiltonianRange feeds the matrix elements of a Hamiltonian over the
// address range [lo, hi) into an accumulator, by the Slater-Condon rules.
//
// Diagonal elements sum h(p,p) plus half the Coulomb-minus-exchange terms
// over occupied pairs. Single excitations reuse the incremental address walk
// of the one-electron pass, with the two-electron contribution summed over
// the remaining occupied orbitals. Double excitations enumerate occupied and
// virtual pairs directly; restricting the larger created orbital to lie
// above the larger annihilated one keeps every emitted element above the
// diagonal, matching the coupling counts.
func (b *ONVBasis) hamiltonianRange(core *mat.Dense, g *operator.TwoElectron, lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
	k := b.orbitals
	gp := g.RawParameters()
	gAt := func(p, q, r, s int) float64 {
		return gp[((p*k+q)*k+r)*k+s]
	}

	o := b.ONVFromAddress(lo)
	virtuals := make([]int, 0, k-b.electrons)

	for address := lo; address < hi; address++ {
		r := o.Representation()

		if includeDiagonal {
			var d float64
			for e1 := 0; e1 < b.electrons; e1++ {
				p := o.OccupationIndexOf(e1)
				d += core.At(p, p)
				for e2 := 0; e2 < b.electrons; e2++ {
					q := o.OccupationIndexOf(e2)
					d += 0.5 * (gAt(p, p, q, q) - gAt(p, q, q, p))
				}
			}
			acc.AddDiagonal(address, d)
		}

		// Single excitations.
		for e1 := 0; e1 < b.electrons; e1++ {
			p := o.OccupationIndexOf(e1)

			target := address - b.vertexWeights[p][e1+1]
			q, e2, sign := p+1, e1+1, 1
			b.shiftToNextUnoccupied(o, &target, &q, &e2, &sign)
			for q < b.orbitals {
				j := target + b.vertexWeights[q][e2]

				v := core.At(p, q)
				for e3 := 0; e3 < b.electrons; e3++ {
					t := o.OccupationIndexOf(e3)
					if t == p {
						continue
					}
					v += gAt(p, q, t, t) - gAt(p, t, t, q)
				}
				v *= float64(sign)

				acc.Add(address, j, v)
				if mirror {
					acc.Add(j, address, v)
				}

				q++
				b.shiftToNextUnoccupied(o, &target, &q, &e2, &sign)
			}
		}

		// Double excitations.
		virtuals = virtuals[:0]
		for p := 0; p < k; p++ {
			if o.IsVirtual(p) {
				virtuals = append(virtuals, p)
			}
		}
		for e1 := 0; e1 < b.electrons; e1++ {
			p1 := o.OccupationIndexOf(e1)
			for e2 := e1 + 1; e2 < b.electrons; e2++ {
				p2 := o.OccupationIndexOf(e2)
				for i1 := 0; i1 < len(virtuals); i1++ {
					q1 := virtuals[i1]
					for i2 := i1 + 1; i2 < len(virtuals); i2++ {
						q2 := virtuals[i2]
						if q2 <= p2 {
							continue
						}

						// Phase of the sequential substitutions p1 -> q1,
						// then p2 -> q2 on the intermediate pattern.
						sign := substitutionSign(r, p1, q1)
						r1 := r&^(uint64(1)<<p1) | uint64(1)<<q1
						sign *= substitutionSign(r1, p2, q2)
						r2 := r1&^(uint64(1)<<p2) | uint64(1)<<q2

						j := b.AddressOf(r2)
						v := float64(sign) * (gAt(p1, q1, p2, q2) - gAt(p1, q2, p2, q1))

						acc.Add(address, j, v)
						if mirror {
							acc.Add(j, address, v)
						}
					}
				}
			}
		}

		if address+1 < b.dim {
			b.TransformToNextPermutation(o)
		}
	}
}

// hamiltonianDiagonal computes the diagonal element of a Hamiltonian for a
// single ONV.
func hamiltonianDiagonal(core *mat.Dense, gAt func(p, q, r, s int) float64, o *onv.ONV) float64 {
	var d float64
	for e1 := 0; e1 < o.ElectronCount(); e1++ {
		p := o.OccupationIndexOf(e1)
		d += core.At(p, p)
		for e2 := 0; e2 < o.ElectronCount(); e2++ {
			q := o.OccupationIndexOf(e2)
			d += 0.5 * (gAt(p, p, q, q) - gAt(p, q, q, p))
		}
	}
	return d
}

// EvaluateHamiltonianDense evaluates a Hamiltonian as a dense symmetric
// matrix over the full ONV basis.
func (b *ONVBasis) EvaluateHamiltonianDense(h *operator.Hamiltonian, includeDiagonal bool, optFns ...Option) (*mat.Dense, error) {
	g, err := b.prepareTwoElectron(h.TwoElectron())
	if err != nil {
		return nil, err
	}
	if err := b.checkOrbitals(h.Core().NumberOfOrbitals()); err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating hamiltonian", "target", "dense", "dim", b.dim, "workers", o.workers)

	core := h.Core().Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		b.hamiltonianRange(core, g, lo, hi, acc, includeDiagonal, mirror)
	}
	return b.evaluateDense(pass, includeDiagonal, o), nil
}

// EvaluateHamiltonianSparse evaluates a Hamiltonian as a sparse CSR matrix
// over the full ONV basis, with exactly pre-sized triplet storage.
func (b *ONVBasis) EvaluateHamiltonianSparse(h *operator.Hamiltonian, includeDiagonal bool, optFns ...Option) (*sparse.CSR, error) {
	g, err := b.prepareTwoElectron(h.TwoElectron())
	if err != nil {
		return nil, err
	}
	if err := b.checkOrbitals(h.Core().NumberOfOrbitals()); err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating hamiltonian", "target", "sparse", "dim", b.dim, "workers", o.workers)

	core := h.Core().Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		b.hamiltonianRange(core, g, lo, hi, acc, includeDiagonal, mirror)
	}
	return b.evaluateSparse(pass, b.CountTwoElectronCouplings, includeDiagonal, o), nil
}

// EvaluateHamiltonianDiagonal evaluates only the diagonal of a Hamiltonian.
func (b *ONVBasis) EvaluateHamiltonianDiagonal(h *operator.Hamiltonian) (*mat.VecDense, error) {
	g, err := b.prepareTwoElectron(h.TwoElectron())
	if err != nil {
		return nil, err
	}
	if err := b.checkOrbitals(h.Core().NumberOfOrbitals()); err != nil {
		return nil, err
	}

	k := b.orbitals
	gp := g.RawParameters()
	gAt := func(p, q, r, s int) float64 {
		return gp[((p*k+q)*k+r)*k+s]
	}
	core := h.Core().Parameters()

	out := mat.NewVecDense(int(b.dim), nil)
	b.ForEach(func(o *onv.ONV, address uint64) {
		out.SetVec(int(address), hamiltonianDiagonal(core, gAt, o))
	})
	return out, nil
}

// EvaluateHamiltonianMatvec computes the matrix-vector product of a
// Hamiltonian with x, without materializing the matrix. The diagonal must be
// supplied, typically from EvaluateHamiltonianDiagonal, so that iterative
// eigensolvers can reuse it across products.
func (b *ONVBasis) EvaluateHamiltonianMatvec(h *operator.Hamiltonian, x, diagonal *mat.VecDense, optFns ...Option) (*mat.VecDense, error) {
	g, err := b.prepareTwoElectron(h.TwoElectron())
	if err != nil {
		return nil, err
	}
	if err := b.checkOrbitals(h.Core().NumberOfOrbitals()); err != nil {
		return nil, err
	}
	if err := b.checkVector(x); err != nil {
		return nil, err
	}
	if err := b.checkVector(diagonal); err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating hamiltonian", "target", "matvec", "dim", b.dim, "workers", o.workers)

	core := h.Core().Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		b.hamiltonianRange(core, g, lo, hi, acc, includeDiagonal, mirror)
	}
	out := b.evaluateMatvec(pass, vecSlice(x), vecSlice(diagonal), o)
	return mat.NewVecDense(int(b.dim), out), nil
}

// zeroCoreHamiltonian wraps a two-electron operator as a Hamiltonian with a
// zero one-electron part, so that pure two-electron evaluation shares the
// Hamiltonian traversal.
func (b *ONVBasis) zeroCoreHamiltonian(g *operator.TwoElectron) (*operator.Hamiltonian, error) {
	return operator.NewHamiltonian(operator.ZeroOneElectron(g.NumberOfOrbitals()), g)
}

// EvaluateTwoElectronDense evaluates a two-electron operator as a dense
// symmetric matrix over the full ONV basis.
func (b *ONVBasis) EvaluateTwoElectronDense(g *operator.TwoElectron, includeDiagonal bool, optFns ...Option) (*mat.Dense, error) {
	h, err := b.zeroCoreHamiltonian(g)
	if err != nil {
		return nil, err
	}
	return b.EvaluateHamiltonianDense(h, includeDiagonal, optFns...)
}

// EvaluateTwoElectronSparse evaluates a two-electron operator as a sparse
// CSR matrix over the full ONV basis.
func (b *ONVBasis) EvaluateTwoElectronSparse(g *operator.TwoElectron, includeDiagonal bool, optFns ...Option) (*sparse.CSR, error) {
	h, err := b.zeroCoreHamiltonian(g)
	if err != nil {
		return nil, err
	}
	return b.EvaluateHamiltonianSparse(h, includeDiagonal, optFns...)
}

// EvaluateTwoElectronDiagonal evaluates only the diagonal of a two-electron
// operator.
func (b *ONVBasis) EvaluateTwoElectronDiagonal(g *operator.TwoElectron) (*mat.VecDense, error) {
	h, err := b.zeroCoreHamiltonian(g)
	if err != nil {
		return nil, err
	}
	return b.EvaluateHamiltonianDiagonal(h)
}

// EvaluateTwoElectronMatvec computes the matrix-vector product of a
// two-electron operator with x, without materializing the matrix.
func (b *ONVBasis) EvaluateTwoElectronMatvec(g *operator.TwoElectron, x, diagonal *mat.VecDense, optFns ...Option) (*mat.VecDense, error) {
	h, err := b.zeroCoreHamiltonian(g)
	if err != nil {
		return nil, err
	}
	return b.EvaluateHamiltonianMatvec(h, x, diagonal, optFns...)
}
