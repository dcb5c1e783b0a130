package onvbasis

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/lelemmen/gqcp"
	"github.com/lelemmen/gqcp/onv"
	"github.com/lelemmen/gqcp/operator"
)

// checkOrbitals verifies that an operator's orbital count matches the basis.
func (b *ONVBasis) checkOrbitals(orbitals int) error {
	if orbitals != b.orbitals {
		return &gqcp.ErrDimensionMismatch{Expected: b.orbitals, Actual: orbitals}
	}
	return nil
}

// checkVector verifies that a vector spans the basis dimension.
func (b *ONVBasis) checkVector(v *mat.VecDense) error {
	if uint64(v.Len()) != b.dim {
		return &gqcp.ErrDimensionMismatch{Expected: int(b.dim), Actual: v.Len()}
	}
	return nil
}

// oneElectronRange feeds the matrix elements of a one-electron operator over
// the address range [lo, hi) into an accumulator.
//
// Every address is visited with a running ONV cursor; its single excitations
// are generated directly on the addressing graph, so the excited address is
// known without a decode. Only excitations to higher orbitals are emitted,
// which in reverse-lexical ordering means only addresses J > I.
func (b *ONVBasis) oneElectronRange(h *mat.Dense, lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
	o := b.ONVFromAddress(lo)

	for address := lo; address < hi; address++ {
		if includeDiagonal {
			var d float64
			for e1 := 0; e1 < b.electrons; e1++ {
				p := o.OccupationIndexOf(e1)
				d += h.At(p, p)
			}
			acc.AddDiagonal(address, d)
		}

		for e1 := 0; e1 < b.electrons; e1++ {
			p := o.OccupationIndexOf(e1)

			// Annihilate at p, then walk the creation index upwards,
			// correcting the address incrementally.
			target := address - b.vertexWeights[p][e1+1]
			q, e2, sign := p+1, e1+1, 1
			b.shiftToNextUnoccupied(o, &target, &q, &e2, &sign)
			for q < b.orbitals {
				j := target + b.vertexWeights[q][e2]

				v := float64(sign) * h.At(p, q)
				acc.Add(address, j, v)
				if mirror {
					acc.Add(j, address, v)
				}

				q++
				b.shiftToNextUnoccupied(o, &target, &q, &e2, &sign)
			}
		}

		if address+1 < b.dim {
			b.TransformToNextPermutation(o)
		}
	}
}

// EvaluateOneElectronDense evaluates a one-electron operator as a dense
// symmetric matrix over the full ONV basis.
func (b *ONVBasis) EvaluateOneElectronDense(f *operator.OneElectron, includeDiagonal bool, optFns ...Option) (*mat.Dense, error) {
	if err := b.checkOrbitals(f.NumberOfOrbitals()); err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating one-electron operator", "target", "dense", "dim", b.dim, "workers", o.workers)

	h := f.Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		b.oneElectronRange(h, lo, hi, acc, includeDiagonal, mirror)
	}
	return b.evaluateDense(pass, includeDiagonal, o), nil
}

// EvaluateOneElectronSparse evaluates a one-electron operator as a sparse
// CSR matrix over the full ONV basis. Storage is pre-sized exactly from the
// coupling counts, so assembly never reallocates.
func (b *ONVBasis) EvaluateOneElectronSparse(f *operator.OneElectron, includeDiagonal bool, optFns ...Option) (*sparse.CSR, error) {
	if err := b.checkOrbitals(f.NumberOfOrbitals()); err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating one-electron operator", "target", "sparse", "dim", b.dim, "workers", o.workers)

	h := f.Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		b.oneElectronRange(h, lo, hi, acc, includeDiagonal, mirror)
	}
	return b.evaluateSparse(pass, b.CountOneElectronCouplings, includeDiagonal, o), nil
}

// EvaluateOneElectronDiagonal evaluates only the diagonal of a one-electron
// operator: element I is the sum of h(p, p) over the orbitals occupied in
// the I-th ONV.
func (b *ONVBasis) EvaluateOneElectronDiagonal(f *operator.OneElectron) (*mat.VecDense, error) {
	if err := b.checkOrbitals(f.NumberOfOrbitals()); err != nil {
		return nil, err
	}

	h := f.Parameters()
	out := mat.NewVecDense(int(b.dim), nil)
	b.ForEach(func(o *onv.ONV, address uint64) {
		var d float64
		for e1 := 0; e1 < b.electrons; e1++ {
			p := o.OccupationIndexOf(e1)
			d += h.At(p, p)
		}
		out.SetVec(int(address), d)
	})
	return out, nil
}

// EvaluateOneElectronMatvec computes the matrix-vector product of a
// one-electron operator with x, without materializing the matrix. The
// diagonal must be supplied, typically from EvaluateOneElectronDiagonal, so
// that repeated products reuse it.
func (b *ONVBasis) EvaluateOneElectronMatvec(f *operator.OneElectron, x, diagonal *mat.VecDense, optFns ...Option) (*mat.VecDense, error) {
	if err := b.checkOrbitals(f.NumberOfOrbitals()); err != nil {
		return nil, err
	}
	if err := b.checkVector(x); err != nil {
		return nil, err
	}
	if err := b.checkVector(diagonal); err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating one-electron operator", "target", "matvec", "dim", b.dim, "workers", o.workers)

	h := f.Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		b.oneElectronRange(h, lo, hi, acc, includeDiagonal, mirror)
	}
	out := b.evaluateMatvec(pass, vecSlice(x), vecSlice(diagonal), o)
	return mat.NewVecDense(int(b.dim), out), nil
}
