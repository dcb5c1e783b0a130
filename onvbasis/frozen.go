package onvbasis

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/lelemmen/gqcp"
	"github.com/lelemmen/gqcp/operator"
)

// FrozenONVBasis treats the lowest X orbitals as permanently doubly occupied
// and spans only the active configurations over the remaining orbitals. It
// owns an inner basis over (M-X, N-X); operators over all M orbitals are
// folded into active-space operators plus a constant core energy before
// every evaluation is delegated.
type FrozenONVBasis struct {
	active *ONVBasis
	frozen int
}

// NewFrozen constructs a frozen-core basis over orbitals total orbitals and
// electrons total electrons, with the lowest frozen orbitals held occupied.
func NewFrozen(orbitals, electrons, frozen int) (*FrozenONVBasis, error) {
	if frozen < 0 || frozen > electrons {
		return nil, &gqcp.ErrInvalidBasis{Orbitals: orbitals, Electrons: electrons}
	}
	active, err := New(orbitals-frozen, electrons-frozen)
	if err != nil {
		return nil, err
	}
	return &FrozenONVBasis{active: active, frozen: frozen}, nil
}

// NumberOfOrbitals returns the total orbital count, frozen orbitals included.
func (f *FrozenONVBasis) NumberOfOrbitals() int { return f.active.orbitals + f.frozen }

// NumberOfElectrons returns the total electron count, frozen electrons
// included.
func (f *FrozenONVBasis) NumberOfElectrons() int { return f.active.electrons + f.frozen }

// NumberOfFrozenOrbitals returns the frozen orbital count X.
func (f *FrozenONVBasis) NumberOfFrozenOrbitals() int { return f.frozen }

// Active returns the inner basis over the active orbitals.
func (f *FrozenONVBasis) Active() *ONVBasis { return f.active }

// Dimension returns the dimension of the active configuration space.
func (f *FrozenONVBasis) Dimension() uint64 { return f.active.dim }

// FreezeOneElectron restricts a one-electron operator to the active orbital
// block and returns it together with the core energy of the frozen
// orbitals, 2 h(i,i) summed over i < X with the frozen orbitals counted as
// doubly occupied.
func (f *FrozenONVBasis) FreezeOneElectron(op *operator.OneElectron) (*operator.OneElectron, float64, error) {
	if op.NumberOfOrbitals() != f.NumberOfOrbitals() {
		return nil, 0, &gqcp.ErrDimensionMismatch{Expected: f.NumberOfOrbitals(), Actual: op.NumberOfOrbitals()}
	}

	x := f.frozen
	h := op.Parameters()

	var offset float64
	for i := 0; i < x; i++ {
		offset += 2 * h.At(i, i)
	}

	ka := f.active.orbitals
	active := operator.ZeroOneElectron(ka)
	for a := 0; a < ka; a++ {
		for bb := 0; bb < ka; bb++ {
			active.Parameters().Set(a, bb, h.At(x+a, x+bb))
		}
	}
	return active, offset, nil
}

// FreezeHamiltonian folds the frozen-orbital contributions of a Hamiltonian
// into an active-space Hamiltonian and the constant core energy.
//
// The active core picks up the Coulomb-minus-exchange field of the frozen
// orbitals, h'(a,b) = h(X+a,X+b) + sum_{i<X} [2 g(i,i,X+a,X+b) -
// g(i,X+a,X+b,i)], the two-electron part is restricted to the active block,
// and the core energy collects the purely frozen terms, sum_{i<X} 2 h(i,i)
// + sum_{i,j<X} [2 g(i,i,j,j) - g(i,j,j,i)].
func (f *FrozenONVBasis) FreezeHamiltonian(h *operator.Hamiltonian) (*operator.Hamiltonian, float64, error) {
	if h.NumberOfOrbitals() != f.NumberOfOrbitals() {
		return nil, 0, &gqcp.ErrDimensionMismatch{Expected: f.NumberOfOrbitals(), Actual: h.NumberOfOrbitals()}
	}
	if h.TwoElectron().IsAntisymmetrized() {
		return nil, 0, gqcp.ErrAntisymmetrizedOperator
	}
	g := h.TwoElectron().InChemistsNotation()

	x := f.frozen
	ka := f.active.orbitals
	core := h.Core().Parameters()

	var offset float64
	for i := 0; i < x; i++ {
		offset += 2 * core.At(i, i)
		for j := 0; j < x; j++ {
			offset += 2*g.Parameter(i, i, j, j) - g.Parameter(i, j, j, i)
		}
	}

	activeCore := operator.ZeroOneElectron(ka)
	for a := 0; a < ka; a++ {
		for bb := 0; bb < ka; bb++ {
			v := core.At(x+a, x+bb)
			for i := 0; i < x; i++ {
				v += 2*g.Parameter(i, i, x+a, x+bb) - g.Parameter(i, x+a, x+bb, i)
			}
			activeCore.Parameters().Set(a, bb, v)
		}
	}

	activeTwo := operator.ZeroTwoElectron(ka)
	for a := 0; a < ka; a++ {
		for bb := 0; bb < ka; bb++ {
			for c := 0; c < ka; c++ {
				for d := 0; d < ka; d++ {
					activeTwo.SetParameter(a, bb, c, d, g.Parameter(x+a, x+bb, x+c, x+d))
				}
			}
		}
	}

	frozen, err := operator.NewHamiltonian(activeCore, activeTwo)
	if err != nil {
		return nil, 0, err
	}
	return frozen, offset, nil
}

// offsetDiagonal shifts every diagonal contribution by a constant before
// passing it on. The frozen-core evaluators wrap their accumulators with it,
// so the core energy lands in the single diagonal entry each address emits
// and the exact sparse pre-sizing still holds.
type offsetDiagonal struct {
	accumulator
	offset float64
}

func (a offsetDiagonal) AddDiagonal(i uint64, v float64) {
	a.accumulator.AddDiagonal(i, v+a.offset)
}

// FrozenCoreDiagonal returns the constant diagonal contribution of the
// frozen core: the core energy repeated over the active dimension. Matvec
// callers add it to the active diagonal once and reuse the sum.
func (f *FrozenONVBasis) FrozenCoreDiagonal(h *operator.Hamiltonian) (*mat.VecDense, error) {
	_, offset, err := f.FreezeHamiltonian(h)
	if err != nil {
		return nil, err
	}
	out := mat.NewVecDense(int(f.active.dim), nil)
	for i := 0; i < out.Len(); i++ {
		out.SetVec(i, offset)
	}
	return out, nil
}

// EvaluateHamiltonianDense evaluates a full-space Hamiltonian as a dense
// matrix over the active configuration space, core energy on the diagonal.
func (f *FrozenONVBasis) EvaluateHamiltonianDense(h *operator.Hamiltonian, includeDiagonal bool, optFns ...Option) (*mat.Dense, error) {
	frozen, offset, err := f.FreezeHamiltonian(h)
	if err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating frozen-core hamiltonian", "target", "dense", "dim", f.active.dim, "frozen", f.frozen, "workers", o.workers)

	core := frozen.Core().Parameters()
	g := frozen.TwoElectron()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		f.active.hamiltonianRange(core, g, lo, hi, offsetDiagonal{acc, offset}, includeDiagonal, mirror)
	}
	return f.active.evaluateDense(pass, includeDiagonal, o), nil
}

// EvaluateHamiltonianSparse evaluates a full-space Hamiltonian as a sparse
// CSR matrix over the active configuration space, core energy on the
// diagonal.
func (f *FrozenONVBasis) EvaluateHamiltonianSparse(h *operator.Hamiltonian, includeDiagonal bool, optFns ...Option) (*sparse.CSR, error) {
	frozen, offset, err := f.FreezeHamiltonian(h)
	if err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating frozen-core hamiltonian", "target", "sparse", "dim", f.active.dim, "frozen", f.frozen, "workers", o.workers)

	core := frozen.Core().Parameters()
	g := frozen.TwoElectron()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		f.active.hamiltonianRange(core, g, lo, hi, offsetDiagonal{acc, offset}, includeDiagonal, mirror)
	}
	return f.active.evaluateSparse(pass, f.active.CountTwoElectronCouplings, includeDiagonal, o), nil
}

// EvaluateHamiltonianDiagonal evaluates the diagonal of a full-space
// Hamiltonian over the active configuration space, core energy included.
func (f *FrozenONVBasis) EvaluateHamiltonianDiagonal(h *operator.Hamiltonian) (*mat.VecDense, error) {
	frozen, offset, err := f.FreezeHamiltonian(h)
	if err != nil {
		return nil, err
	}
	out, err := f.active.EvaluateHamiltonianDiagonal(frozen)
	if err != nil {
		return nil, err
	}
	for i := 0; i < out.Len(); i++ {
		out.SetVec(i, out.AtVec(i)+offset)
	}
	return out, nil
}

// EvaluateHamiltonianMatvec computes the matrix-vector product of a
// full-space Hamiltonian over the active configuration space. The supplied
// diagonal must already contain the core energy, as produced by
// EvaluateHamiltonianDiagonal.
func (f *FrozenONVBasis) EvaluateHamiltonianMatvec(h *operator.Hamiltonian, x, diagonal *mat.VecDense, optFns ...Option) (*mat.VecDense, error) {
	frozen, _, err := f.FreezeHamiltonian(h)
	if err != nil {
		return nil, err
	}
	return f.active.EvaluateHamiltonianMatvec(frozen, x, diagonal, optFns...)
}

// EvaluateOneElectronDense evaluates a full-space one-electron operator as a
// dense matrix over the active configuration space, core energy on the
// diagonal.
func (f *FrozenONVBasis) EvaluateOneElectronDense(op *operator.OneElectron, includeDiagonal bool, optFns ...Option) (*mat.Dense, error) {
	active, offset, err := f.FreezeOneElectron(op)
	if err != nil {
		return nil, err
	}
	out, err := f.active.EvaluateOneElectronDense(active, includeDiagonal, optFns...)
	if err != nil {
		return nil, err
	}
	if includeDiagonal {
		for i := 0; i < int(f.active.dim); i++ {
			out.Set(i, i, out.At(i, i)+offset)
		}
	}
	return out, nil
}

// EvaluateOneElectronSparse evaluates a full-space one-electron operator as
// a sparse CSR matrix over the active configuration space, core energy on
// the diagonal.
func (f *FrozenONVBasis) EvaluateOneElectronSparse(op *operator.OneElectron, includeDiagonal bool, optFns ...Option) (*sparse.CSR, error) {
	active, offset, err := f.FreezeOneElectron(op)
	if err != nil {
		return nil, err
	}
	o := resolveOptions(optFns...)
	o.logger.Debug("evaluating frozen-core one-electron operator", "target", "sparse", "dim", f.active.dim, "frozen", f.frozen, "workers", o.workers)

	h := active.Parameters()
	pass := func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool) {
		f.active.oneElectronRange(h, lo, hi, offsetDiagonal{acc, offset}, includeDiagonal, mirror)
	}
	return f.active.evaluateSparse(pass, f.active.CountOneElectronCouplings, includeDiagonal, o), nil
}

// EvaluateOneElectronDiagonal evaluates the diagonal of a full-space
// one-electron operator over the active configuration space, core energy
// included.
func (f *FrozenONVBasis) EvaluateOneElectronDiagonal(op *operator.OneElectron) (*mat.VecDense, error) {
	active, offset, err := f.FreezeOneElectron(op)
	if err != nil {
		return nil, err
	}
	out, err := f.active.EvaluateOneElectronDiagonal(active)
	if err != nil {
		return nil, err
	}
	for i := 0; i < out.Len(); i++ {
		out.SetVec(i, out.AtVec(i)+offset)
	}
	return out, nil
}

// EvaluateOneElectronMatvec computes the matrix-vector product of a
// full-space one-electron operator over the active configuration space. The
// supplied diagonal must already contain the core energy.
func (f *FrozenONVBasis) EvaluateOneElectronMatvec(op *operator.OneElectron, x, diagonal *mat.VecDense, optFns ...Option) (*mat.VecDense, error) {
	active, _, err := f.FreezeOneElectron(op)
	if err != nil {
		return nil, err
	}
	return f.active.EvaluateOneElectronMatvec(active, x, diagonal, optFns...)
}
