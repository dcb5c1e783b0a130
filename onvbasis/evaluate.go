package onvbasis

import (
	"math/bits"

	"github.com/james-bowman/sparse"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/lelemmen/gqcp/onv"
)

// rangePass is a traversal over a contiguous address range [lo, hi) that
// feeds matrix elements into an accumulator. When includeDiagonal is false
// the diagonal contributions are skipped; when mirror is true every
// off-diagonal element (I, J) is also emitted at (J, I).
//
// A pass only ever emits off-diagonal elements with their row inside
// [lo, hi), which is what makes the parallel paths race-free.
type rangePass func(lo, hi uint64, acc accumulator, includeDiagonal, mirror bool)

// addressRange is a half-open slice [lo, hi) of the address space.
type addressRange struct {
	lo, hi uint64
}

// partitionAddresses splits [0, dim) into at most workers contiguous,
// non-empty ranges of near-equal size.
func partitionAddresses(dim uint64, workers int) []addressRange {
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > dim {
		workers = int(dim)
	}
	if workers < 1 {
		return nil
	}

	parts := make([]addressRange, 0, workers)
	chunk := dim / uint64(workers)
	extra := dim % uint64(workers)

	lo := uint64(0)
	for i := 0; i < workers; i++ {
		hi := lo + chunk
		if uint64(i) < extra {
			hi++
		}
		parts = append(parts, addressRange{lo: lo, hi: hi})
		lo = hi
	}
	return parts
}

// shiftToNextUnoccupied advances the creation scan of a single excitation
// past a run of occupied orbitals. For every occupied orbital passed, the
// annihilated electron's absence shifts that electron down one rank in the
// address walk, and the excitation sign picks up a factor -1.
//
// On return q points at the first unoccupied orbital at or above its input
// value, e is the electron rank the created electron will take there, and
// address carries the accumulated weight corrections.
func (b *ONVBasis) shiftToNextUnoccupied(o *onv.ONV, address *uint64, q, e *int, sign *int) {
	for *e < b.electrons && *q < b.orbitals && *q == o.OccupationIndexOf(*e) {
		*address += b.vertexWeights[*q][*e]
		*address -= b.vertexWeights[*q][*e+1]
		*e++
		*q++
		*sign = -*sign
	}
}

// substitutionSign returns the fermionic phase factor of moving an electron
// from orbital p to orbital q in the given representation: -1 raised to the
// number of occupied orbitals strictly between them.
func substitutionSign(representation uint64, p, q int) int {
	lo, hi := p, q
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo < 2 {
		return 1
	}

	mask := (uint64(1)<<hi - 1) &^ (uint64(1)<<(lo+1) - 1)
	if bits.OnesCount64(representation&mask)&1 == 1 {
		return -1
	}
	return 1
}

// evaluateDense runs a pass over the whole basis into a fresh dense matrix.
// Workers fill disjoint row ranges of the upper triangle plus the diagonal;
// the lower triangle is filled by a final serial mirror sweep.
func (b *ONVBasis) evaluateDense(pass rangePass, includeDiagonal bool, o options) *mat.Dense {
	n := int(b.dim)
	out := mat.NewDense(n, n, nil)
	acc := &denseAccumulator{m: out}

	parts := partitionAddresses(b.dim, o.workers)
	if len(parts) <= 1 {
		pass(0, b.dim, acc, includeDiagonal, false)
	} else {
		var g errgroup.Group
		for _, part := range parts {
			g.Go(func() error {
				pass(part.lo, part.hi, acc, includeDiagonal, false)
				return nil
			})
		}
		_ = g.Wait()
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out.Set(j, i, out.At(i, j))
		}
	}
	return out
}

// evaluateSparse runs a pass into exactly pre-sized triplet storage and
// assembles the result as CSR. Every worker counts its own partition first,
// so no triplet append ever reallocates; the per-partition triplets are
// concatenated in address order before assembly.
func (b *ONVBasis) evaluateSparse(pass rangePass, count func(o *onv.ONV) uint64, includeDiagonal bool, o options) *sparse.CSR {
	parts := partitionAddresses(b.dim, o.workers)
	accs := make([]*tripletAccumulator, len(parts))

	var g errgroup.Group
	for i, part := range parts {
		g.Go(func() error {
			acc := &tripletAccumulator{}
			acc.Reserve(b.countCouplings(part.lo, part.hi, count, includeDiagonal))
			pass(part.lo, part.hi, acc, includeDiagonal, true)
			accs[i] = acc
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, acc := range accs {
		total += len(acc.data)
	}
	rows := make([]int, 0, total)
	cols := make([]int, 0, total)
	data := make([]float64, 0, total)
	for _, acc := range accs {
		rows = append(rows, acc.rows...)
		cols = append(cols, acc.cols...)
		data = append(data, acc.data...)
	}

	n := int(b.dim)
	return sparse.NewCOO(n, n, rows, cols, data).ToCSR()
}

// countCouplings totals the triplets a mirrored pass over [lo, hi) will
// emit: two per above-diagonal coupling, plus one diagonal entry per address
// when the diagonal is included.
func (b *ONVBasis) countCouplings(lo, hi uint64, count func(o *onv.ONV) uint64, includeDiagonal bool) uint64 {
	var total uint64
	o := b.ONVFromAddress(lo)
	for address := lo; address < hi; address++ {
		total += 2 * count(o)
		if address+1 < b.dim {
			b.TransformToNextPermutation(o)
		}
	}
	if includeDiagonal {
		total += hi - lo
	}
	return total
}

// evaluateMatvec folds a mirrored pass directly into matrix-vector products.
// Each worker accumulates into its own output vector; the worker vectors and
// the diagonal contribution are summed afterwards.
func (b *ONVBasis) evaluateMatvec(pass rangePass, x, diagonal []float64, o options) []float64 {
	n := int(b.dim)
	out := make([]float64, n)

	parts := partitionAddresses(b.dim, o.workers)
	if len(parts) <= 1 {
		pass(0, b.dim, &matvecAccumulator{x: x, out: out}, false, true)
	} else {
		outs := make([][]float64, len(parts))
		var g errgroup.Group
		for i, part := range parts {
			g.Go(func() error {
				outs[i] = make([]float64, n)
				pass(part.lo, part.hi, &matvecAccumulator{x: x, out: outs[i]}, false, true)
				return nil
			})
		}
		_ = g.Wait()

		for _, partial := range outs {
			for i, v := range partial {
				out[i] += v
			}
		}
	}

	for i := 0; i < n; i++ {
		out[i] += diagonal[i] * x[i]
	}
	return out
}

// vecSlice copies a gonum vector into a plain slice.
func vecSlice(v *mat.VecDense) []float64 {
	s := make([]float64, v.Len())
	for i := range s {
		s[i] = v.AtVec(i)
	}
	return s
}
