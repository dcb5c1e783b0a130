package onvbasis

import (
	"gonum.org/v1/gonum/mat"
)

// accumulator is the capability set an evaluation target must provide. The
// shared traversal computes (I, J, value) triples and diagonal contributions;
// targets only decide how to consume them. Implementations are chosen at the
// call site, so the hot path needs no dynamic dispatch beyond this interface.
type accumulator interface {
	// AddDiagonal accumulates v onto the diagonal element (i, i).
	AddDiagonal(i uint64, v float64)

	// Add accumulates v onto the off-diagonal element (i, j). Hermitian
	// mirroring is the traversal's responsibility, not the target's.
	Add(i, j uint64, v float64)

	// Reserve pre-sizes the target for n accumulated entries. Sparse targets
	// must be reserved exactly once, before the fill pass, with at least the
	// final entry count; evaluation reserves the exact count from the
	// coupling counters.
	Reserve(n uint64)
}

// denseAccumulator writes directly into a dense matrix.
type denseAccumulator struct {
	m *mat.Dense
}

func (a *denseAccumulator) AddDiagonal(i uint64, v float64) {
	a.m.Set(int(i), int(i), a.m.At(int(i), int(i))+v)
}

func (a *denseAccumulator) Add(i, j uint64, v float64) {
	a.m.Set(int(i), int(j), a.m.At(int(i), int(j))+v)
}

func (a *denseAccumulator) Reserve(uint64) {}

// tripletAccumulator collects (row, col, value) triplets for sparse assembly.
// Duplicate coordinates are summed during conversion to CSR, so accumulation
// is plain appending into exactly pre-sized storage.
type tripletAccumulator struct {
	rows []int
	cols []int
	data []float64
}

func (a *tripletAccumulator) AddDiagonal(i uint64, v float64) {
	a.Add(i, i, v)
}

func (a *tripletAccumulator) Add(i, j uint64, v float64) {
	a.rows = append(a.rows, int(i))
	a.cols = append(a.cols, int(j))
	a.data = append(a.data, v)
}

func (a *tripletAccumulator) Reserve(n uint64) {
	a.rows = make([]int, 0, n)
	a.cols = make([]int, 0, n)
	a.data = make([]float64, 0, n)
}

// matvecAccumulator folds triples directly into an output vector, given the
// input vector: element (i, j) with value v contributes v*x[j] to out[i].
type matvecAccumulator struct {
	x   []float64
	out []float64
}

func (a *matvecAccumulator) AddDiagonal(i uint64, v float64) {
	a.out[i] += v * a.x[i]
}

func (a *matvecAccumulator) Add(i, j uint64, v float64) {
	a.out[i] += v * a.x[j]
}

func (a *matvecAccumulator) Reserve(uint64) {}
