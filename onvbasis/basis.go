package onvbasis

import (
	"fmt"
	"math/bits"

	"github.com/lelemmen/gqcp"
	"github.com/lelemmen/gqcp/onv"
)

// maxOrbitals bounds the orbital count so that every representation fits a
// single machine word.
const maxOrbitals = 64

// ONVBasis is the full configuration space for a fixed number of orbitals M
// and electrons N. It owns the vertex-weight table of the addressing scheme
// and the basis dimension C(M, N); both are computed once at construction and
// immutable afterwards, so a basis is safe for concurrent readers.
type ONVBasis struct {
	orbitals  int
	electrons int
	dim       uint64

	// vertexWeights[p][m] is the number of addressing-graph paths arriving at
	// vertex (p, m): orbital level p with m electrons placed so far.
	vertexWeights [][]uint64
}

// New constructs the ONV basis for the given orbital and electron counts.
//
// It fails with *gqcp.ErrInvalidBasis when orbitals is outside [1, 64] or
// electrons is outside [0, orbitals], and with gqcp.ErrOverflow when the
// dimension C(orbitals, electrons) does not fit a uint64.
func New(orbitals, electrons int) (*ONVBasis, error) {
	if orbitals < 1 || orbitals > maxOrbitals || electrons < 0 || electrons > orbitals {
		return nil, &gqcp.ErrInvalidBasis{Orbitals: orbitals, Electrons: electrons}
	}

	dim, err := CalculateDimension(orbitals, electrons)
	if err != nil {
		return nil, err
	}

	b := &ONVBasis{
		orbitals:  orbitals,
		electrons: electrons,
		dim:       dim,
	}
	b.buildVertexWeights()

	return b, nil
}

// buildVertexWeights fills the (M+1)x(N+1) vertex-weight table.
//
// The largest reverse-lexical configuration leaves the first M-N orbitals
// unoccupied, so only the first M-N+1 vertices of the seed column carry
// weight 1. Every other weight follows the Pascal-style recurrence
// W(p,m) = W(p-1,m) + W(p-1,m-1) over the diagonal band of reachable
// vertices.
func (b *ONVBasis) buildVertexWeights() {
	m, n := b.orbitals, b.electrons

	w := make([][]uint64, m+1)
	for p := range w {
		w[p] = make([]uint64, n+1)
	}

	for p := 0; p <= m-n; p++ {
		w[p][0] = 1
	}
	for e := 1; e <= n; e++ {
		for p := e; p <= m-n+e; p++ {
			w[p][e] = w[p-1][e] + w[p-1][e-1]
		}
	}

	b.vertexWeights = w
}

// CalculateDimension computes the exact binomial coefficient C(orbitals,
// electrons), failing with gqcp.ErrOverflow when the result does not fit a
// uint64.
func CalculateDimension(orbitals, electrons int) (uint64, error) {
	if orbitals < 0 || electrons < 0 || electrons > orbitals {
		return 0, &gqcp.ErrInvalidBasis{Orbitals: orbitals, Electrons: electrons}
	}

	k := electrons
	if orbitals-electrons < k {
		k = orbitals - electrons
	}

	// Multiplicative evaluation: after step i the running value is the exact
	// binomial C(orbitals-k+i, i), so the 128-bit intermediate divides evenly
	// and overflow is detected precisely when a prefix coefficient exceeds
	// the uint64 range.
	result := uint64(1)
	for i := 1; i <= k; i++ {
		hi, lo := bits.Mul64(result, uint64(orbitals-k+i))
		if hi >= uint64(i) {
			return 0, fmt.Errorf("C(%d, %d): %w", orbitals, electrons, gqcp.ErrOverflow)
		}
		result, _ = bits.Div64(hi, lo, uint64(i))
	}

	return result, nil
}

// NumberOfOrbitals returns the orbital count M.
func (b *ONVBasis) NumberOfOrbitals() int { return b.orbitals }

// NumberOfElectrons returns the electron count N.
func (b *ONVBasis) NumberOfElectrons() int { return b.electrons }

// Dimension returns the basis dimension C(M, N).
func (b *ONVBasis) Dimension() uint64 { return b.dim }

// ForEach invokes fn for every ONV in this basis, in address order 0..dim-1.
//
// The callback receives the enumeration's working cursor, which is advanced
// in place between invocations: callers that retain configuration state
// across steps must Copy the ONV. The advance is skipped after the last
// address, since the next-permutation step is undefined on the lexically-last
// configuration.
func (b *ONVBasis) ForEach(fn func(o *onv.ONV, address uint64)) {
	o := b.ONVFromAddress(0)
	for address := uint64(0); address < b.dim; address++ {
		fn(o, address)
		if address+1 < b.dim {
			b.TransformToNextPermutation(o)
		}
	}
}
