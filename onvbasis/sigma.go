package onvbasis

import (
	"github.com/james-bowman/sparse"
)

// couplingMatrixIndex flattens an ordered orbital pair (p <= q) into the
// row-major upper-triangle position used by OneElectronCouplings.
func couplingMatrixIndex(orbitals, p, q int) int {
	return p*(2*orbitals+1-p)/2 + (q - p)
}

// OneElectronCouplings precomputes, for every orbital pair p <= q, the
// sparse coupling matrix whose (I, J) entry is the fermionic sign connecting
// the ONVs I and J through the excitation p -> q (and 1 on the diagonal of
// the p == q matrices, for every ONV occupying p).
//
// The K(K+1)/2 matrices are returned in ascending pair order (0,0), (0,1),
// ..., (0,K-1), (1,1), ... Contracted with the parameters h(p, q) they
// reproduce the off-diagonal one-electron evaluation; iterative solvers use
// them as reusable sigma-vector intermediates.
func (b *ONVBasis) OneElectronCouplings() ([]*sparse.CSR, error) {
	k := b.orbitals
	n := int(b.dim)

	accs := make([]*tripletAccumulator, k*(k+1)/2)
	for i := range accs {
		accs[i] = &tripletAccumulator{}
	}

	if b.electrons > 0 {
		// Every ONV occupying orbital p contributes one diagonal entry to
		// the (p, p) matrix, and at most that many entries appear per
		// off-diagonal pair as well.
		reservation, err := CalculateDimension(k-1, b.electrons-1)
		if err != nil {
			return nil, err
		}
		for p := 0; p < k; p++ {
			accs[couplingMatrixIndex(k, p, p)].Reserve(reservation)
			for q := p + 1; q < k; q++ {
				accs[couplingMatrixIndex(k, p, q)].Reserve(2 * reservation)
			}
		}

		o := b.ONVFromAddress(0)
		for address := uint64(0); address < b.dim; address++ {
			for e1 := 0; e1 < b.electrons; e1++ {
				p := o.OccupationIndexOf(e1)
				accs[couplingMatrixIndex(k, p, p)].Add(address, address, 1)

				target := address - b.vertexWeights[p][e1+1]
				q, e2, sign := p+1, e1+1, 1
				b.shiftToNextUnoccupied(o, &target, &q, &e2, &sign)
				for q < b.orbitals {
					j := target + b.vertexWeights[q][e2]

					acc := accs[couplingMatrixIndex(k, p, q)]
					acc.Add(address, j, float64(sign))
					acc.Add(j, address, float64(sign))

					q++
					b.shiftToNextUnoccupied(o, &target, &q, &e2, &sign)
				}
			}

			if address+1 < b.dim {
				b.TransformToNextPermutation(o)
			}
		}
	}

	out := make([]*sparse.CSR, len(accs))
	for i, acc := range accs {
		out[i] = sparse.NewCOO(n, n, acc.rows, acc.cols, acc.data).ToCSR()
	}
	return out, nil
}
