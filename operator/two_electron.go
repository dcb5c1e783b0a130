package operator

import (
	"fmt"
)

// TwoElectron is a two-electron operator: a rank-4 tensor of parameters
// g(p, q, r, s) over the orbital indices, stored flat in row-major order.
//
// Two flags describe how the parameters are to be read. The notation flag
// records whether indices follow chemist's convention g_pqrs = (pq|rs) or
// physicist's convention <pq|rs>; the antisymmetrization flag records
// whether the exchange combination has already been folded in. Both guarded
// transformations are idempotent: applying one when its flag is already set
// is a no-op.
type TwoElectron struct {
	params   []float64
	orbitals int

	antisymmetrized bool
	chemists        bool
}

// NewTwoElectron wraps a flat orbitals^4 parameter slice in chemist's
// notation, not antisymmetrized. The slice is referenced, not copied; the
// evaluators never mutate it. A nil slice allocates zero parameters.
func NewTwoElectron(orbitals int, params []float64) (*TwoElectron, error) {
	size := orbitals * orbitals * orbitals * orbitals
	if params == nil {
		params = make([]float64, size)
	}
	if len(params) != size {
		return nil, fmt.Errorf("two-electron parameters: expected %d elements for %d orbitals, got %d", size, orbitals, len(params))
	}
	return &TwoElectron{params: params, orbitals: orbitals, chemists: true}, nil
}

// NewTwoElectronPhysicists wraps a flat parameter slice expressed in
// physicist's notation <pq|rs>, not antisymmetrized.
func NewTwoElectronPhysicists(orbitals int, params []float64) (*TwoElectron, error) {
	g, err := NewTwoElectron(orbitals, params)
	if err != nil {
		return nil, err
	}
	g.chemists = false
	return g, nil
}

// ZeroTwoElectron creates the zero two-electron operator in chemist's
// notation.
func ZeroTwoElectron(orbitals int) *TwoElectron {
	g, _ := NewTwoElectron(orbitals, nil)
	return g
}

// NumberOfOrbitals returns the orbital count the parameters are expressed in.
func (g *TwoElectron) NumberOfOrbitals() int { return g.orbitals }

// Parameter returns g(p, q, r, s).
func (g *TwoElectron) Parameter(p, q, r, s int) float64 {
	return g.params[g.index(p, q, r, s)]
}

// SetParameter assigns g(p, q, r, s).
func (g *TwoElectron) SetParameter(p, q, r, s int, v float64) {
	g.params[g.index(p, q, r, s)] = v
}

// RawParameters returns the underlying flat parameter storage in row-major
// (p, q, r, s) order. It is shared, not copied.
func (g *TwoElectron) RawParameters() []float64 { return g.params }

func (g *TwoElectron) index(p, q, r, s int) int {
	k := g.orbitals
	return ((p*k+q)*k+r)*k + s
}

// IsAntisymmetrized reports whether the exchange combination has been folded
// into the parameters.
func (g *TwoElectron) IsAntisymmetrized() bool { return g.antisymmetrized }

// IsExpressedUsingChemistsNotation reports whether the parameters follow
// g_pqrs = (pq|rs).
func (g *TwoElectron) IsExpressedUsingChemistsNotation() bool { return g.chemists }

// IsExpressedUsingPhysicistsNotation reports whether the parameters follow
// <pq|rs>.
func (g *TwoElectron) IsExpressedUsingPhysicistsNotation() bool { return !g.chemists }

// Copy returns a deep copy, flags included.
func (g *TwoElectron) Copy() *TwoElectron {
	params := make([]float64, len(g.params))
	copy(params, g.params)
	return &TwoElectron{
		params:          params,
		orbitals:        g.orbitals,
		antisymmetrized: g.antisymmetrized,
		chemists:        g.chemists,
	}
}

// Antisymmetrized returns a version of this operator whose parameters obey
// antisymmetry with respect to the creation and annihilation indices:
//
//   - chemist's notation:   g(p,q,r,s) - g(p,s,r,q)
//   - physicist's notation: <pq|rs> - <pq|sr>
//
// If the operator is already antisymmetrized the receiver is returned
// unchanged.
func (g *TwoElectron) Antisymmetrized() *TwoElectron {
	if g.antisymmetrized {
		return g
	}

	out := g.Copy()
	k := g.orbitals
	for p := 0; p < k; p++ {
		for q := 0; q < k; q++ {
			for r := 0; r < k; r++ {
				for s := 0; s < k; s++ {
					var exchange float64
					if g.chemists {
						exchange = g.Parameter(p, s, r, q)
					} else {
						exchange = g.Parameter(p, q, s, r)
					}
					out.SetParameter(p, q, r, s, g.Parameter(p, q, r, s)-exchange)
				}
			}
		}
	}
	out.antisymmetrized = true
	return out
}

// InChemistsNotation returns this operator with parameters expressed in
// chemist's notation. If they already are, the receiver is returned
// unchanged; otherwise the middle index pair is swapped.
func (g *TwoElectron) InChemistsNotation() *TwoElectron {
	if g.chemists {
		return g
	}
	out := g.shuffledMiddle()
	out.chemists = true
	return out
}

// InPhysicistsNotation returns this operator with parameters expressed in
// physicist's notation. If they already are, the receiver is returned
// unchanged; otherwise the middle index pair is swapped.
func (g *TwoElectron) InPhysicistsNotation() *TwoElectron {
	if !g.chemists {
		return g
	}
	out := g.shuffledMiddle()
	out.chemists = false
	return out
}

// shuffledMiddle swaps the two middle tensor axes: the (involutive)
// permutation relating the two index conventions.
func (g *TwoElectron) shuffledMiddle() *TwoElectron {
	out := g.Copy()
	k := g.orbitals
	for p := 0; p < k; p++ {
		for q := 0; q < k; q++ {
			for r := 0; r < k; r++ {
				for s := 0; s < k; s++ {
					out.SetParameter(p, q, r, s, g.Parameter(p, r, q, s))
				}
			}
		}
	}
	return out
}

// EffectiveOneElectronPartition returns the one-electron correction that is
// the difference between this two-electron operator and a product of
// one-electron excitation operators: k(p,q) = -1/2 sum_r g(p,r,r,q).
func (g *TwoElectron) EffectiveOneElectronPartition() *OneElectron {
	k := ZeroOneElectron(g.orbitals)
	for p := 0; p < g.orbitals; p++ {
		for q := 0; q < g.orbitals; q++ {
			var sum float64
			for r := 0; r < g.orbitals; r++ {
				sum -= 0.5 * g.Parameter(p, r, r, q)
			}
			k.params.Set(p, q, sum)
		}
	}
	return k
}
